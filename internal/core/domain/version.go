package domain

import (
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// ValidateVersion checks that v is a dotted release number such as "3.12" or "3.12.4".
func ValidateVersion(v string) error {
	if v == "" || strings.HasPrefix(v, "v") || !semver.IsValid("v"+v) || semver.Prerelease("v"+v) != "" ||
		semver.Build("v"+v) != "" {
		return zerr.With(zerr.Wrap(ErrInvalidRuntimeVersion, "version must look like 3.12 or 3.12.4"), "version", v)
	}
	return nil
}

// CompareVersions orders two runtime versions. Shorter forms sort as their zero-padded release.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// MajorMinor returns the "X.Y" prefix of a runtime version.
func MajorMinor(v string) string {
	return strings.TrimPrefix(semver.MajorMinor("v"+v), "v")
}

// VersionMatches reports whether a version reported by an interpreter satisfies the declared one.
// "3.12.4" satisfies "3.12" and "3.12.4", but not "3.1".
func VersionMatches(declared, reported string) bool {
	reported = strings.TrimSpace(reported)
	return reported == declared || strings.HasPrefix(reported, declared+".")
}
