package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// BaseGroup is the group name lock files use for entries that belong to no optional group.
const BaseGroup = "main"

// LockEntry is one pinned package of a lock file.
type LockEntry struct {
	// Name is the package name as written in the lock file.
	Name string `json:"name" yaml:"name"`
	// Version is the exact pinned version.
	Version string `json:"version" yaml:"version"`
	// Groups lists the optional groups the entry belongs to. Empty means base.
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Key returns the normalized package name.
func (e LockEntry) Key() InternedString {
	return NewInternedString(NormalizeName(e.Name))
}

// IsBase reports whether the entry is always in scope regardless of requested groups.
func (e LockEntry) IsBase() bool {
	if len(e.Groups) == 0 {
		return true
	}
	return slices.Contains(e.Groups, BaseGroup)
}

// InGroups reports whether the entry belongs to any of the given groups.
func (e LockEntry) InGroups(groups []string) bool {
	for _, g := range e.Groups {
		if slices.Contains(groups, g) {
			return true
		}
	}
	return false
}

// Lockfile is an ordered, validated list of lock entries.
type Lockfile struct {
	// Path is the file the entries were read from.
	Path string
	// Digest is a content digest of the file, used to detect stale activations.
	Digest string
	// Entries keeps the lock file order.
	Entries []LockEntry
}

// NewLockfile validates the entries: names are unique after normalization and every version is pinned.
func NewLockfile(path, digest string, entries []LockEntry) (*Lockfile, error) {
	seen := make(map[InternedString]string, len(entries))
	for _, e := range entries {
		key := e.Key()
		if prev, ok := seen[key]; ok {
			err := zerr.Wrap(ErrDuplicatePackage, "package "+e.Name+" appears more than once")
			err = zerr.With(err, "package", e.Name)
			err = zerr.With(err, "previous", prev)
			return nil, zerr.With(err, "lockfile", path)
		}
		seen[key] = e.Name

		if !IsPinnedVersion(e.Version) {
			err := zerr.Wrap(ErrUnpinnedVersion, "package "+e.Name+" is not pinned to an exact version")
			err = zerr.With(err, "package", e.Name)
			err = zerr.With(err, "version", e.Version)
			return nil, zerr.With(err, "lockfile", path)
		}
	}

	return &Lockfile{
		Path:    path,
		Digest:  digest,
		Entries: slices.Clone(entries),
	}, nil
}

// NormalizeName folds a package name so that "Foo-Bar", "foo_bar" and "foo.bar" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// IsPinnedVersion reports whether v names exactly one version.
func IsPinnedVersion(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	return !strings.ContainsAny(v, "<>=!~^*, |")
}
