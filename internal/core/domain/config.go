package domain

import "strings"

// NixSourcePrefix marks a runtime source realized through nix instead of a local prefix.
const NixSourcePrefix = "nix:"

// RuntimeSource declares where one runtime version is installed.
type RuntimeSource struct {
	// Version is the declared release.
	Version string
	// Root is the installation prefix. Empty until a nix source is realized.
	Root string
	// NixAttr is the nixpkgs attribute to realize, e.g. "python312".
	NixAttr string
}

// IsNix reports whether the source must be realized before it can be scanned.
func (s RuntimeSource) IsNix() bool {
	return s.NixAttr != ""
}

// ParseRuntimeSource interprets a configured location: "nix:<attr>" or a filesystem prefix.
func ParseRuntimeSource(version, location string) RuntimeSource {
	if attr, ok := strings.CutPrefix(location, NixSourcePrefix); ok {
		return RuntimeSource{Version: version, NixAttr: attr}
	}
	return RuntimeSource{Version: version, Root: location}
}

// IsolationPolicy extends the conflicting variable set and names variables that must survive isolation.
type IsolationPolicy struct {
	Variables []string
	Pinned    []string
}

// Config is the resolved project configuration. Paths are absolute.
type Config struct {
	// Path is the configuration file.
	Path string
	// Root is the project root, the directory holding the configuration file.
	Root string
	// Primary is the runtime version backing the managed environment.
	Primary string
	// Runtimes are ordered by version.
	Runtimes []RuntimeSource
	// VenvPath is the managed environment directory.
	VenvPath string
	// Lockfile is the lock file path.
	Lockfile string
	// Groups are the optional groups synchronized by default.
	Groups []string
	// Strict removes installed packages that are not in the lock.
	Strict bool
	// Verify probes every runtime after bootstrapping it.
	Verify bool
	// Isolation tunes the environment isolator.
	Isolation IsolationPolicy
}
