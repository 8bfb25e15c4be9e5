// Package domain contains the core types of runtime provisioning.
package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// SysconfigDataVar selects the sysconfig data module an interpreter loads at startup.
	SysconfigDataVar = "_PYTHON_SYSCONFIGDATA_NAME"

	// HostPlatformVar overrides the platform tag an interpreter reports.
	HostPlatformVar = "_PYTHON_HOST_PLATFORM"

	// SysconfigDataPrefix is the module name prefix of sysconfig data files.
	SysconfigDataPrefix = "_sysconfigdata_"
)

// RuntimeDescriptor describes one installed interpreter version.
// It is immutable after enumeration.
type RuntimeDescriptor struct {
	// Version is the declared release, e.g. "3.12".
	Version string `json:"version"`
	// ExecutablePath is the absolute path of the interpreter binary.
	ExecutablePath string `json:"executable"`
	// SysconfigTag identifies the runtime's sysconfig data module, e.g. "_linux_x86_64-linux-gnu".
	SysconfigTag string `json:"sysconfigTag"`
	// Root is the installation prefix the runtime was found under.
	Root string `json:"root"`
}

// SysconfigModule returns the name of the runtime's sysconfig data module.
func (r RuntimeDescriptor) SysconfigModule() string {
	if r.SysconfigTag == "" {
		return ""
	}
	return SysconfigDataPrefix + r.SysconfigTag
}

// HostPlatform derives the platform tag ("linux-x86_64") from the sysconfig tag.
// It returns an empty string unless the multiarch part has the <arch>-<os>-<abi> shape
// and names the same os as the platform. Darwin tags ("_darwin_darwin") carry none.
func (r RuntimeDescriptor) HostPlatform() string {
	// Tags have the form <abiflags>_<platform>_<multiarch>.
	parts := strings.SplitN(r.SysconfigTag, "_", 3)
	if len(parts) != 3 || parts[1] == "" {
		return ""
	}
	multiarch := strings.Split(parts[2], "-")
	if len(multiarch) != 3 || slices.Contains(multiarch, "") || multiarch[1] != parts[1] {
		return ""
	}
	return parts[1] + "-" + multiarch[0]
}

// BootstrapVariables returns the variables the runtime writes into the environment when invoked.
func (r RuntimeDescriptor) BootstrapVariables() map[string]string {
	vars := make(map[string]string, 2)
	if module := r.SysconfigModule(); module != "" {
		vars[SysconfigDataVar] = module
	}
	if platform := r.HostPlatform(); platform != "" {
		vars[HostPlatformVar] = platform
	}
	return vars
}

// String returns a short human readable form.
func (r RuntimeDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", r.Version, r.ExecutablePath)
}

// RuntimeSet is an ordered collection of runtimes, ascending by version.
type RuntimeSet []RuntimeDescriptor

// NewRuntimeSet returns the descriptors ordered by version.
func NewRuntimeSet(descriptors ...RuntimeDescriptor) RuntimeSet {
	set := slices.Clone(descriptors)
	slices.SortStableFunc(set, func(a, b RuntimeDescriptor) int {
		return CompareVersions(a.Version, b.Version)
	})
	return set
}

// Find returns the runtime declared with the given version.
func (s RuntimeSet) Find(version string) (RuntimeDescriptor, bool) {
	for _, r := range s {
		if r.Version == version {
			return r, true
		}
	}
	return RuntimeDescriptor{}, false
}

// Versions returns the versions in the set, in order.
func (s RuntimeSet) Versions() []string {
	versions := make([]string, len(s))
	for i, r := range s {
		versions[i] = r.Version
	}
	return versions
}

// Split separates the primary runtime from the others.
// The others keep their ascending order.
func (s RuntimeSet) Split(primary string) (RuntimeDescriptor, RuntimeSet, error) {
	p, ok := s.Find(primary)
	if !ok {
		err := zerr.Wrap(ErrRuntimeNotFound, fmt.Sprintf("primary runtime %s is not available", primary))
		err = zerr.With(err, "version", primary)
		return RuntimeDescriptor{}, nil, zerr.With(err, "available", strings.Join(s.Versions(), ", "))
	}

	others := make(RuntimeSet, 0, len(s)-1)
	for _, r := range s {
		if r.Version != primary {
			others = append(others, r)
		}
	}
	return p, others, nil
}
