package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// InheritedOwner is the owner recorded for variables taken from the invoking process.
const InheritedOwner = ""

// EnvironmentState is the process environment being assembled for the managed environment.
// Every variable remembers which runtime version last wrote it. The state has a single owner,
// the provisioning run, and is passed explicitly from stage to stage.
type EnvironmentState struct {
	vars   map[string]string
	owners map[string]string
	pinned map[string]struct{}
	active string
}

// NewEnvironmentState builds a state from KEY=VALUE pairs. All variables start out inherited.
// Pinned variables can be overwritten but never cleared.
func NewEnvironmentState(environ []string, pinned ...string) *EnvironmentState {
	s := &EnvironmentState{
		vars:   make(map[string]string, len(environ)),
		owners: make(map[string]string, len(environ)),
		pinned: make(map[string]struct{}, len(pinned)),
	}
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		s.vars[k] = v
		s.owners[k] = InheritedOwner
	}
	for _, name := range pinned {
		s.pinned[name] = struct{}{}
	}
	return s
}

// Get returns the value of a variable.
func (s *EnvironmentState) Get(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Owner returns the runtime version that last wrote the variable.
// Inherited and absent variables report InheritedOwner.
func (s *EnvironmentState) Owner(name string) string {
	return s.owners[name]
}

// Has reports whether the variable is set.
func (s *EnvironmentState) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Set writes a variable on behalf of the given runtime version.
func (s *EnvironmentState) Set(name, value, owner string) {
	s.vars[name] = value
	s.owners[name] = owner
}

// IsPinned reports whether the variable may not be cleared.
func (s *EnvironmentState) IsPinned(name string) bool {
	_, ok := s.pinned[name]
	return ok
}

// Clear removes a variable. Clearing an absent variable is a no-op.
func (s *EnvironmentState) Clear(name string) error {
	if !s.Has(name) {
		return nil
	}
	if s.IsPinned(name) {
		err := zerr.Wrap(ErrIsolationViolation, "variable "+name+" is pinned and cannot be cleared")
		err = zerr.With(err, "variable", name)
		return zerr.With(err, "owner", ownerLabel(s.owners[name]))
	}
	delete(s.vars, name)
	delete(s.owners, name)
	return nil
}

// ActiveRuntime returns the version of the runtime the state was last prepared for.
func (s *EnvironmentState) ActiveRuntime() string {
	return s.active
}

// Activate records the runtime the state is now prepared for.
func (s *EnvironmentState) Activate(version string) {
	s.active = version
}

// Names returns the sorted variable names.
func (s *EnvironmentState) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// Variables returns a copy of the variables.
func (s *EnvironmentState) Variables() map[string]string {
	return maps.Clone(s.vars)
}

// Environ returns the variables as sorted KEY=VALUE pairs.
func (s *EnvironmentState) Environ() []string {
	names := s.Names()
	env := make([]string, len(names))
	for i, name := range names {
		env[i] = name + "=" + s.vars[name]
	}
	return env
}

// Clone returns an independent copy of the state.
func (s *EnvironmentState) Clone() *EnvironmentState {
	return &EnvironmentState{
		vars:   maps.Clone(s.vars),
		owners: maps.Clone(s.owners),
		pinned: maps.Clone(s.pinned),
		active: s.active,
	}
}

func ownerLabel(owner string) string {
	if owner == InheritedOwner {
		return "inherited"
	}
	return owner
}

// ConflictingVariables are the variables through which one runtime's configuration can leak
// into another runtime's invocation.
var ConflictingVariables = []string{
	SysconfigDataVar,
	HostPlatformVar,
	"_PYTHON_PROJECT_BASE",
	"PYTHONHOME",
	"PYTHONPATH",
	"PYTHONEXECUTABLE",
	"__PYVENV_LAUNCHER__",
	VirtualEnvVar,
}

// ConflictSet returns the known conflicting variables extended with extra names, without duplicates.
func ConflictSet(extra []string) []string {
	set := slices.Clone(ConflictingVariables)
	for _, name := range extra {
		if name != "" && !slices.Contains(set, name) {
			set = append(set, name)
		}
	}
	return set
}
