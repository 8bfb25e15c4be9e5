package pipeline

import (
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// Isolator keeps one runtime's configuration variables from leaking into another runtime's invocation.
type Isolator struct {
	conflicts []string
}

// NewIsolator creates an isolator for the known conflicting variables plus extra.
func NewIsolator(extra []string) *Isolator {
	return &Isolator{conflicts: domain.ConflictSet(extra)}
}

// Conflicts returns the variables the isolator manages.
func (i *Isolator) Conflicts() []string {
	return i.conflicts
}

// Isolate clears every conflicting variable not owned by target, including inherited ones,
// and marks the state as prepared for target. Isolating twice for the same target is a no-op.
func (i *Isolator) Isolate(state *domain.EnvironmentState, target domain.RuntimeDescriptor) error {
	for _, name := range i.conflicts {
		if !state.Has(name) || state.Owner(name) == target.Version {
			continue
		}
		if err := state.Clear(name); err != nil {
			return zerr.With(err, "target", target.Version)
		}
	}
	state.Activate(target.Version)
	return nil
}

// Bootstrap writes the variables the runtime sets for itself when invoked, owned by its version.
func (i *Isolator) Bootstrap(state *domain.EnvironmentState, runtime domain.RuntimeDescriptor) {
	for name, value := range runtime.BootstrapVariables() {
		state.Set(name, value, runtime.Version)
	}
}
