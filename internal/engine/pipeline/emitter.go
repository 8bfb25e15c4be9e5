package pipeline

import (
	"path/filepath"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
)

// Emitter turns the final state into an activation descriptor.
type Emitter struct {
	conflicts []string
}

// NewEmitter creates an emitter that unsets the given conflicting variables when the state lacks them.
func NewEmitter(conflicts []string) *Emitter {
	return &Emitter{conflicts: conflicts}
}

// Emit builds the descriptor. It does not modify state.
func (e *Emitter) Emit(state *domain.EnvironmentState, handle domain.ManagedEnvironmentHandle) domain.ActivationDescriptor {
	vars := state.Variables()
	vars[domain.VirtualEnvVar] = handle.Path

	path, _ := state.Get(domain.PathVar)
	vars[domain.PathVar] = prependPath(handle.BinDir(), path)

	unset := make([]string, 0, len(e.conflicts))
	for _, name := range e.conflicts {
		if _, ok := vars[name]; !ok {
			unset = append(unset, name)
		}
	}

	return domain.ActivationDescriptor{
		Variables:  vars,
		Unset:      unset,
		Executable: handle.Python(),
	}
}

// prependPath puts dir first in a search path, dropping earlier occurrences of it.
func prependPath(dir, path string) string {
	parts := []string{dir}
	for _, p := range filepath.SplitList(path) {
		if p == "" || filepath.Clean(p) == filepath.Clean(dir) {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, string(filepath.ListSeparator))
}
