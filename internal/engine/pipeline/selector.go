package pipeline

import (
	"context"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Selector binds the managed environment to the primary runtime.
type Selector struct {
	manager ports.EnvironmentManager
}

// NewSelector creates a selector backed by the environment manager.
func NewSelector(manager ports.EnvironmentManager) *Selector {
	return &Selector{manager: manager}
}

// Select makes the environment at venvPath use the primary runtime.
//
// An environment already bound to the primary is left alone. A missing environment is created.
// An environment bound to another interpreter is a conflict unless force is set, in which case
// it is discarded together with its packages and created again.
// On success VIRTUAL_ENV is written into state, owned by the primary.
func (s *Selector) Select(
	ctx context.Context,
	state *domain.EnvironmentState,
	primary domain.RuntimeDescriptor,
	projectRoot, venvPath string,
	force bool,
) (domain.ManagedEnvironmentHandle, error) {
	handle := domain.ManagedEnvironmentHandle{
		ProjectRoot: projectRoot,
		Path:        venvPath,
		Interpreter: primary.ExecutablePath,
		Runtime:     primary.Version,
	}

	binding, err := s.manager.Bound(ctx, venvPath)
	if err != nil {
		return domain.ManagedEnvironmentHandle{}, err
	}

	switch {
	case binding == nil:
		if err := s.manager.Bind(ctx, venvPath, primary, state.Environ()); err != nil {
			return domain.ManagedEnvironmentHandle{}, err
		}
	case binding.Interpreter == primary.ExecutablePath:
		// Already bound.
	case !force:
		err := zerr.Wrap(domain.ErrBindingConflict, "rerun with --force-rebind to discard the environment")
		err = zerr.With(err, "bound", binding.Interpreter)
		return domain.ManagedEnvironmentHandle{}, zerr.With(err, "requested", primary.ExecutablePath)
	default:
		if err := s.manager.Discard(ctx, venvPath); err != nil {
			return domain.ManagedEnvironmentHandle{}, err
		}
		if err := s.manager.Bind(ctx, venvPath, primary, state.Environ()); err != nil {
			return domain.ManagedEnvironmentHandle{}, err
		}
		handle.Rebound = true
	}

	state.Set(domain.VirtualEnvVar, venvPath, primary.Version)
	return handle, nil
}
