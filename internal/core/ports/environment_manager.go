package ports

import (
	"context"

	"go.trai.ch/polyvenv/internal/core/domain"
)

// EnvironmentManager owns the managed environment directory and its interpreter binding.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment_manager.go -destination=mocks/mock_environment_manager.go -package=mocks
type EnvironmentManager interface {
	// Bound returns the binding of the environment at path, or nil if no environment exists there.
	Bound(ctx context.Context, path string) (*domain.Binding, error)

	// Bind creates the environment at path backed by the given runtime.
	Bind(ctx context.Context, path string, runtime domain.RuntimeDescriptor, env []string) error

	// Discard destroys the environment at path, including every installed package.
	Discard(ctx context.Context, path string) error
}
