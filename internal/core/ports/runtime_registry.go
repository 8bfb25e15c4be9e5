package ports

import (
	"context"

	"go.trai.ch/polyvenv/internal/core/domain"
)

// RuntimeRegistry enumerates installed runtime versions.
//
//go:generate go run go.uber.org/mock/mockgen -source=runtime_registry.go -destination=mocks/mock_runtime_registry.go -package=mocks
type RuntimeRegistry interface {
	// ListAvailable scans the declared installation roots and returns one descriptor per source,
	// ordered by version. A source without a usable executable fails with domain.ErrRuntimeNotFound.
	// It has no side effects.
	ListAvailable(ctx context.Context, sources []domain.RuntimeSource) (domain.RuntimeSet, error)
}

// RuntimeFetcher realizes runtimes that are not installed locally.
type RuntimeFetcher interface {
	// Realize makes the runtime available and returns its installation prefix.
	// Realized prefixes are remembered under cacheDir.
	Realize(ctx context.Context, cacheDir string, source domain.RuntimeSource) (string, error)
}

// RuntimeProbe invokes a runtime to confirm it starts under a given environment.
type RuntimeProbe interface {
	// Probe runs the interpreter with env and returns the version it reports.
	Probe(ctx context.Context, runtime domain.RuntimeDescriptor, env []string) (string, error)
}
