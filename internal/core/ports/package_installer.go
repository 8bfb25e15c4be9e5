package ports

import (
	"context"

	"go.trai.ch/polyvenv/internal/core/domain"
)

// PackageInstaller reads and mutates the package index of the managed environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_installer.go -destination=mocks/mock_package_installer.go -package=mocks
type PackageInstaller interface {
	// Installed returns the packages present in the environment.
	Installed(ctx context.Context, env domain.ManagedEnvironmentHandle) ([]domain.InstalledPackage, error)

	// Install installs exactly the pinned version of the entry, without dependencies.
	Install(ctx context.Context, env domain.ManagedEnvironmentHandle, entry domain.LockEntry, environ []string) error

	// Remove uninstalls the named package.
	Remove(ctx context.Context, env domain.ManagedEnvironmentHandle, name string, environ []string) error
}
