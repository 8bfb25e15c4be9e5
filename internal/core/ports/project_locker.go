package ports

// ProjectLocker serializes provisioning runs on one project root.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_locker.go -destination=mocks/mock_project_locker.go -package=mocks
type ProjectLocker interface {
	// Acquire takes the project lock without blocking. The returned function releases it.
	// It fails with domain.ErrProjectLocked when another run holds the lock.
	Acquire(root string) (func() error, error)
}
