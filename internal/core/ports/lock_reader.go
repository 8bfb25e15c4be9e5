package ports

import "go.trai.ch/polyvenv/internal/core/domain"

// LockReader parses a lock file into validated entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_reader.go -destination=mocks/mock_lock_reader.go -package=mocks
type LockReader interface {
	// Read parses the lock file at path.
	Read(path string) (*domain.Lockfile, error)
}
