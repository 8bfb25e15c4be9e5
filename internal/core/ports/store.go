package ports

import "go.trai.ch/polyvenv/internal/core/domain"

// ActivationStore persists the activation record of the last successful run.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ActivationStore interface {
	// Get retrieves the activation record of the project at root.
	// Returns nil, nil if not found.
	Get(root string) (*domain.ActivationRecord, error)

	// Put stores the activation record.
	Put(root string, record domain.ActivationRecord) error

	// Clear removes the project's state directory.
	Clear(root string) error
}
