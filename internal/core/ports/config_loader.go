package ports

import "go.trai.ch/polyvenv/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration walking up from cwd and returns it with absolute paths.
	Load(cwd string) (*domain.Config, error)
}
