// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/polyvenv/internal/adapters/cas"
	_ "go.trai.ch/polyvenv/internal/adapters/config"
	_ "go.trai.ch/polyvenv/internal/adapters/flock"
	_ "go.trai.ch/polyvenv/internal/adapters/lockfile"
	_ "go.trai.ch/polyvenv/internal/adapters/logger"
	_ "go.trai.ch/polyvenv/internal/adapters/nix"
	_ "go.trai.ch/polyvenv/internal/adapters/pip"
	_ "go.trai.ch/polyvenv/internal/adapters/runtimes"
	_ "go.trai.ch/polyvenv/internal/adapters/shell"
	_ "go.trai.ch/polyvenv/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/polyvenv/internal/adapters/venv"
	_ "go.trai.ch/polyvenv/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/polyvenv/internal/app"
	_ "go.trai.ch/polyvenv/internal/engine/pipeline"
)
