package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/flock"              //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/venv"               //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/polyvenv/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			venv.NodeID,
			lockfile.NodeID,
			cas.NodeID,
			flock.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}
	manager, err := graft.Dep[ports.EnvironmentManager](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.LockReader](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.ActivationStore](ctx)
	if err != nil {
		return nil, err
	}
	locker, err := graft.Dep[ports.ProjectLocker](ctx)
	if err != nil {
		return nil, err
	}
	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, pipe, manager, reader, store, locker, watchers, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	return NewComponents(app, log, telemetry), nil
}
