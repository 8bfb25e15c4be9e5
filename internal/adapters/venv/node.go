package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/adapters/shell"
	"go.trai.ch/polyvenv/internal/core/ports"
)

// NodeID is the unique identifier for the environment manager Graft node.
const NodeID graft.ID = "adapter.venv"

func init() {
	graft.Register(graft.Node[ports.EnvironmentManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentManager, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(runner), nil
		},
	})
}
