package runtimes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/adapters/shell"
	"go.trai.ch/polyvenv/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the runtime registry Graft node.
	RegistryNodeID graft.ID = "adapter.runtimes.registry"
	// ProbeNodeID is the unique identifier for the runtime probe Graft node.
	ProbeNodeID graft.ID = "adapter.runtimes.probe"
)

func init() {
	graft.Register(graft.Node[ports.RuntimeRegistry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RuntimeRegistry, error) {
			return NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[ports.RuntimeProbe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeProbe, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewProbe(runner), nil
		},
	})
}
