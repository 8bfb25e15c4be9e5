package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/adapters/shell"
	"go.trai.ch/polyvenv/internal/core/ports"
)

// NodeID is the unique identifier for the package installer Graft node.
const NodeID graft.ID = "adapter.pip"

func init() {
	graft.Register(graft.Node[ports.PackageInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.PackageInstaller, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner), nil
		},
	})
}
