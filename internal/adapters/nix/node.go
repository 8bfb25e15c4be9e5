package nix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/adapters/logger"
	"go.trai.ch/polyvenv/internal/adapters/shell"
	"go.trai.ch/polyvenv/internal/core/ports"
)

// FetcherNodeID is the unique identifier for the nix runtime fetcher Graft node.
const FetcherNodeID graft.ID = "adapter.nix.fetcher"

func init() {
	graft.Register(graft.Node[ports.RuntimeFetcher]{
		ID:        FetcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeFetcher, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(runner, log), nil
		},
	})
}
