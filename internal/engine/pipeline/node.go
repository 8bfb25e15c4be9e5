package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/adapters/lockfile"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/adapters/nix"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/adapters/pip"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/adapters/runtimes"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/adapters/venv"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polyvenv/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			runtimes.RegistryNodeID,
			nix.FetcherNodeID,
			runtimes.ProbeNodeID,
			venv.NodeID,
			pip.NodeID,
			lockfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			registry, err := graft.Dep[ports.RuntimeRegistry](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.RuntimeFetcher](ctx)
			if err != nil {
				return nil, err
			}
			probe, err := graft.Dep[ports.RuntimeProbe](ctx)
			if err != nil {
				return nil, err
			}
			manager, err := graft.Dep[ports.EnvironmentManager](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.LockReader](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(registry, fetcher, probe, manager, installer, reader, telemetry, log), nil
		},
	})
}
