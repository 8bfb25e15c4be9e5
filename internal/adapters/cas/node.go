package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyvenv/internal/core/ports"
)

// NodeID is the unique identifier for the activation store Graft node.
const NodeID graft.ID = "adapter.activation_store"

func init() {
	graft.Register(graft.Node[ports.ActivationStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ActivationStore, error) {
			return NewStore(), nil
		},
	})
}
