package cas

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/recall/internal/core/ports"
)

// NodeID is the unique identifier for the cache repository node.
const NodeID graft.ID = "adapter.cache_repository"

func init() {
	graft.Register(graft.Node[ports.CacheRepositories]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheRepositories, error) {
			return Repositories{}, nil
		},
	})
}
