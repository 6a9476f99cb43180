package env

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/recall/internal/adapters/fs"
	"go.trai.ch/recall/internal/core/ports"
)

// NodeID is the unique identifier for the environment factory Graft node.
const NodeID graft.ID = "adapter.env"

func init() {
	graft.Register(graft.Node[ports.InputEnvironmentFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.InputEnvironmentFactory, error) {
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(hasher, resolver), nil
		},
	})
}
