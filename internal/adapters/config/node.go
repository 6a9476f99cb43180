package config

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/recall/internal/adapters/logger"
	"go.trai.ch/recall/internal/core/ports"
)

// NodeID is the unique identifier for the configuration engine Graft node.
const NodeID graft.ID = "adapter.configurer"

func init() {
	graft.Register(graft.Node[ports.Configurer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Configurer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEngine(log), nil
		},
	})
}
