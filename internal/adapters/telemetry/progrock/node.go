package progrock

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/recall/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"
	// JournalNodeID is the unique identifier for the journal node.
	JournalNodeID graft.ID = "adapter.telemetry.journal"
)

func init() {
	graft.Register(graft.Node[*Journal]{
		ID:        JournalNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Journal, error) {
			return NewJournal(), nil
		},
	})

	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{JournalNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			journal, err := graft.Dep[*Journal](ctx)
			if err != nil {
				return nil, err
			}
			return New(journal), nil
		},
	})
}
