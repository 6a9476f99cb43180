package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/recall/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/recall/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/recall/internal/adapters/env"                //nolint:depguard // Wired in app layer
	"go.trai.ch/recall/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/recall/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/recall/internal/core/ports"
	"go.trai.ch/recall/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			cas.NodeID,
			env.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
			progrock.JournalNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configurer, err := graft.Dep[ports.Configurer](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	repositories, err := graft.Dep[ports.CacheRepositories](ctx)
	if err != nil {
		return nil, err
	}

	environments, err := graft.Dep[ports.InputEnvironmentFactory](ctx)
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

	return New(configurer, sched, repositories, environments, telemetry, log)
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	journal, err := graft.Dep[*progrock.Journal](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
		Journal:   journal,
	}, nil
}
