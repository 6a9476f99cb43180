package ports

import (
	"context"

	"go.trai.ch/recall/internal/core/domain"
)

// ProblemReporter collects problems found while configuring or storing a plan.
type ProblemReporter interface {
	Report(problem domain.Problem)
}

// ConfigureRequest carries everything configuration logic may touch.
type ConfigureRequest struct {
	// RootDir is the directory holding the root build script.
	RootDir string
	// Inputs answers and records every environment read.
	Inputs InputTracker
	// State answers task state queries made while configuring.
	State domain.StateReader
	// Problems receives non-fatal problems.
	Problems ProblemReporter
}

// Configurer runs the configuration phase and returns the resulting plan.
//
//go:generate go run go.uber.org/mock/mockgen -source=configurer.go -destination=mocks/mock_configurer.go -package=mocks
type Configurer interface {
	Configure(ctx context.Context, req ConfigureRequest) (*domain.Plan, error)
}
