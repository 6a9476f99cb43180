package ports

import (
	"context"
	"io"

	"go.trai.ch/recall/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task with the specified environment.
	//
	// The env parameter contains environment variables in "KEY=VALUE" format,
	// already resolved from the task's providers.
	//
	// It returns an error if the task execution fails.
	Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error
}
