// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/recall/internal/core/domain"
)

// InputTracker is the only view of the outside world that configuration logic gets.
// Every read is answered from the live environment and recorded as a fingerprint entry,
// unless tracking is suspended.
//
//go:generate go run go.uber.org/mock/mockgen -source=inputs.go -destination=mocks/mock_inputs.go -package=mocks
type InputTracker interface {
	// ReadFile reads a file and records its content snapshot.
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// FileExists reports whether path exists and records the observed answer.
	FileExists(path string) bool
	// Getenv reads an environment variable and records its value or absence.
	Getenv(name string) (string, bool)
	// Property reads a startup property and records its value or absence.
	Property(name string) (string, bool)
	// Obtain computes a value source and records its descriptor and result.
	Obtain(ctx context.Context, source domain.ValueSourceDescriptor) (string, error)
	// WithoutTracking runs fn with recording suspended. Calls nest.
	WithoutTracking(fn func() error) error
}

// InputEnvironment is the live environment fingerprints are captured from and checked against.
type InputEnvironment interface {
	// Snapshot describes the file at path as it is right now.
	Snapshot(ctx context.Context, path string, policy domain.ModTimePolicy) (domain.FileInput, error)
	// ReadFile returns the file content.
	ReadFile(path string) ([]byte, error)
	// Exists reports whether path exists.
	Exists(path string) bool
	// LookupEnv reads an environment variable.
	LookupEnv(name string) (string, bool)
	// Property reads a startup property (-P flags, then the properties file).
	Property(name string) (string, bool)
	// Obtain computes the current value of a value source.
	Obtain(ctx context.Context, source domain.ValueSourceDescriptor) (string, error)
}

// InputEnvironmentFactory creates the live environment of one invocation.
// Overrides are startup properties given on the command line; they take precedence over
// the properties file at the build root.
type InputEnvironmentFactory interface {
	Environment(rootDir string, overrides map[string]string) (InputEnvironment, error)
}
