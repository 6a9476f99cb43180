package fingerprint

import (
	"context"
	"fmt"
	"strconv"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// Verdict is the outcome of checking a stored fingerprint.
type Verdict struct {
	// Valid is true when every entry still matches.
	Valid bool
	// Reason describes the first invalidated entry, e.g. "file 'build.yaml' has changed".
	Reason string
	// Entry is the first invalidated entry.
	Entry domain.FingerprintEntry
}

// entryChecker re-evaluates one entry. It returns an empty reason when the entry still holds.
type entryChecker func(ctx context.Context, env ports.InputEnvironment, e domain.FingerprintEntry) string

// Controller checks stored fingerprints against the live environment.
type Controller struct {
	env      ports.InputEnvironment
	checkers map[domain.EntryKind]entryChecker
}

// NewController creates a controller reading the live environment through env.
func NewController(env ports.InputEnvironment) *Controller {
	return &Controller{
		env: env,
		checkers: map[domain.EntryKind]entryChecker{
			domain.KindFile:           checkFile,
			domain.KindEnvVar:         checkEnvVar,
			domain.KindSystemProperty: checkProperty,
			domain.KindValueSource:    checkValueSource,
			domain.KindUndeclared:     checkUndeclared,
		},
	}
}

// Check walks the stored entries in recorded order and stops at the first one that no longer holds.
// A nil fingerprint or one from another schema version is invalid.
func (c *Controller) Check(ctx context.Context, stored *domain.Fingerprint) Verdict {
	if stored == nil {
		return Verdict{Reason: "no fingerprint stored"}
	}
	if stored.Version != domain.SchemaVersion {
		return Verdict{Reason: fmt.Sprintf("cache schema changed from %s to %s", stored.Version, domain.SchemaVersion)}
	}
	for _, e := range stored.Entries {
		if err := ctx.Err(); err != nil {
			return Verdict{Reason: "check interrupted", Entry: e}
		}
		check, ok := c.checkers[e.Kind()]
		if !ok {
			return Verdict{Reason: "unknown input " + e.Describe(), Entry: e}
		}
		if reason := check(ctx, c.env, e); reason != "" {
			return Verdict{Reason: reason, Entry: e}
		}
	}
	return Verdict{Valid: true}
}

func changed(e domain.FingerprintEntry) string {
	return e.Describe() + " has changed"
}

func checkFile(ctx context.Context, env ports.InputEnvironment, e domain.FingerprintEntry) string {
	stored := e.(domain.FileInput)
	current, err := env.Snapshot(ctx, stored.Path, stored.Policy)
	if err != nil {
		return fmt.Sprintf("%s could not be read: %v", e.Describe(), err)
	}
	if current.Exists != stored.Exists {
		if stored.Exists {
			return e.Describe() + " has been removed"
		}
		return e.Describe() + " has been created"
	}
	if !stored.Exists {
		return ""
	}
	if stored.Policy == domain.PolicyModTime &&
		current.Size == stored.Size && current.ModTime.Equal(stored.ModTime) {
		return ""
	}
	if current.Hash != stored.Hash {
		return changed(e)
	}
	return ""
}

func checkEnvVar(_ context.Context, env ports.InputEnvironment, e domain.FingerprintEntry) string {
	stored := e.(domain.EnvVar)
	v, ok := env.LookupEnv(stored.Name)
	if ok != stored.Present || v != stored.Value {
		return changed(e)
	}
	return ""
}

func checkProperty(_ context.Context, env ports.InputEnvironment, e domain.FingerprintEntry) string {
	stored := e.(domain.SystemProperty)
	v, ok := env.Property(stored.Name)
	if ok != stored.Present || v != stored.Value {
		return changed(e)
	}
	return ""
}

// checkValueSource recomputes the value; a source that fails now invalidates the entry.
func checkValueSource(ctx context.Context, env ports.InputEnvironment, e domain.FingerprintEntry) string {
	stored := e.(domain.ValueSource)
	v, err := env.Obtain(ctx, stored.Descriptor)
	if err != nil {
		return fmt.Sprintf("%s failed: %v", e.Describe(), err)
	}
	if v != stored.Value {
		return changed(e)
	}
	return ""
}

func checkUndeclared(_ context.Context, env ports.InputEnvironment, e domain.FingerprintEntry) string {
	stored := e.(domain.UndeclaredInput)
	switch stored.Descriptor.Kind {
	case domain.UndeclaredFileExists:
		if strconv.FormatBool(env.Exists(stored.Descriptor.Target)) != stored.Observed {
			return changed(e)
		}
		return ""
	default:
		return e.Describe() + " cannot be checked"
	}
}
