package fingerprint

import (
	"context"
	iofs "io/fs"
	"strconv"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// Tracker answers configuration reads from the live environment and records each of them.
type Tracker struct {
	env    ports.InputEnvironment
	rec    *Recorder
	policy domain.ModTimePolicy
}

var _ ports.InputTracker = (*Tracker)(nil)

// NewTracker creates a tracker recording into rec.
func NewTracker(env ports.InputEnvironment, rec *Recorder, policy domain.ModTimePolicy) *Tracker {
	return &Tracker{env: env, rec: rec, policy: policy}
}

// ReadFile implements ports.InputTracker.
// A missing file is recorded too, so that creating it later invalidates the entry,
// and the returned error matches fs.ErrNotExist.
func (t *Tracker) ReadFile(ctx context.Context, path string) ([]byte, error) {
	snap, err := t.env.Snapshot(ctx, path, t.policy)
	if err != nil {
		return nil, err
	}
	t.rec.Record(snap)
	if !snap.Exists {
		return nil, zerr.With(zerr.Wrap(iofs.ErrNotExist, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	return t.env.ReadFile(path)
}

// FileExists implements ports.InputTracker.
func (t *Tracker) FileExists(path string) bool {
	exists := t.env.Exists(path)
	t.rec.Record(domain.UndeclaredInput{
		Descriptor: domain.UndeclaredDescriptor{Kind: domain.UndeclaredFileExists, Target: path},
		Observed:   strconv.FormatBool(exists),
	})
	return exists
}

// Getenv implements ports.InputTracker.
func (t *Tracker) Getenv(name string) (string, bool) {
	v, ok := t.env.LookupEnv(name)
	t.rec.Record(domain.EnvVar{Name: name, Value: v, Present: ok})
	return v, ok
}

// Property implements ports.InputTracker.
func (t *Tracker) Property(name string) (string, bool) {
	v, ok := t.env.Property(name)
	t.rec.Record(domain.SystemProperty{Name: name, Value: v, Present: ok})
	return v, ok
}

// Obtain implements ports.InputTracker.
// A failing value source is not recorded: the configuration run fails with the error instead.
func (t *Tracker) Obtain(ctx context.Context, source domain.ValueSourceDescriptor) (string, error) {
	v, err := t.env.Obtain(ctx, source)
	if err != nil {
		return "", err
	}
	t.rec.Record(domain.ValueSource{Descriptor: source, Value: v})
	return v, nil
}

// WithoutTracking implements ports.InputTracker.
func (t *Tracker) WithoutTracking(fn func() error) error {
	t.rec.Suspend()
	defer t.rec.Resume()
	return fn()
}
