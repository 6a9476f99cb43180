package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/engine/barrier"
	"go.trai.ch/recall/internal/engine/fingerprint"
)

// Clean removes every configuration cache entry of the build at rootDir.
func (a *App) Clean(_ context.Context, rootDir string) error {
	if rootDir == "" {
		rootDir = "."
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve build root"), "path", rootDir)
	}

	repo, err := a.openRepository(root)
	if err != nil {
		return err
	}

	a.logger.Info("removing configuration cache...")
	if err := repo.Clean(); err != nil {
		return err
	}
	a.logger.Info("removed configuration cache")
	return nil
}

// InspectReport describes the stored entry of one invocation.
type InspectReport struct {
	Key domain.CacheKey
	// Entries are the fingerprint entries in recorded order.
	Entries []domain.FingerprintEntry
	// Valid is true when the entry would be reused right now.
	Valid bool
	// Reason explains why the entry would not be reused.
	Reason   string
	Problems []domain.Problem
}

// Inspect reads the entry Run would consult for targets and opts, without configuring or executing.
// It returns ErrCacheEntryNotFound when there is none.
func (a *App) Inspect(ctx context.Context, targets []string, opts RunOptions) (*InspectReport, error) {
	if len(targets) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve build root"), "path", opts.RootDir)
	}

	key := cacheKey(root, targets, opts, barrier.SelectPolicy(true, opts.TaskAccess))
	repo, err := a.openRepository(root)
	if err != nil {
		return nil, err
	}

	entry, err := repo.Open(key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = entry.Close() }()

	data, err := entry.ReadFingerprint()
	if err != nil {
		return nil, err
	}
	fp, err := fingerprint.Decode(data)
	if err != nil {
		return nil, err
	}

	env, err := a.environments.Environment(root, opts.Properties)
	if err != nil {
		return nil, err
	}
	verdict := fingerprint.NewController(env).Check(ctx, fp)

	report := &InspectReport{
		Key:     key,
		Entries: fp.Entries,
		Valid:   verdict.Valid,
		Reason:  verdict.Reason,
	}
	if problems, err := repo.ReadProblems(key); err == nil && problems != nil {
		report.Problems = problems.Problems
	}
	return report, nil
}
