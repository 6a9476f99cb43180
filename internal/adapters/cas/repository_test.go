package cas_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/recall/internal/adapters/cas"
	"go.trai.ch/recall/internal/core/domain"
)

func testKey(name string) domain.CacheKey {
	return domain.NewCacheKey(domain.CacheKeyParams{RootDir: "/work", Tasks: []string{name}})
}

func store(t *testing.T, repo *cas.Repository, key domain.CacheKey, fp, model string) {
	t.Helper()
	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte(fp)))
	require.NoError(t, w.WriteModel([]byte(model)))
	require.NoError(t, w.Commit())
}

func load(t *testing.T, repo *cas.Repository, key domain.CacheKey) (string, string) {
	t.Helper()
	h, err := repo.Open(key)
	require.NoError(t, err)
	defer func() { require.NoError(t, h.Close()) }()
	fp, err := h.ReadFingerprint()
	require.NoError(t, err)
	model, err := h.ReadModel()
	require.NoError(t, err)
	return string(fp), string(model)
}

func TestRepository_CommitAndOpen(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	assert.False(t, repo.Exists(key))
	_, err = repo.Open(key)
	require.ErrorIs(t, err, domain.ErrCacheEntryNotFound)

	store(t, repo, key, "fp-1", "model-1")
	assert.True(t, repo.Exists(key))
	fp, model := load(t, repo, key)
	assert.Equal(t, "fp-1", fp)
	assert.Equal(t, "model-1", model)

	store(t, repo, key, "fp-2", "model-2")
	fp, model = load(t, repo, key)
	assert.Equal(t, "fp-2", fp)
	assert.Equal(t, "model-2", model)

	// Superseded entries are pruned after a commit.
	entries, err := os.ReadDir(filepath.Join(repo.Root(), key.String()))
	require.NoError(t, err)
	dirs := 0
	for _, e := range entries {
		if e.IsDir() {
			dirs++
		}
	}
	assert.Equal(t, 1, dirs)
}

func TestRepository_StagedEntryIsInvisible(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte("fp")))
	require.NoError(t, w.WriteModel([]byte("model")))
	assert.False(t, repo.Exists(key))

	require.NoError(t, w.Discard())
	assert.False(t, repo.Exists(key))
	assert.ErrorIs(t, w.Commit(), domain.ErrWriteHandleClosed)
}

func TestRepository_FailedCommitKeepsPreviousEntry(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")
	store(t, repo, key, "fp-old", "model-old")

	repo.SetBeforeCommit(func(string) error { return errors.New("disk full") })

	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte("fp-new")))
	require.NoError(t, w.WriteModel([]byte("model-new")))

	err = w.Commit()
	require.ErrorIs(t, err, domain.ErrRepositoryIO)
	assert.ErrorContains(t, err, "disk full")

	fp, model := load(t, repo, key)
	assert.Equal(t, "fp-old", fp)
	assert.Equal(t, "model-old", model)

	// The key is unlocked again: a new writer proceeds.
	repo.SetBeforeCommit(nil)
	store(t, repo, key, "fp-3", "model-3")
	fp, _ = load(t, repo, key)
	assert.Equal(t, "fp-3", fp)
}

func TestRepository_IncompleteEntryIsRejected(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte("fp")))
	require.ErrorIs(t, w.Commit(), domain.ErrRepositoryIO)
	assert.False(t, repo.Exists(key))
}

func TestRepository_MissingCompanionFileIsNotFound(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")
	store(t, repo, key, "fp", "model")

	keyDir := filepath.Join(repo.Root(), key.String())
	current, err := os.ReadFile(filepath.Join(keyDir, domain.CurrentFileName))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(keyDir, string(current), domain.ModelFileName)))

	assert.False(t, repo.Exists(key))
	_, err = repo.Open(key)
	assert.ErrorIs(t, err, domain.ErrCacheEntryNotFound)
}

func TestRepository_CorruptCurrentPointer(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")
	store(t, repo, key, "fp", "model")

	current := filepath.Join(repo.Root(), key.String(), domain.CurrentFileName)
	require.NoError(t, os.WriteFile(current, []byte("../../etc"), 0o600))
	assert.False(t, repo.Exists(key))
}

func TestRepository_ConcurrentWritersAreSerialized(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	first, err := repo.BeginWrite(key)
	require.NoError(t, err)

	var wg sync.WaitGroup
	secondStarted := make(chan struct{})
	secondDone := make(chan struct{})
	wg.Go(func() {
		close(secondStarted)
		w, err := repo.BeginWrite(key)
		if !assert.NoError(t, err) {
			return
		}
		close(secondDone)
		assert.NoError(t, w.WriteFingerprint([]byte("fp-2")))
		assert.NoError(t, w.WriteModel([]byte("model-2")))
		assert.NoError(t, w.Commit())
	})

	<-secondStarted
	select {
	case <-secondDone:
		t.Fatal("second writer acquired the key while the first held it")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.WriteFingerprint([]byte("fp-1")))
	require.NoError(t, first.WriteModel([]byte("model-1")))
	require.NoError(t, first.Commit())
	wg.Wait()

	fp, model := load(t, repo, key)
	assert.Equal(t, "fp-2", fp)
	assert.Equal(t, "model-2", model)
}

func TestRepository_Problems(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	got, err := repo.ReadProblems(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	report := &domain.ProblemsReport{
		InvocationID: "inv-1",
		CacheKey:     key.String(),
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Problems: []domain.Problem{{
			Kind:     domain.ProblemAccessViolation,
			Severity: domain.SeverityWarning,
			Message:  "execution state of task 'app:build' was read",
			Location: "app/recall.yaml",
		}},
	}
	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte("fp")))
	require.NoError(t, w.WriteModel([]byte("model")))
	require.NoError(t, w.WriteProblems(report))

	// Staged problems stay invisible until the entry is committed.
	got, err = repo.ReadProblems(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, w.Commit())
	got, err = repo.ReadProblems(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.Problems, got.Problems)
	assert.True(t, report.CreatedAt.Equal(got.CreatedAt))
}

func TestRepository_ProblemsFollowTheCurrentEntry(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte("fp-1")))
	require.NoError(t, w.WriteModel([]byte("model-1")))
	require.NoError(t, w.WriteProblems(&domain.ProblemsReport{Problems: []domain.Problem{{Message: "stale"}}}))
	require.NoError(t, w.Commit())

	// A later entry without problems must not replay the earlier report.
	store(t, repo, key, "fp-2", "model-2")
	got, err := repo.ReadProblems(key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_DiscardDropsStagedProblems(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	key := testKey("build")

	w, err := repo.BeginWrite(key)
	require.NoError(t, err)
	require.NoError(t, w.WriteFingerprint([]byte("fp")))
	require.NoError(t, w.WriteModel([]byte("model")))
	require.NoError(t, w.WriteProblems(&domain.ProblemsReport{}))
	require.NoError(t, w.Discard())

	assert.False(t, repo.Exists(key))
	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRepository_KeysRemoveClean(t *testing.T) {
	t.Parallel()

	repo, err := cas.NewRepository(t.TempDir())
	require.NoError(t, err)
	a, b := testKey("a"), testKey("b")
	store(t, repo, a, "fp", "model")
	store(t, repo, b, "fp", "model")

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.CacheKey{a, b}, keys)

	require.NoError(t, repo.Remove(a))
	keys, err = repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []domain.CacheKey{b}, keys)

	require.NoError(t, repo.Clean())
	keys, err = repo.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
