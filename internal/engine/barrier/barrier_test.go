package barrier_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/engine/barrier"
)

func newTask(t *testing.T, project, name string) *domain.Task {
	t.Helper()
	p := domain.NewProject(project, "/"+project)
	task := &domain.Task{Name: domain.NewInternedString(name)}
	require.NoError(t, p.AddTask(task))
	return task
}

func TestBarrier_CrossesOnce(t *testing.T) {
	t.Parallel()

	b := barrier.New()
	assert.Equal(t, domain.PhaseConfiguring, b.Phase())
	assert.True(t, b.AtConfigurationTime())

	require.NoError(t, b.Cross())
	assert.Equal(t, domain.PhaseExecuting, b.Phase())
	assert.False(t, b.AtConfigurationTime())

	err := b.Cross()
	require.ErrorIs(t, err, domain.ErrBarrierCrossed)
	assert.Equal(t, domain.PhaseExecuting, b.Phase())
}

func TestBarrier_ConcurrentCrossSucceedsOnce(t *testing.T) {
	t.Parallel()

	b := barrier.New()
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 16 {
		wg.Go(func() {
			if b.Cross() == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		})
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestBarrierBased_DeniesEveryTaskUntilCrossed(t *testing.T) {
	t.Parallel()

	b := barrier.New()
	var seen []barrier.Violation
	bc := barrier.NewBroadcaster()
	bc.Subscribe(func(v barrier.Violation) { seen = append(seen, v) })
	checker := barrier.NewChecker(domain.AccessBarrierBased, b, bc)

	task := newTask(t, "app", "build")
	task.MarkExecuted(true, nil)

	// Even a task that already ran is denied before the flip.
	d := checker.CheckAccess(task, "app:test")
	assert.False(t, d.Allowed)
	require.Len(t, seen, 1)
	assert.Equal(t, "app:build", seen[0].Task)
	assert.Equal(t, domain.AccessBarrierBased, seen[0].Policy)
	assert.Equal(t, "execution state of task 'app:build' was read by app:test during CONFIGURING", seen[0].Description())

	require.NoError(t, b.Cross())

	other := newTask(t, "lib", "compile")
	assert.True(t, checker.CheckAccess(task, "app:test").Allowed)
	assert.True(t, checker.CheckAccess(other, "").Allowed)
	assert.Len(t, seen, 1)
}

func TestStateBased_AllowsStartedTasksOnly(t *testing.T) {
	t.Parallel()

	b := barrier.New()
	bc := barrier.NewBroadcaster()
	var seen []barrier.Violation
	bc.Subscribe(func(v barrier.Violation) { seen = append(seen, v) })
	checker := barrier.NewChecker(domain.AccessTaskStateBased, b, bc)
	assert.Equal(t, domain.AccessTaskStateBased, checker.Policy())

	task := newTask(t, "app", "build")
	assert.False(t, checker.CheckAccess(task, "").Allowed)

	task.MarkExecuting()
	assert.True(t, checker.CheckAccess(task, "").Allowed)

	// The global phase is irrelevant to this policy.
	require.NoError(t, b.Cross())
	pending := newTask(t, "app", "test")
	assert.False(t, checker.CheckAccess(pending, "").Allowed)
	assert.Len(t, seen, 2)
	assert.Equal(t, domain.PhaseExecuting, seen[1].Phase)
}

func TestBroadcaster_NotifiesInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	bc := barrier.NewBroadcaster()
	var order []int
	for i := range 3 {
		bc.Subscribe(func(barrier.Violation) { order = append(order, i) })
	}
	bc.Broadcast(barrier.Violation{Task: "x"})
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestGuard_EnforcementModes(t *testing.T) {
	t.Parallel()

	t.Run("advisory answers with live state", func(t *testing.T) {
		t.Parallel()
		checker := barrier.NewChecker(domain.AccessBarrierBased, barrier.New(), barrier.NewBroadcaster())
		guard := barrier.NewGuard(checker, domain.ModeAdvisory)

		task := newTask(t, "app", "build")
		state, err := guard.ReadState(task, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StateNotStarted, state)
	})

	t.Run("strict fails", func(t *testing.T) {
		t.Parallel()
		checker := barrier.NewChecker(domain.AccessBarrierBased, barrier.New(), barrier.NewBroadcaster())
		guard := barrier.NewGuard(checker, domain.ModeStrict)

		_, err := guard.ReadState(newTask(t, "app", "build"), "app:test")
		require.ErrorIs(t, err, domain.ErrAccessViolation)
		assert.ErrorContains(t, err, "app:build")
	})

	t.Run("strict allows after crossing", func(t *testing.T) {
		t.Parallel()
		b := barrier.New()
		guard := barrier.NewGuard(barrier.NewChecker(domain.AccessBarrierBased, b, nil), domain.ModeStrict)
		require.NoError(t, b.Cross())

		task := newTask(t, "app", "build")
		task.MarkExecuted(false, nil)
		state, err := guard.ReadState(task, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StateExecuted, state)
	})
}

func TestSelectPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.AccessTaskStateBased, barrier.SelectPolicy(false, domain.AccessBarrierBased))
	assert.Equal(t, domain.AccessBarrierBased, barrier.SelectPolicy(true, ""))
	assert.Equal(t, domain.AccessTaskStateBased, barrier.SelectPolicy(true, domain.AccessTaskStateBased))
	assert.Equal(t, domain.AccessBarrierBased, barrier.SelectPolicy(true, domain.AccessBarrierBased))
}
