// Package scheduler executes the tasks of a configured plan.
package scheduler

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// TaskStatus represents the status of a task within one run.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting for its dependencies.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped indicates the task was disabled and not executed.
	StatusSkipped TaskStatus = "Skipped"
)

// Scheduler runs tasks in dependency order with bounded parallelism.
type Scheduler struct {
	executor  ports.Executor
	telemetry ports.Telemetry

	mu         sync.RWMutex
	taskStatus map[string]TaskStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(executor ports.Executor, telemetry ports.Telemetry) *Scheduler {
	return &Scheduler{
		executor:   executor,
		telemetry:  telemetry,
		taskStatus: make(map[string]TaskStatus),
	}
}

func (s *Scheduler) initTaskStatuses(tasks []*domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taskStatus = make(map[string]TaskStatus, len(tasks))
	for _, t := range tasks {
		s.taskStatus[t.Path()] = StatusPending
	}
}

func (s *Scheduler) updateStatus(t *domain.Task, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[t.Path()] = status
}

// Run executes tasks, which must already be in dependency order, e.g. from Plan.ExecutionOrder.
// Dependencies outside tasks are treated as satisfied. A failed task blocks its dependents;
// a disabled task is skipped and does not. Providers are resolved through rc right before
// each task starts, so they observe the final state of the task's dependencies.
func (s *Scheduler) Run(
	ctx context.Context,
	tasks []*domain.Task,
	rc domain.ResolveContext,
	parallelism int,
) error {
	if parallelism < 1 {
		parallelism = 1
	}

	s.initTaskStatuses(tasks)
	state := s.newRunState(ctx, tasks, rc, parallelism)
	err := state.runExecutionLoop()
	_ = state.workers.Wait()
	return err
}

type result struct {
	task *domain.Task
	err  error
}

type schedulerRunState struct {
	s           *Scheduler
	ctx         context.Context
	rc          domain.ResolveContext
	parallelism int

	inDegree   map[*domain.Task]int
	dependents map[*domain.Task][]*domain.Task
	ready      []*domain.Task
	active     int
	resultsCh  chan result
	workers    errgroup.Group
	errs       error
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	tasks []*domain.Task,
	rc domain.ResolveContext,
	parallelism int,
) *schedulerRunState {
	inRun := make(map[*domain.Task]bool, len(tasks))
	for _, t := range tasks {
		inRun[t] = true
	}

	inDegree := make(map[*domain.Task]int, len(tasks))
	dependents := make(map[*domain.Task][]*domain.Task, len(tasks))
	var ready []*domain.Task
	for _, t := range tasks {
		degree := 0
		for _, dep := range t.DependsOn {
			if inRun[dep] && !slices.Contains(dependents[dep], t) {
				dependents[dep] = append(dependents[dep], t)
				degree++
			}
		}
		inDegree[t] = degree
		if degree == 0 {
			ready = append(ready, t)
		}
	}

	return &schedulerRunState{
		s:           s,
		ctx:         ctx,
		rc:          rc,
		parallelism: parallelism,
		inDegree:    inDegree,
		dependents:  dependents,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
	}
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		if state.ctx.Err() != nil {
			// Drain running tasks; nothing new is scheduled.
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}
	return state.errs
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		t := state.ready[0]
		state.ready = state.ready[1:]

		if !t.Enabled {
			state.skip(t)
			continue
		}

		state.active++
		state.s.updateStatus(t, StatusRunning)
		state.workers.Go(func() error {
			state.executeTask(t)
			return nil
		})
	}
}

// skip marks a disabled task and releases its dependents right away.
func (state *schedulerRunState) skip(t *domain.Task) {
	_, v := state.s.telemetry.Record(state.ctx, domain.TaskVertexName(t))
	v.Cached()
	v.Complete(nil)

	t.MarkSkipped()
	state.s.updateStatus(t, StatusSkipped)
	state.release(t)
}

func (state *schedulerRunState) executeTask(t *domain.Task) {
	// The vertex completes before the result is sent so the loop never finishes ahead of it.
	res := func() result {
		ctx, v := state.s.telemetry.Record(state.ctx, domain.TaskVertexName(t))

		t.MarkExecuting()
		env, err := resolveEnvironment(t, state.rc)
		if err == nil {
			err = state.s.executor.Execute(ctx, t, env, v.Stdout(), v.Stderr())
		}
		t.MarkExecuted(true, err)
		v.Complete(err)

		return result{task: t, err: err}
	}()

	state.resultsCh <- res
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		wrapped := zerr.With(zerr.Wrap(res.err, domain.ErrTaskExecutionFailed.Error()), "task", res.task.Path())
		state.errs = errors.Join(state.errs, wrapped)
		state.s.updateStatus(res.task, StatusFailed)
		return
	}

	state.s.updateStatus(res.task, StatusCompleted)
	state.release(res.task)
}

func (state *schedulerRunState) release(t *domain.Task) {
	for _, dep := range state.dependents[t] {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

// resolveEnvironment resolves the task's providers into sorted "KEY=VALUE" pairs.
func resolveEnvironment(t *domain.Task, rc domain.ResolveContext) ([]string, error) {
	if len(t.Environment) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(t.Environment))
	for k := range t.Environment {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := t.Environment[k].Get(rc)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve environment variable "+k), "env", k)
		}
		env = append(env, k+"="+v)
	}
	return env, nil
}
