package domain

import "sync/atomic"

// Task represents a unit of work in the build plan.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name        InternedString
	Project     *Project
	Command     []string
	Inputs      []InternedString
	Outputs     []InternedString
	DependsOn   []*Task
	Environment map[string]Provider
	Enabled     bool
	WorkingDir  InternedString

	exec taskExecution `recall:"transient"`
}

// Path returns the qualified task path, "project:task".
func (t *Task) Path() string {
	if t.Project == nil {
		return t.Name.String()
	}
	return t.Project.Name + ":" + t.Name.String()
}

// CurrentState returns the execution state without consulting the phase barrier.
// Configuration-time code must read task state through a StateReader instead.
func (t *Task) CurrentState() TaskState {
	return TaskState(t.exec.state.Load())
}

// DidWork reports whether the task executed and performed work.
// Like CurrentState it bypasses the phase barrier.
func (t *Task) DidWork() bool {
	return t.exec.didWork.Load()
}

// MarkExecuting records that the task started executing.
func (t *Task) MarkExecuting() {
	t.exec.state.Store(uint32(StateExecuting))
}

// MarkExecuted records the end of the task's execution.
func (t *Task) MarkExecuted(didWork bool, err error) {
	t.exec.didWork.Store(didWork)
	if err != nil {
		t.exec.state.Store(uint32(StateFailed))
		return
	}
	t.exec.state.Store(uint32(StateExecuted))
}

// MarkSkipped records that the task was not executed.
func (t *Task) MarkSkipped() {
	t.exec.state.Store(uint32(StateSkipped))
}

// taskExecution is execution-only state. It is never persisted: a restored plan always
// starts with every task NotStarted, and its zero value is ready to use.
type taskExecution struct {
	state   atomic.Uint32
	didWork atomic.Bool
}

// TaskState is the execution state of a task.
type TaskState uint32

const (
	// StateNotStarted indicates the task has not begun executing.
	StateNotStarted TaskState = iota
	// StateExecuting indicates the task is currently executing.
	StateExecuting
	// StateExecuted indicates the task finished successfully.
	StateExecuted
	// StateFailed indicates the task execution failed.
	StateFailed
	// StateSkipped indicates the task was not executed (disabled or onlyIf false).
	StateSkipped
)

// String returns the string representation of the state.
func (s TaskState) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateExecuting:
		return "executing"
	case StateExecuted:
		return "executed"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Started reports whether the task has begun or finished executing.
func (s TaskState) Started() bool {
	return s != StateNotStarted
}
