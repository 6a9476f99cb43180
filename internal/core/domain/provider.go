package domain

import "strings"

// StateReader reads execution-only task state on behalf of an accessor.
// Implementations consult the phase barrier before answering.
type StateReader interface {
	ReadState(task *Task, accessor string) (TaskState, error)
}

// ResolveContext is what a provider may observe while it is resolved at execution time.
type ResolveContext interface {
	StateReader
	LookupEnv(name string) (string, bool)
}

// Provider is a lazy value: it is captured during configuration and resolved during execution.
type Provider interface {
	Get(rc ResolveContext) (string, error)
}

// ConstProvider returns a fixed value.
type ConstProvider struct {
	Value string
}

// Get implements Provider.
func (p *ConstProvider) Get(ResolveContext) (string, error) {
	return p.Value, nil
}

// ConcatProvider joins the values of its parts.
type ConcatProvider struct {
	Parts []Provider
}

// Get implements Provider.
func (p *ConcatProvider) Get(rc ResolveContext) (string, error) {
	var b strings.Builder
	for _, part := range p.Parts {
		v, err := part.Get(rc)
		if err != nil {
			return "", err
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// EnvProvider reads an environment variable when resolved. It is an execution input,
// not a configuration input, so it never appears in the fingerprint.
type EnvProvider struct {
	Name    string
	Default string
}

// Get implements Provider.
func (p *EnvProvider) Get(rc ResolveContext) (string, error) {
	if v, ok := rc.LookupEnv(p.Name); ok {
		return v, nil
	}
	return p.Default, nil
}

// TaskStateProvider exposes the execution state of another task, e.g. "executed".
type TaskStateProvider struct {
	Task     *Task
	Consumer string
}

// Get implements Provider.
func (p *TaskStateProvider) Get(rc ResolveContext) (string, error) {
	state, err := rc.ReadState(p.Task, p.Consumer)
	if err != nil {
		return "", err
	}
	return state.String(), nil
}
