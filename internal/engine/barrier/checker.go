package barrier

import (
	"errors"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

// Decision is the outcome of an access check.
type Decision struct {
	Allowed   bool
	Violation Violation
}

// Checker decides whether task state may be read right now.
// A denied check has already been broadcast when CheckAccess returns.
type Checker interface {
	CheckAccess(task *domain.Task, accessor string) Decision
	Policy() domain.AccessPolicy
}

// NewChecker returns the checker for policy.
func NewChecker(policy domain.AccessPolicy, b *Barrier, broadcast *Broadcaster) Checker {
	if policy == domain.AccessTaskStateBased {
		return &stateBased{barrier: b, broadcast: broadcast}
	}
	return &barrierBased{barrier: b, broadcast: broadcast}
}

// SelectPolicy picks the policy of an invocation. A disabled cache never reconstructs tasks,
// so the coarse per-task policy is enough; otherwise the requested policy applies.
func SelectPolicy(cacheEnabled bool, requested domain.AccessPolicy) domain.AccessPolicy {
	if !cacheEnabled {
		return domain.AccessTaskStateBased
	}
	if requested == "" {
		return domain.AccessBarrierBased
	}
	return requested
}

// stateBased allows a read once the accessed task itself has started.
type stateBased struct {
	barrier   *Barrier
	broadcast *Broadcaster
}

func (c *stateBased) Policy() domain.AccessPolicy { return domain.AccessTaskStateBased }

func (c *stateBased) CheckAccess(task *domain.Task, accessor string) Decision {
	if task.CurrentState().Started() {
		return Decision{Allowed: true}
	}
	return deny(c.broadcast, Violation{
		Task: task.Path(), Accessor: accessor, Phase: c.barrier.Phase(), Policy: c.Policy(),
	})
}

// barrierBased allows every read once the build reached PhaseExecuting.
type barrierBased struct {
	barrier   *Barrier
	broadcast *Broadcaster
}

func (c *barrierBased) Policy() domain.AccessPolicy { return domain.AccessBarrierBased }

func (c *barrierBased) CheckAccess(task *domain.Task, accessor string) Decision {
	phase := c.barrier.Phase()
	if phase == domain.PhaseExecuting {
		return Decision{Allowed: true}
	}
	return deny(c.broadcast, Violation{
		Task: task.Path(), Accessor: accessor, Phase: phase, Policy: c.Policy(),
	})
}

func deny(broadcast *Broadcaster, v Violation) Decision {
	if broadcast != nil {
		broadcast.Broadcast(v)
	}
	return Decision{Violation: v}
}

// Guard is the StateReader handed to build logic.
// In ModeStrict a denied read fails with ErrAccessViolation; in ModeAdvisory it answers anyway.
type Guard struct {
	checker Checker
	mode    domain.EnforcementMode
}

var _ domain.StateReader = (*Guard)(nil)

// NewGuard creates a guard enforcing checker decisions with mode.
func NewGuard(checker Checker, mode domain.EnforcementMode) *Guard {
	return &Guard{checker: checker, mode: mode}
}

// ReadState implements domain.StateReader.
func (g *Guard) ReadState(task *domain.Task, accessor string) (domain.TaskState, error) {
	d := g.checker.CheckAccess(task, accessor)
	if !d.Allowed && g.mode == domain.ModeStrict {
		err := zerr.With(zerr.New(d.Violation.Description()), "task", d.Violation.Task)
		return domain.StateNotStarted, errors.Join(domain.ErrAccessViolation, err)
	}
	return task.CurrentState(), nil
}
