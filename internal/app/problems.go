package app

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// problemCollector gathers the problems of one invocation and logs each as it arrives.
type problemCollector struct {
	logger ports.Logger

	mu       sync.Mutex
	problems []domain.Problem
}

var _ ports.ProblemReporter = (*problemCollector)(nil)

func newProblemCollector(logger ports.Logger) *problemCollector {
	return &problemCollector{logger: logger}
}

// Report implements ports.ProblemReporter.
func (c *problemCollector) Report(p domain.Problem) {
	c.mu.Lock()
	c.problems = append(c.problems, p)
	c.mu.Unlock()

	c.logger.Warn(describeProblem(p))
}

// Problems returns a copy of the collected problems.
func (c *problemCollector) Problems() []domain.Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.problems)
}

// violationErr fails on the first access violation of error severity.
func (c *problemCollector) violationErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.problems {
		if p.Kind == domain.ProblemAccessViolation && p.Severity == domain.SeverityError {
			return errors.Join(domain.ErrAccessViolation, zerr.With(zerr.New(p.Message), "violation", p.Message))
		}
	}
	return nil
}

func describeProblem(p domain.Problem) string {
	return fmt.Sprintf("problem (%s): %s", p.Kind, p.Message)
}
