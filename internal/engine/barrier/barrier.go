// Package barrier guards execution-only task state against configuration-time reads.
package barrier

import (
	"sync/atomic"

	"go.trai.ch/recall/internal/core/domain"
)

// Barrier is the phase of one invocation. It starts in PhaseConfiguring and is crossed once.
// Crossing is a release store and every Phase call an acquire load, so workers started after
// Cross observe PhaseExecuting.
type Barrier struct {
	phase atomic.Uint32
}

// New creates a barrier in PhaseConfiguring.
func New() *Barrier {
	return &Barrier{}
}

// Phase returns the current phase.
func (b *Barrier) Phase() domain.Phase {
	return domain.Phase(b.phase.Load())
}

// AtConfigurationTime reports whether the barrier has not been crossed yet.
func (b *Barrier) AtConfigurationTime() bool {
	return b.Phase() == domain.PhaseConfiguring
}

// Cross moves the barrier to PhaseExecuting.
// It returns ErrBarrierCrossed if the barrier was already crossed.
func (b *Barrier) Cross() error {
	if !b.phase.CompareAndSwap(uint32(domain.PhaseConfiguring), uint32(domain.PhaseExecuting)) {
		return domain.ErrBarrierCrossed
	}
	return nil
}
