package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Phase is the build phase guarded by the configuration barrier.
type Phase uint32

const (
	// PhaseConfiguring is the initial phase: scripts are evaluated and the plan is built.
	PhaseConfiguring Phase = iota
	// PhaseExecuting starts once the plan is handed to the execution engine.
	PhaseExecuting
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	if p == PhaseExecuting {
		return "EXECUTING"
	}
	return "CONFIGURING"
}

// AccessPolicy selects how out-of-phase task state access is detected.
type AccessPolicy string

const (
	// AccessBarrierBased allows access only once the whole build reached PhaseExecuting.
	AccessBarrierBased AccessPolicy = "barrier"
	// AccessTaskStateBased allows access once the accessed task itself started executing.
	AccessTaskStateBased AccessPolicy = "state"
)

// ParseAccessPolicy converts a flag value into an AccessPolicy.
func ParseAccessPolicy(s string) (AccessPolicy, error) {
	switch AccessPolicy(s) {
	case AccessBarrierBased, AccessTaskStateBased:
		return AccessPolicy(s), nil
	case "":
		return AccessBarrierBased, nil
	default:
		return "", errors.Join(ErrInvalidRunOptions, zerr.With(zerr.New("unknown task access policy "+s), "task_access", s))
	}
}

// EnforcementMode decides how severe an access violation is.
type EnforcementMode string

const (
	// ModeAdvisory reports violations as deprecation warnings and continues.
	ModeAdvisory EnforcementMode = "advisory"
	// ModeStrict fails the invocation before execution starts.
	ModeStrict EnforcementMode = "strict"
)
