package domain

import "time"

// ProblemKind classifies an entry of the problems report.
type ProblemKind string

const (
	// ProblemAccessViolation is execution-only task state read at configuration time.
	ProblemAccessViolation ProblemKind = "access-violation"
	// ProblemSerialization is a plan that could not be stored.
	ProblemSerialization ProblemKind = "serialization"
	// ProblemInput is an input that could not be tracked faithfully.
	ProblemInput ProblemKind = "input"
)

// Severity of a problem.
type Severity string

const (
	// SeverityWarning problems are reported and the build continues.
	SeverityWarning Severity = "warning"
	// SeverityError problems fail the invocation.
	SeverityError Severity = "error"
)

// Problem is a single diagnostic collected during configuration.
type Problem struct {
	Kind     ProblemKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Location string      `json:"location,omitzero"`
}

// ProblemsReport is persisted next to the cache entries of a key so it can be replayed on a hit.
type ProblemsReport struct {
	InvocationID string    `json:"invocation_id,omitzero"`
	CacheKey     string    `json:"cache_key,omitzero"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	Problems     []Problem `json:"problems,omitzero"`
}

// HasErrors reports whether any problem has error severity.
func (r *ProblemsReport) HasErrors() bool {
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}
