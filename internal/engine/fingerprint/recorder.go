// Package fingerprint records the configuration inputs of a build and
// decides whether a stored record still matches the environment.
package fingerprint

import (
	"slices"
	"sync"

	"go.trai.ch/recall/internal/core/domain"
)

// Recorder accumulates fingerprint entries in observation order.
// A repeated read of the same input keeps only its first observation.
type Recorder struct {
	mu        sync.Mutex
	entries   []domain.FingerprintEntry
	seen      map[entryID]struct{}
	suspended int
}

type entryID struct {
	kind domain.EntryKind
	key  string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: make(map[entryID]struct{})}
}

// Record appends e unless recording is suspended or the same input was already recorded.
// It reports whether the entry was kept.
func (r *Recorder) Record(e domain.FingerprintEntry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.suspended > 0 {
		return false
	}
	id := entryID{kind: e.Kind(), key: e.Key()}
	if _, dup := r.seen[id]; dup {
		return false
	}
	r.seen[id] = struct{}{}
	r.entries = append(r.entries, e)
	return true
}

// Suspend stops recording until the matching Resume. Calls nest.
func (r *Recorder) Suspend() {
	r.mu.Lock()
	r.suspended++
	r.mu.Unlock()
}

// Resume undoes one Suspend.
func (r *Recorder) Resume() {
	r.mu.Lock()
	if r.suspended > 0 {
		r.suspended--
	}
	r.mu.Unlock()
}

// Fingerprint returns a snapshot of the entries recorded so far.
func (r *Recorder) Fingerprint() *domain.Fingerprint {
	r.mu.Lock()
	defer r.mu.Unlock()

	fp := domain.NewFingerprint()
	fp.Entries = slices.Clone(r.entries)
	return fp
}
