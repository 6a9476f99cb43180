package progrock

import (
	"slices"
	"sync"

	"github.com/vito/progrock"
)

// VertexSummary is the last known status of a recorded vertex.
type VertexSummary struct {
	Name     string
	Cached   bool
	Done     bool
	Failed   bool
	Internal bool
}

// Journal is a progrock.Writer that keeps the status of every vertex in start order.
// The host reads it to summarize an invocation.
type Journal struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*VertexSummary
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{byID: make(map[string]*VertexSummary)}
}

// WriteStatus implements progrock.Writer.
func (j *Journal) WriteStatus(update *progrock.StatusUpdate) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, v := range update.Vertexes {
		s, ok := j.byID[v.Id]
		if !ok {
			s = &VertexSummary{}
			j.byID[v.Id] = s
			j.order = append(j.order, v.Id)
		}
		s.Name = v.Name
		s.Internal = v.Internal
		s.Cached = s.Cached || v.Cached
		s.Done = v.Completed != nil
		s.Failed = v.Error != nil
	}
	return nil
}

// Close implements progrock.Writer.
func (j *Journal) Close() error {
	return nil
}

// Vertices returns a copy of the recorded vertices in start order.
func (j *Journal) Vertices() []VertexSummary {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]VertexSummary, 0, len(j.order))
	for _, id := range j.order {
		out = append(out, *j.byID[id])
	}
	return slices.Clip(out)
}
