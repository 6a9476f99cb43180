package scheduler

import "go.trai.ch/recall/internal/core/domain"

// GetTaskStatusMap returns a copy of the internal task status map, keyed by task path.
func (s *Scheduler) GetTaskStatusMap() map[string]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[string]TaskStatus, len(s.taskStatus))
	for k, v := range s.taskStatus {
		statusMap[k] = v
	}
	return statusMap
}

// ResolveEnvironment exposes resolveEnvironment for tests.
func ResolveEnvironment(t *domain.Task, rc domain.ResolveContext) ([]string, error) {
	return resolveEnvironment(t, rc)
}
