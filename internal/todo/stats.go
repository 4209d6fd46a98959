package todo

import "simpletodo/internal/models"

// Stats is a point-in-time summary of the collection.
type Stats struct {
	Total                int `json:"total"`
	Completed            int `json:"completed"`
	Pending              int `json:"pending"`
	Overdue              int `json:"overdue"`
	HighPriority         int `json:"highPriority"`
	CompletionPercentage int `json:"completionPercentage"`
}

// Stats computes every counter in a single pass.
func (s *Store) Stats() Stats {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.tasks)}
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.IsCompleted {
			st.Completed++
		} else {
			st.Pending++
		}
		if t.IsOverdueAt(now) {
			st.Overdue++
		}
		if t.IsHighPriority() {
			st.HighPriority++
		}
	}
	st.CompletionPercentage = completionPercentage(st.Completed, st.Total)

	return st
}

// completionPercentage is completed/total*100 rounded down, 0 for an empty collection.
func completionPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

func (s *Store) count(match func(t *models.Task) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for i := range s.tasks {
		if match(&s.tasks[i]) {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed tasks.
func (s *Store) CompletedCount() int {
	return s.count(func(t *models.Task) bool { return t.IsCompleted })
}

// PendingCount returns the number of open tasks.
func (s *Store) PendingCount() int {
	return s.count(func(t *models.Task) bool { return !t.IsCompleted })
}

// OverdueCount returns the number of open tasks older than models.OverdueAfter.
func (s *Store) OverdueCount() int {
	now := s.now()
	return s.count(func(t *models.Task) bool { return t.IsOverdueAt(now) })
}

// HighPriorityCount returns the number of open high-priority tasks.
func (s *Store) HighPriorityCount() int {
	return s.count(func(t *models.Task) bool { return t.IsHighPriority() })
}

// CompletionPercentage returns the share of completed tasks as a whole
// percentage, rounded down.
func (s *Store) CompletionPercentage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := 0
	for i := range s.tasks {
		if s.tasks[i].IsCompleted {
			completed++
		}
	}
	return completionPercentage(completed, len(s.tasks))
}
