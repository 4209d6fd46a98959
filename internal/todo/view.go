package todo

import (
	"fmt"
	"time"

	"simpletodo/internal/models"
	"simpletodo/internal/query"
)

// View is the presentation state applied by Visible. It lives in memory only.
type View struct {
	Filter query.Filter `json:"filter"`
	Sort   query.Sort   `json:"sort"`
	Search string       `json:"search"`
}

// DefaultView shows every task, newest first.
func DefaultView() View {
	return View{Filter: query.FilterAll, Sort: query.SortNewest}
}

// View returns the current view.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView replaces the whole view after validating it.
func (s *Store) SetView(v View) error {
	_, err := s.updateView(func(cur *View) { *cur = v }, false)
	return err
}

// SetFilter changes the filter of the current view.
func (s *Store) SetFilter(f query.Filter) error {
	_, err := s.updateView(func(v *View) { v.Filter = f }, false)
	return err
}

// SetSort changes the sort order of the current view.
func (s *Store) SetSort(o query.Sort) error {
	_, err := s.updateView(func(v *View) { v.Sort = o }, false)
	return err
}

// SetSearch changes the search text of the current view.
func (s *Store) SetSearch(text string) {
	_, _ = s.updateView(func(v *View) { v.Search = text }, false)
}

// ApplyView edits the current view with apply and returns the tasks the
// edited view selects. Both steps run under one lock.
func (s *Store) ApplyView(apply func(*View)) ([]models.Task, error) {
	return s.updateView(apply, true)
}

func (s *Store) updateView(apply func(*View), evaluate bool) ([]models.Task, error) {
	var now time.Time
	if evaluate {
		now = s.now()
	}

	s.mu.Lock()
	next := s.view
	apply(&next)
	if !next.Filter.Valid() {
		s.mu.Unlock()
		return nil, fmt.Errorf("unknown filter %q", next.Filter)
	}
	if !next.Sort.Valid() {
		s.mu.Unlock()
		return nil, fmt.Errorf("unknown sort %q", next.Sort)
	}
	changed := s.view != next
	s.view = next

	var visible []models.Task
	if evaluate {
		visible = query.Run(s.tasks, next.options(now))
	}
	s.mu.Unlock()

	if changed {
		s.notify(Event{Kind: EventViewChanged})
	}
	return visible, nil
}

func (v View) options(now time.Time) query.Options {
	return query.Options{Filter: v.Filter, Sort: v.Sort, Search: v.Search, Now: now}
}

// Visible evaluates the current view against the live collection. The
// result is recomputed on every call.
func (s *Store) Visible() []models.Task {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return query.Run(s.tasks, s.view.options(now))
}
