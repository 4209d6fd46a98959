// Package query derives the visible task list from a collection: a filter,
// an optional text search and a sort order. Every function here is pure.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"simpletodo/internal/models"
)

// Filter selects a subset of tasks.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterPending      Filter = "pending"
	FilterCompleted    Filter = "completed"
	FilterOverdue      Filter = "overdue"
	FilterHighPriority Filter = "highPriority"
)

// Sort names an ordering of tasks.
type Sort string

const (
	SortNewest       Sort = "newest"
	SortOldest       Sort = "oldest"
	SortAlphabetical Sort = "alphabetical"
	SortPriority     Sort = "priority"
	SortCompletion   Sort = "completion"
)

// Options describes one evaluation of the query.
type Options struct {
	Filter Filter
	Sort   Sort
	Search string
	// Now is the reference time for the overdue filter. Zero means time.Now().
	Now time.Time
}

type predicate func(t *models.Task, now time.Time) bool

// lessFunc reports whether a must be ordered before b.
type lessFunc func(a, b *models.Task) bool

var filters = map[Filter]predicate{
	FilterAll: func(*models.Task, time.Time) bool { return true },
	FilterPending: func(t *models.Task, _ time.Time) bool {
		return !t.IsCompleted
	},
	FilterCompleted: func(t *models.Task, _ time.Time) bool {
		return t.IsCompleted
	},
	FilterOverdue: func(t *models.Task, now time.Time) bool {
		return t.IsOverdueAt(now)
	},
	FilterHighPriority: func(t *models.Task, _ time.Time) bool {
		return t.IsHighPriority()
	},
}

var filterOrder = []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue, FilterHighPriority}

var sortOrder = []Sort{SortNewest, SortOldest, SortAlphabetical, SortPriority, SortCompletion}

// sorter builds the comparator for s. Alphabetical needs a fresh collator
// per call since a collate.Collator is not safe for concurrent use.
func sorter(s Sort) (lessFunc, bool) {
	switch s {
	case SortNewest:
		return func(a, b *models.Task) bool {
			return a.CreatedDate.After(b.CreatedDate)
		}, true
	case SortOldest:
		return func(a, b *models.Task) bool {
			return a.CreatedDate.Before(b.CreatedDate)
		}, true
	case SortAlphabetical:
		c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
		return func(a, b *models.Task) bool {
			return c.CompareString(a.Title, b.Title) < 0
		}, true
	case SortPriority:
		// Only two high-priority tasks are ordered by recency; every other
		// pair compares by rank alone.
		return func(a, b *models.Task) bool {
			if a.Priority == models.PriorityHigh && b.Priority == models.PriorityHigh {
				return a.CreatedDate.After(b.CreatedDate)
			}
			return a.Priority.Rank() < b.Priority.Rank()
		}, true
	case SortCompletion:
		return func(a, b *models.Task) bool {
			if a.IsCompleted == b.IsCompleted {
				return a.CreatedDate.After(b.CreatedDate)
			}
			return !a.IsCompleted && b.IsCompleted
		}, true
	}
	return nil, false
}

// Filters returns the selectable filters in display order.
func Filters() []Filter {
	return append([]Filter(nil), filterOrder...)
}

// Sorts returns the selectable sort orders in display order.
func Sorts() []Sort {
	return append([]Sort(nil), sortOrder...)
}

// ParseFilter converts a filter name. An empty string yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if _, ok := filters[f]; !ok {
		return "", fmt.Errorf("unknown filter %q", s)
	}
	return f, nil
}

// ParseSort converts a sort name. An empty string yields SortNewest.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortNewest, nil
	}
	v := Sort(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown sort %q", s)
	}
	return v, nil
}

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	_, ok := filters[f]
	return ok
}

// Valid reports whether s is a known sort order.
func (s Sort) Valid() bool {
	for _, v := range sortOrder {
		if v == s {
			return true
		}
	}
	return false
}

// Run filters, searches and sorts tasks. The input slice is left untouched and
// the result is always a fresh slice. An unknown filter behaves like FilterAll
// and an unknown sort keeps collection order.
func Run(tasks []models.Task, opts Options) []models.Task {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	keep, ok := filters[opts.Filter]
	if !ok {
		keep = filters[FilterAll]
	}

	match := matcher(opts.Search)

	out := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if !keep(&tasks[i], now) {
			continue
		}
		if match != nil && !match(&tasks[i]) {
			continue
		}
		out = append(out, tasks[i])
	}

	if less, ok := sorter(opts.Sort); ok {
		sort.SliceStable(out, func(i, j int) bool {
			return less(&out[i], &out[j])
		})
	}

	return out
}

// matcher returns a case-insensitive substring match on title or category,
// or nil when the search text is empty.
func matcher(search string) func(t *models.Task) bool {
	if search == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(search)
	return func(t *models.Task) bool {
		return strings.Contains(fold.String(t.Title), needle) ||
			strings.Contains(fold.String(t.Category), needle)
	}
}
