package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// OverdueAfter is how long an incomplete task may exist before it counts as overdue.
const OverdueAfter = 24 * time.Hour

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "General"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority converts a priority token. An empty string yields the default (medium).
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityMedium, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("priority must be 'high', 'medium', or 'low', got %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Rank returns a numeric value for sorting by priority.
// Lower numbers indicate higher priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 99
	}
}

// UnmarshalText rejects unknown priority tokens so a corrupt blob fails to load.
func (p *Priority) UnmarshalText(text []byte) error {
	v := Priority(text)
	if !v.Valid() {
		return fmt.Errorf("invalid priority %q", string(text))
	}
	*p = v
	return nil
}

// Task represents a single to-do item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedDate time.Time `json:"createdDate"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}

	if !t.Priority.Valid() {
		return errors.New("priority must be 'high', 'medium', or 'low'")
	}

	return nil
}

// DisplayTitle returns the title without surrounding whitespace.
func (t *Task) DisplayTitle() string {
	return strings.TrimSpace(t.Title)
}

// IsOverdue reports whether the task is overdue right now.
func (t *Task) IsOverdue() bool {
	return t.IsOverdueAt(time.Now())
}

// IsOverdueAt returns true if the task is not completed and was created
// more than OverdueAfter before now.
func (t *Task) IsOverdueAt(now time.Time) bool {
	if t.IsCompleted {
		return false
	}
	return t.CreatedDate.Before(now.Add(-OverdueAfter))
}

// IsHighPriority reports whether the task is high priority and still open.
func (t *Task) IsHighPriority() bool {
	return t.Priority == PriorityHigh && !t.IsCompleted
}
