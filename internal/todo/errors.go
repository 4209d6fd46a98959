package todo

import "errors"

// Validation and lookup failures. A caller that wants the lenient behaviour
// can ignore them: the collection is left unchanged and nothing is saved.
var (
	ErrEmptyTitle      = errors.New("task title is empty")
	ErrInvalidPriority = errors.New("task priority is invalid")
	ErrTaskNotFound    = errors.New("task not found")
)
