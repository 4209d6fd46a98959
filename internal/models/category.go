package models

import "strings"

// PredefinedCategories are offered to the user before any custom category.
var PredefinedCategories = []string{DefaultCategory, "Work", "Personal", "Shopping"}

// CategorySummary aggregates the tasks filed under one category.
type CategorySummary struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	Pending int    `json:"pending"`
}

// NormalizeCategory trims a category name and falls back to DefaultCategory.
func NormalizeCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCategory
	}
	return name
}

// CategorySuggestions returns the predefined categories followed by every
// custom category in use, in first-seen order.
func CategorySuggestions(tasks []Task) []string {
	seen := make(map[string]struct{}, len(PredefinedCategories))
	out := make([]string, 0, len(PredefinedCategories))
	for _, c := range PredefinedCategories {
		seen[c] = struct{}{}
		out = append(out, c)
	}

	for _, t := range tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}

	return out
}

// SummarizeCategories counts tasks per category. Categories appear in the
// order returned by CategorySuggestions; predefined ones are listed even when empty.
func SummarizeCategories(tasks []Task) []CategorySummary {
	names := CategorySuggestions(tasks)
	index := make(map[string]int, len(names))
	summaries := make([]CategorySummary, len(names))
	for i, name := range names {
		index[name] = i
		summaries[i].Name = name
	}

	for _, t := range tasks {
		s := &summaries[index[t.Category]]
		s.Total++
		if !t.IsCompleted {
			s.Pending++
		}
	}

	return summaries
}
