package handlers

import (
	"net/http"

	"simpletodo/internal/models"
	"simpletodo/internal/query"
	"simpletodo/internal/todo"
)

// OptionsData lists the choices a client can offer for building tasks and views.
type OptionsData struct {
	Filters    []query.Filter    `json:"filters"`
	Sorts      []query.Sort      `json:"sorts"`
	Priorities []models.Priority `json:"priorities"`
	Categories []string          `json:"categories"`
	View       todo.View         `json:"view"`
}

// Stats returns the aggregate counters over the whole collection.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Stats())
}

// Options returns the filter, sort, priority and category choices along
// with the current view.
func (h *Handlers) Options(w http.ResponseWriter, r *http.Request) {
	data := OptionsData{
		Filters:    query.Filters(),
		Sorts:      query.Sorts(),
		Priorities: models.Priorities,
		Categories: h.store.CategorySuggestions(),
		View:       h.store.View(),
	}

	h.respondJSON(w, http.StatusOK, data)
}
