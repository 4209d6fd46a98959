package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"simpletodo/internal/todo"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store *todo.Store
	log   *slog.Logger
}

// New creates a new Handlers instance.
func New(s *todo.Store, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		store: s,
		log:   log,
	}
}

// Routes mounts the task API on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.Stats)
		r.Get("/options", h.Options)
		r.Get("/categories", h.Categories)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Delete("/", h.ClearAll)
			r.Post("/delete", h.DeleteTasks)
			r.Post("/clear-completed", h.ClearCompleted)

			r.Get("/{id}", h.GetTask)
			r.Put("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
			r.Post("/{id}/toggle", h.ToggleTask)
		})
	})
}

// taskID extracts the task id from URL parameters.
func taskID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON body with the given status.
func (h *Handlers) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// respondError sends an error response.
func (h *Handlers) respondError(w http.ResponseWriter, code int, message string) {
	h.respondJSON(w, code, errorResponse{Error: message})
}

// respondStoreError maps errors returned by the task store to a status code.
func (h *Handlers) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, todo.ErrTaskNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, todo.ErrEmptyTitle), errors.Is(err, todo.ErrInvalidPriority):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("internal server error", "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
