package handlers

import (
	"encoding/json"
	"net/http"

	"simpletodo/internal/models"
	"simpletodo/internal/query"
	"simpletodo/internal/todo"
)

// ListTasks returns the visible tasks. The filter, sort and q query
// parameters replace the matching parts of the current view first.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var edits []func(*todo.View)
	if params.Has("filter") {
		f, err := query.ParseFilter(params.Get("filter"))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		edits = append(edits, func(v *todo.View) { v.Filter = f })
	}

	if params.Has("sort") {
		s, err := query.ParseSort(params.Get("sort"))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		edits = append(edits, func(v *todo.View) { v.Sort = s })
	}

	if params.Has("q") {
		search := params.Get("q")
		edits = append(edits, func(v *todo.View) { v.Search = search })
	}

	tasks, err := h.store.ApplyView(func(v *todo.View) {
		for _, edit := range edits {
			edit(v)
		}
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, tasks)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.Get(taskID(r))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// CreateTask adds a new task from form values.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	priority, err := models.ParsePriority(r.FormValue("priority"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.store.Add(ctx, r.FormValue("title"),
		todo.WithPriority(priority),
		todo.WithCategory(r.FormValue("category")),
	)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, task)
}

// UpdateTask edits an existing task. Only the form fields that are present
// are changed.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	var patch todo.TaskPatch
	if _, ok := r.PostForm["title"]; ok {
		title := r.PostForm.Get("title")
		patch.Title = &title
	}
	if _, ok := r.PostForm["priority"]; ok {
		p, err := models.ParsePriority(r.PostForm.Get("priority"))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Priority = &p
	}
	if _, ok := r.PostForm["category"]; ok {
		category := r.PostForm.Get("category")
		patch.Category = &category
	}

	task, err := h.store.Update(ctx, taskID(r), patch)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// ToggleTask toggles the completion status of a task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.Toggle(r.Context(), taskID(r))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), taskID(r)); err != nil {
		h.respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type deletedResponse struct {
	Deleted int `json:"deleted"`
}

// DeleteTasks deletes every task whose id is listed in the JSON body.
// Unknown ids are ignored.
func (h *Handlers) DeleteTasks(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []string `json:"ids"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ids := make(map[string]struct{}, len(payload.IDs))
	for _, id := range payload.IDs {
		ids[id] = struct{}{}
	}

	n, err := h.store.DeleteWhere(r.Context(), func(t models.Task) bool {
		_, ok := ids[t.ID]
		return ok
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}

// ClearAll removes every task.
func (h *Handlers) ClearAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.ClearAll(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}

// ClearCompleted removes every completed task.
func (h *Handlers) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.ClearCompleted(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}
