package handlers

import "net/http"

// Categories returns every category in use with its task counts.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Categories())
}
