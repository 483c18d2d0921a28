package handlers

import (
	"net/http"

	"github.com/CrowderSoup/taskboard/board"
)

// TasksByStatus returns the filtered tasks grouped by column.
func (h *BoardHandler) TasksByStatus(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.TasksByStatus())
}

func (h *BoardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.Filters())
}

func (h *BoardHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var f board.Filters
	if !decodeJSON(w, r, &f) {
		return
	}
	b.SetFilters(f)
	writeJSON(w, http.StatusOK, b.Filters())
}

func (h *BoardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.Analytics())
}

// Assignees lists the people tasks can be assigned to along with the
// category allow-list, for building task forms.
func (h *BoardHandler) Assignees(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assignees":  board.SeedAssignees(),
		"categories": b.Categories(),
	})
}
