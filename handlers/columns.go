package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CrowderSoup/taskboard/board"
)

// ListColumns returns the columns in display order.
func (h *BoardHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.SortedColumns())
}

func (h *BoardHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var in board.ColumnInput
	if !decodeJSON(w, r, &in) {
		return
	}

	col, err := b.AddColumn(in)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, col)
}

func (h *BoardHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var patch board.ColumnPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	col, err := b.UpdateColumn(mux.Vars(r)["id"], patch)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// DeleteColumn refuses with 409 while tasks still use the column.
func (h *BoardHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	if err := b.DeleteColumn(mux.Vars(r)["id"]); err != nil {
		writeBoardError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) ReorderColumns(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, b.ReorderColumns(req.IDs))
}
