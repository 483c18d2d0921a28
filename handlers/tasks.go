package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CrowderSoup/taskboard/board"
)

// ListTasks returns the tasks matching the board's current filters.
func (h *BoardHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.FilteredTasks())
}

func (h *BoardHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	task, err := b.Task(mux.Vars(r)["id"])
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *BoardHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var in board.TaskInput
	if !decodeJSON(w, r, &in) {
		return
	}

	task, err := b.AddTask(in)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *BoardHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var patch board.TaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	task, err := b.UpdateTask(mux.Vars(r)["id"], patch)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *BoardHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	if err := b.DeleteTask(mux.Vars(r)["id"]); err != nil {
		writeBoardError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := b.MoveTask(mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *BoardHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	task, err := b.CompleteTask(mux.Vars(r)["id"])
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
