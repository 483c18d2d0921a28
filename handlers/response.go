package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/CrowderSoup/taskboard/board"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"data":   data,
	}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, message string, extra map[string]any) {
	body := map[string]any{
		"status":  "error",
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeBoardError maps engine errors onto HTTP responses.
func writeBoardError(w http.ResponseWriter, err error) {
	var verr board.ValidationError
	var inUse *board.ColumnInUseError

	switch {
	case errors.As(err, &verr):
		writeFailure(w, http.StatusUnprocessableEntity, "validation failed", map[string]any{"errors": verr})
	case errors.As(err, &inUse):
		writeFailure(w, http.StatusConflict, inUse.Error(), map[string]any{"blockingTasks": inUse.TaskIDs})
	case errors.Is(err, board.ErrTaskNotFound), errors.Is(err, board.ErrColumnNotFound):
		writeFailure(w, http.StatusNotFound, err.Error(), nil)
	default:
		log.Printf("Unexpected board error: %v", err)
		writeFailure(w, http.StatusInternalServerError, "server error", nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request format: "+err.Error(), nil)
		return false
	}
	return true
}
