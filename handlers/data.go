package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/CrowderSoup/taskboard/board"
	"github.com/CrowderSoup/taskboard/services"
)

// BoardHandler serves the board endpoints of every tenant.
type BoardHandler struct {
	registry *services.Registry
	hub      *services.Hub
	upgrader websocket.Upgrader
}

// NewBoardHandler creates the handler. hub may be nil, in which case the
// websocket endpoint is unavailable.
func NewBoardHandler(registry *services.Registry, hub *services.Hub) *BoardHandler {
	return &BoardHandler{
		registry: registry,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is enforced on the HTTP routes
			},
		},
	}
}

// board resolves the tenant's board or writes the failure response.
func (h *BoardHandler) board(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	tenant, ok := tenantFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusBadRequest, "tenant not found", nil)
		return nil, false
	}

	b, err := h.registry.Board(r.Context(), tenant)
	if err != nil {
		log.Printf("Error loading board: %v", err)
		writeFailure(w, http.StatusServiceUnavailable, "board is unavailable, try again later", nil)
		return nil, false
	}
	return b, true
}

// GetSnapshot exports the tenant's board as a snapshot.
func (h *BoardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.Snapshot())
}

// PutSnapshot replaces the tenant's board with the posted snapshot once it
// passes validation.
func (h *BoardHandler) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	b, ok := h.board(w, r)
	if !ok {
		return
	}

	var snap board.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}

	if err := b.Import(snap); err != nil {
		writeBoardError(w, err)
		return
	}
	log.Printf("Imported snapshot: %d columns, %d tasks", len(snap.Columns), len(snap.Tasks))
	writeJSON(w, http.StatusOK, b.Snapshot())
}

// HandleWebSocket upgrades the connection and subscribes it to the
// tenant's board events.
func (h *BoardHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		writeFailure(w, http.StatusNotImplemented, "realtime updates are disabled", nil)
		return
	}
	tenant, ok := tenantFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusBadRequest, "tenant not found", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	client := &services.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Tenant: tenant,
	}
	h.hub.Register(client)
	log.Printf("WebSocket client registered for tenant %s", tenant)

	go client.WritePump()
	go client.ReadPump()
}
