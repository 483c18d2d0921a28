package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CrowderSoup/taskboard/board"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	broadcastBuffer = 256
)

// Client is a websocket connection subscribed to one tenant's board.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	Tenant string
}

// WebSocketMessage is the envelope for everything sent over the socket.
type WebSocketMessage struct {
	Type   string `json:"type"`
	Data   any    `json:"data"`
	Tenant string `json:"tenant,omitempty"`
}

type countRequest struct {
	tenant string
	reply  chan int
}

type outbound struct {
	tenant  string
	payload []byte
	exclude *Client
	// target, when set, limits delivery to that one client.
	target *Client
}

// ReadPump reads from the connection until it closes. Pings are answered
// directly; other messages are relayed to the tenant's other clients.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var wsMessage WebSocketMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshalling WebSocket message: %v", err)
			continue
		}
		wsMessage.Tenant = c.Tenant

		if wsMessage.Type == "ping" {
			pong, err := json.Marshal(WebSocketMessage{
				Type: "pong",
				Data: map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)},
			})
			if err == nil {
				// Send may already be closed by the hub, so the reply goes
				// through the run loop like every other message.
				c.Hub.enqueue(outbound{tenant: c.Tenant, payload: pong, target: c}, "pong")
			}
			continue
		}

		c.Hub.send(wsMessage, c)
	}
}

// WritePump writes queued messages and keepalive pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub fans board events out to the clients of each tenant.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	count      chan countRequest
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan countRequest),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish sends a board event to every client of tenant.
func (h *Hub) Publish(tenant string, event board.Event) {
	h.send(WebSocketMessage{Type: "event", Data: event, Tenant: tenant}, nil)
}

// Broadcast sends message to every client of tenant.
func (h *Hub) Broadcast(tenant string, message WebSocketMessage) {
	message.Tenant = tenant
	h.send(message, nil)
}

// send never blocks the caller: when the hub is backed up the message is
// dropped and logged.
func (h *Hub) send(message WebSocketMessage, exclude *Client) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling WebSocket message: %v", err)
		return
	}

	h.enqueue(outbound{tenant: message.Tenant, payload: payload, exclude: exclude}, message.Type)
}

func (h *Hub) enqueue(msg outbound, kind string) {
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("Broadcast queue full, dropping %q message for tenant %s", kind, msg.tenant)
	}
}

// ClientCount reports how many clients are connected for tenant.
func (h *Hub) ClientCount(tenant string) int {
	req := countRequest{tenant: tenant, reply: make(chan int, 1)}
	select {
	case h.count <- req:
		return <-req.reply
	case <-h.done:
		return 0
	}
}

// Run starts the hub's main loop and returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("Client connected to tenant %s", client.Tenant)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("Client disconnected from tenant %s", client.Tenant)
			}
		case req := <-h.count:
			n := 0
			for client := range h.clients {
				if client.Tenant == req.tenant {
					n++
				}
			}
			req.reply <- n
		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.Tenant != msg.tenant || client == msg.exclude {
					continue
				}
				if msg.target != nil && client != msg.target {
					continue
				}
				select {
				case client.Send <- msg.payload:
				default:
					log.Printf("Client send buffer full, removing client from tenant %s", client.Tenant)
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}
