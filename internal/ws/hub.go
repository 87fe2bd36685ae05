package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Handler consumes one inbound envelope from a client.
type Handler func(c *Client, event string, data json.RawMessage)

// Hub tracks which connection speaks for which participant in which room
// and fans core notifications out to them. It implements the engine's
// Notifier.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[string]*Client // roomID -> participantID -> client
	handler Handler
	onClose func(*Client)

	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// SetHandler wires the inbound dispatcher. Call once at startup.
func (h *Hub) SetHandler(fn Handler) {
	h.handler = fn
}

// SetOnClose wires the disconnect callback. Call once at startup.
func (h *Hub) SetOnClose(fn func(*Client)) {
	h.onClose = fn
}

// ServeWS upgrades the request and runs the connection's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ServeWS: upgrade failed: %v", err)
		return
	}
	c := &Client{
		ID:   uuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan outEnvelope, sendBufferSize),
	}
	log.Printf("ServeWS: client %s connected", c.ID)
	go c.writePump()
	// Deep-link joins dispatch before the read pump starts, so the handler
	// never runs concurrently with inbound frames.
	if join := joinEnvelope(r); join != nil {
		h.handle(c, *join)
	}
	go c.readPump()
}

func (h *Hub) handle(c *Client, env Envelope) {
	if h.handler == nil {
		return
	}
	h.handler(c, env.Event, env.Data)
}

// Bind routes a participant's events to this client, replacing any stale
// binding left by a previous connection. A client switching rooms loses its
// old route so it cannot keep receiving that room's events.
func (h *Hub) Bind(c *Client, roomID, participantID string) {
	h.mu.Lock()
	if c.RoomID != "" && (c.RoomID != roomID || c.ParticipantID != participantID) {
		if clients, ok := h.rooms[c.RoomID]; ok {
			if cur, ok := clients[c.ParticipantID]; ok && cur == c {
				delete(clients, c.ParticipantID)
				if len(clients) == 0 {
					delete(h.rooms, c.RoomID)
				}
			}
		}
	}
	clients := h.rooms[roomID]
	if clients == nil {
		clients = make(map[string]*Client)
		h.rooms[roomID] = clients
	}
	clients[participantID] = c
	h.mu.Unlock()

	c.RoomID = roomID
	c.ParticipantID = participantID
}

// dropClient removes routing for a closed connection, then reports the loss
// upstream. A binding already replaced by a reconnection is left alone, and
// its death is not a disconnect for the participant it used to speak for.
func (h *Hub) dropClient(c *Client) {
	h.mu.Lock()
	owned := false
	if clients, ok := h.rooms[c.RoomID]; ok {
		if cur, ok := clients[c.ParticipantID]; ok && cur == c {
			owned = true
			delete(clients, c.ParticipantID)
			if len(clients) == 0 {
				delete(h.rooms, c.RoomID)
			}
		}
	}
	h.mu.Unlock()

	log.Printf("ws: client %s disconnected", c.ID)
	if owned && h.onClose != nil {
		h.onClose(c)
	}
}

// ToParticipant sends one event to one participant. Unbound participants
// (synthetic or disconnected) are silently skipped.
func (h *Hub) ToParticipant(roomID, participantID, event string, data any) {
	h.mu.RLock()
	c := h.rooms[roomID][participantID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	c.Send(event, data)
}

// ToRoom sends one event to every bound participant in a room. Clients are
// collected under the lock and written to without it.
func (h *Hub) ToRoom(roomID, event string, data any) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[roomID]))
	for _, c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if debug {
		log.Printf("ws: event=%s to %d clients in room %s", event, len(clients), roomID)
	}
	for _, c := range clients {
		c.Send(event, data)
	}
}

// CloseRoom drops every binding for a torn-down room. The connections stay
// open; their next room lookup simply fails.
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	n := len(h.rooms[roomID])
	delete(h.rooms, roomID)
	h.mu.Unlock()
	log.Printf("CloseRoom: room %s unbound %d clients", roomID, n)
}
