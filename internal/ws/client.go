package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

// Client is one websocket connection. The room and participant bindings are
// written by the handler layer, which runs on this client's read pump, so
// they need no locking of their own.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan outEnvelope

	RoomID        string
	ParticipantID string
	PendingConfig *models.RoomConfig // staged by configure-room, consumed by create-room
}

// Send queues an event for delivery. A slow client drops messages rather
// than stall the caller; delivery is best-effort, at most once.
func (c *Client) Send(event string, data any) {
	select {
	case c.send <- outEnvelope{Event: event, Data: data}:
	default:
		if debug {
			log.Printf("ws: client %s send buffer full, dropped %s", c.ID, event)
		}
	}
}

// readPump pulls frames off the wire and hands them to the dispatcher,
// serially. Exit reports the disconnect upstream exactly once.
func (c *Client) readPump() {
	defer func() {
		c.hub.dropClient(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: client %s read error: %v", c.ID, err)
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("ws: client %s sent a malformed frame", c.ID)
			continue
		}
		c.hub.handle(c, env)
	}
}

// writePump drains the send buffer and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
