package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/SkyFish-bot/werewolves/internal/game"
	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/SkyFish-bot/werewolves/internal/ws"
)

type createRoomPayload struct {
	Name   string             `json:"name"`
	Config *models.RoomConfig `json:"config,omitempty"`
}

type joinRoomPayload struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

type chooseSeatPayload struct {
	Code string `json:"code,omitempty"`
	Seat int    `json:"seat"`
}

// handleConfigureRoom stages a room configuration on this connection. The
// next create-room from the same client uses it instead of the server
// default.
func (ctx *Context) handleConfigureRoom(c *ws.Client, data json.RawMessage) {
	var cfg models.RoomConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		sendResult(c, "configure-room", game.InvalidTarget("malformed configuration"))
		return
	}
	if f := game.ValidateConfig(cfg); f != nil {
		sendResult(c, "configure-room", f)
		return
	}

	c.PendingConfig = &cfg
	log.Printf("handleConfigureRoom: client %s staged a %d-seat configuration", c.ID, cfg.Seats)
	sendResult(c, "configure-room", nil)
}

// handleCreateRoom creates a room and binds the caller as its host. An
// inline config wins over a staged one, which wins over the server default.
func (ctx *Context) handleCreateRoom(c *ws.Client, data json.RawMessage) {
	var req createRoomPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "create-room", game.InvalidTarget("malformed payload"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		sendResult(c, "create-room", game.InvalidParticipant("name is required"))
		return
	}

	cfg := ctx.Cfg.DefaultRoom
	if c.PendingConfig != nil {
		cfg = *c.PendingConfig
	}
	if req.Config != nil {
		cfg = *req.Config
	}

	room, host, f := ctx.Engine.CreateRoom(name, cfg)
	if f != nil {
		sendResult(c, "create-room", f)
		return
	}
	c.PendingConfig = nil

	// Switching rooms counts as a disconnect in the room left behind.
	ctx.leaveCurrent(c, room, host.ID)
	ctx.Hub.Bind(c, room.ID, host.ID)

	c.Send(game.EventRoomCreated, game.RoomCreated{
		Code:          room.ID,
		ParticipantID: host.ID,
		Token:         host.Token,
		Config:        cfg,
	})
	ctx.Engine.Greet(room, host.ID)
	sendResult(c, "create-room", nil)
}

// handleJoinRoom adds the caller to an existing room, or rebinds them when
// the payload carries a matching reconnection token.
func (ctx *Context) handleJoinRoom(c *ws.Client, data json.RawMessage) {
	var req joinRoomPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "join-room", game.InvalidTarget("malformed payload"))
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		sendResult(c, "join-room", game.InvalidTarget("room code and name are required"))
		return
	}

	room, exists := ctx.Rooms.Get(code)
	if !exists {
		sendResult(c, "join-room", game.InvalidRoom(code))
		return
	}

	p, f := ctx.Engine.Join(room, name, req.Token)
	if f != nil {
		sendResult(c, "join-room", f)
		return
	}

	ctx.leaveCurrent(c, room, p.ID)
	ctx.Hub.Bind(c, room.ID, p.ID)
	ctx.Engine.Greet(room, p.ID)
	sendResult(c, "join-room", nil)
}

// handleChooseSeat claims a seat for the caller.
func (ctx *Context) handleChooseSeat(c *ws.Client, data json.RawMessage) {
	var req chooseSeatPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "choose-seat", game.InvalidTarget("malformed payload"))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "choose-seat", f)
		return
	}

	_, f = ctx.Engine.TakeSeat(room, actorID, req.Seat)
	sendResult(c, "choose-seat", f)
}

// leaveCurrent releases whatever identity this connection held before: the
// old room's participant when switching rooms, or the displaced participant
// when rejoining the same room as somebody new. Rebinding the same
// participant releases nothing.
func (ctx *Context) leaveCurrent(c *ws.Client, entering *models.Room, participantID string) {
	if c.RoomID == "" || (c.RoomID == entering.ID && c.ParticipantID == participantID) {
		return
	}
	if c.RoomID == entering.ID {
		log.Printf("leaveCurrent: client %s rejoined room %s as %s, releasing %s", c.ID, entering.ID, participantID, c.ParticipantID)
		ctx.Engine.MarkDisconnected(entering, c.ParticipantID)
		return
	}
	if old, exists := ctx.Rooms.Get(c.RoomID); exists {
		log.Printf("leaveCurrent: client %s leaving room %s for %s", c.ID, c.RoomID, entering.ID)
		ctx.Engine.MarkDisconnected(old, c.ParticipantID)
	}
}
