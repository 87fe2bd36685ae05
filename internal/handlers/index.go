package handlers

import (
	"encoding/json"
	"log"

	"github.com/SkyFish-bot/werewolves/internal/config"
	"github.com/SkyFish-bot/werewolves/internal/game"
	"github.com/SkyFish-bot/werewolves/internal/store"
	"github.com/SkyFish-bot/werewolves/internal/ws"
)

// Context holds shared application dependencies
type Context struct {
	Rooms  *store.RoomStore
	Engine *game.Engine
	Hub    *ws.Hub
	Cfg    *config.Config
}

// Dispatch routes one inbound envelope to its handler. Unknown events are
// rejected, not dropped, so a misbehaving client finds out. A missing data
// field counts as an empty payload.
func (ctx *Context) Dispatch(c *ws.Client, event string, data json.RawMessage) {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	switch event {
	case "configure-room":
		ctx.handleConfigureRoom(c, data)
	case "create-room":
		ctx.handleCreateRoom(c, data)
	case "join-room":
		ctx.handleJoinRoom(c, data)
	case "choose-seat":
		ctx.handleChooseSeat(c, data)
	case "start-game":
		ctx.handleStartGame(c, data)
	case "shuffle-roles":
		ctx.handleShuffleRoles(c, data)
	case "role-action":
		ctx.handleRoleAction(c, data)
	case "acknowledge":
		ctx.handleAcknowledge(c, data)
	case "check-last-night":
		ctx.handleCheckLastNight(c, data)
	case "begin-night":
		ctx.handleBeginNight(c, data)
	case "reset-room":
		ctx.handleResetRoom(c, data)
	default:
		log.Printf("Dispatch: unknown event %q from client %s", event, c.ID)
		sendResult(c, event, game.InvalidTarget("unknown event "+event))
	}
}

// HandleDisconnect reports a closed connection to the engine. The hub calls
// this after the binding is gone, so late events cannot reach the client.
func (ctx *Context) HandleDisconnect(c *ws.Client) {
	if c.RoomID == "" || c.ParticipantID == "" {
		return
	}
	room, exists := ctx.Rooms.Get(c.RoomID)
	if !exists {
		return
	}
	ctx.Engine.MarkDisconnected(room, c.ParticipantID)
}
