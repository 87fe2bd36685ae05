package handlers

import (
	"encoding/json"
	"log"

	"github.com/SkyFish-bot/werewolves/internal/game"
	"github.com/SkyFish-bot/werewolves/internal/ws"
)

type roomActionPayload struct {
	Code string `json:"code,omitempty"`
}

// handleStartGame starts the game: empty seats get stand-ins, then the
// first night (or the orphan selection before it) begins.
func (ctx *Context) handleStartGame(c *ws.Client, data json.RawMessage) {
	var req roomActionPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "start-game", game.InvalidTarget("malformed payload"))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "start-game", f)
		return
	}

	log.Printf("handleStartGame: room=%s actor=%s", room.ID, actorID)
	sendResult(c, "start-game", ctx.Engine.StartGame(room, actorID))
}

// handleShuffleRoles redeals every seated participant's role in the lobby.
func (ctx *Context) handleShuffleRoles(c *ws.Client, data json.RawMessage) {
	var req roomActionPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "shuffle-roles", game.InvalidTarget("malformed payload"))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "shuffle-roles", f)
		return
	}

	sendResult(c, "shuffle-roles", ctx.Engine.ShuffleRoles(room, actorID))
}

// handleBeginNight moves a room from day into the next night.
func (ctx *Context) handleBeginNight(c *ws.Client, data json.RawMessage) {
	var req roomActionPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "begin-night", game.InvalidTarget("malformed payload"))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "begin-night", f)
		return
	}

	log.Printf("handleBeginNight: room=%s actor=%s", room.ID, actorID)
	sendResult(c, "begin-night", ctx.Engine.BeginNight(room, actorID))
}

// handleResetRoom returns a room to the lobby, wiping all game state.
func (ctx *Context) handleResetRoom(c *ws.Client, data json.RawMessage) {
	var req roomActionPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "reset-room", game.InvalidTarget("malformed payload"))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "reset-room", f)
		return
	}

	log.Printf("handleResetRoom: room=%s actor=%s", room.ID, actorID)
	sendResult(c, "reset-room", ctx.Engine.ResetRoom(room, actorID))
}
