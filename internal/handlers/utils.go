package handlers

import (
	"strings"

	"github.com/SkyFish-bot/werewolves/internal/game"
	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/SkyFish-bot/werewolves/internal/ws"
)

// getRoomAndActor validates membership for an inbound event. An empty code
// falls back to the room this connection is bound to.
func (ctx *Context) getRoomAndActor(c *ws.Client, code string) (*models.Room, string, *game.Failure) {
	if code == "" {
		code = c.RoomID
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	room, exists := ctx.Rooms.Get(code)
	if !exists {
		return nil, "", game.InvalidRoom(code)
	}

	actorID := c.ParticipantID
	room.RLock()
	_, member := room.Participants[actorID]
	room.RUnlock()
	if !member {
		return nil, "", game.InvalidParticipant("not a member of this room")
	}
	return room, actorID, nil
}

// sendResult acknowledges an inbound action on the requesting connection.
func sendResult(c *ws.Client, action string, f *game.Failure) {
	result := game.ActionResult{OK: f == nil, Action: action}
	if f != nil {
		result.Code = f.Code
		result.Reason = f.Reason
	}
	c.Send(game.EventActionResult, result)
}
