package handlers

import (
	"encoding/json"
	"log"

	"github.com/SkyFish-bot/werewolves/internal/game"
	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/SkyFish-bot/werewolves/internal/ws"
)

type roleActionPayload struct {
	Code    string   `json:"code,omitempty"`
	Action  string   `json:"action"`
	Target  string   `json:"target,omitempty"`
	Targets []string `json:"targets,omitempty"`
}

type acknowledgePayload struct {
	Code string `json:"code,omitempty"`
	Role string `json:"role"`
}

// handleRoleAction routes a night (or orphan-selection) choice to the
// engine. Validation of turn order, liveness and target legality lives
// there; this only decodes the payload.
func (ctx *Context) handleRoleAction(c *ws.Client, data json.RawMessage) {
	var req roleActionPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "role-action", game.InvalidTarget("malformed payload"))
		return
	}
	action := req.Action
	if action == "" {
		action = "role-action"
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, action, f)
		return
	}

	switch req.Action {
	case "orphan-protector":
		f = ctx.Engine.OrphanChoose(room, actorID, req.Target)
	case "cupid-link":
		if len(req.Targets) != 2 {
			f = game.InvalidTarget("cupid links exactly two participants")
		} else {
			f = ctx.Engine.CupidLink(room, actorID, req.Targets[0], req.Targets[1])
		}
	case "guard-protect":
		f = ctx.Engine.GuardProtect(room, actorID, req.Target)
	case "werewolf-kill":
		f = ctx.Engine.WerewolfKill(room, actorID, req.Target)
	case "witch-save":
		f = ctx.Engine.WitchSave(room, actorID)
	case "witch-poison":
		f = ctx.Engine.WitchPoison(room, actorID, req.Target)
	case "witch-skip":
		f = ctx.Engine.WitchSkip(room, actorID)
	case "seer-check":
		f = ctx.Engine.SeerCheck(room, actorID, req.Target)
	default:
		log.Printf("handleRoleAction: room=%s unknown action %q", room.ID, req.Action)
		f = game.InvalidTarget("unknown action " + req.Action)
	}
	sendResult(c, action, f)
}

// handleAcknowledge confirms a role's private result so its turn can end.
func (ctx *Context) handleAcknowledge(c *ws.Client, data json.RawMessage) {
	var req acknowledgePayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "acknowledge", game.InvalidTarget("malformed payload"))
		return
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		sendResult(c, "acknowledge", game.InvalidTarget("unknown role "+req.Role))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "acknowledge", f)
		return
	}

	sendResult(c, "acknowledge", ctx.Engine.Acknowledge(room, actorID, role))
}

// handleCheckLastNight resends the most recent night's death list privately.
func (ctx *Context) handleCheckLastNight(c *ws.Client, data json.RawMessage) {
	var req roomActionPayload
	if err := json.Unmarshal(data, &req); err != nil {
		sendResult(c, "check-last-night", game.InvalidTarget("malformed payload"))
		return
	}

	room, actorID, f := ctx.getRoomAndActor(c, req.Code)
	if f != nil {
		sendResult(c, "check-last-night", f)
		return
	}

	sendResult(c, "check-last-night", ctx.Engine.CheckLastNight(room, actorID))
}
