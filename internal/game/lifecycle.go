package game

import (
	"log"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// StartGame begins play: empty seats are filled with synthetic stand-ins
// (each drawing a role like a human), life state is initialized, and the
// room enters orphan selection when any living orphan holder exists,
// otherwise straight into the first night. Stand-in holders pick their
// protector automatically so selection waits on humans only.
func (e *Engine) StartGame(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if actorID != room.HostID {
		return NotHost()
	}
	if room.Phase != models.PhaseLobby {
		return PhaseViolation("game already started")
	}
	seated := 0
	for _, p := range room.Participants {
		if p.Seated() && !p.Synthetic {
			seated++
		}
	}
	if seated == 0 {
		return PhaseViolation("nobody has taken a seat")
	}

	e.fillStandins(room)
	for _, seat := range room.Seats {
		room.States[seat.Occupant] = &models.ParticipantState{Alive: true}
	}

	log.Printf("StartGame: room=%s participants=%d", room.ID, len(room.Participants))
	e.pushSnapshots(room)

	if dependents := room.LivingHolders(models.RoleOrphan); len(dependents) > 0 {
		room.Phase = models.PhaseOrphanSelect
		e.notifyPhase(room, EventPhaseStarted, KeyOrphanBegin)
		waiting := 0
		for _, id := range dependents {
			if p, ok := room.Participants[id]; ok && p.Synthetic {
				e.autoPickProtector(room, id)
				continue
			}
			waiting++
			e.Notify.ToParticipant(room.ID, id, EventRolePrompt, RolePrompt{
				Action:     "orphan-protector",
				Candidates: livingCandidates(room, id),
			})
		}
		if waiting == 0 {
			e.finishOrphanSelection(room)
		}
		return nil
	}

	e.startNight(room)
	return nil
}

// BeginNight starts the next night from the day phase (host action).
func (e *Engine) BeginNight(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if actorID != room.HostID {
		return NotHost()
	}
	if room.Phase != models.PhaseDay {
		return PhaseViolation("a night begins from the day phase")
	}

	e.startNight(room)
	return nil
}

// ResetRoom returns the room to the lobby: stand-ins leave, night state,
// lovers, orphan links and potions are wiped, and every seated participant
// draws a fresh role from a rebuilt pool.
func (e *Engine) ResetRoom(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if actorID != room.HostID {
		return NotHost()
	}

	room.StopTimers()
	room.Phase = models.PhaseLobby

	for id, p := range room.Participants {
		if !p.Synthetic {
			continue
		}
		if seat := room.SeatByNumber(p.Seat); seat != nil {
			seat.Occupant = ""
		}
		delete(room.Participants, id)
	}

	room.Night = nil
	room.Progress = nil
	room.ActiveRole = ""
	room.DayResult = nil
	room.Lovers = [2]string{}
	room.OrphanLinks = make(map[string]string)
	room.States = make(map[string]*models.ParticipantState)
	room.NightNumber = 0
	room.SaveUsed = false
	room.PoisonUsed = false
	room.LastProtect = ""

	e.dealSeated(room)

	log.Printf("ResetRoom: room=%s back to lobby", room.ID)
	e.notifyPhase(room, EventPhaseStarted, KeyLobbyReset)
	e.pushSnapshots(room)
	return nil
}

// ShuffleRoles discards all assignments and redraws for everyone currently
// seated. Only legal in the lobby; roles lock once the game starts.
func (e *Engine) ShuffleRoles(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if actorID != room.HostID {
		return NotHost()
	}
	if room.Phase != models.PhaseLobby {
		return PhaseViolation("roles are locked once the game starts")
	}

	e.dealSeated(room)
	log.Printf("ShuffleRoles: room=%s redealt %d seats", room.ID, room.FilledSeats())
	e.pushSnapshots(room)
	return nil
}

// dealSeated rebuilds the pool and redraws for every occupied seat in seat
// order, deterministically skipping empty seats (lock held).
func (e *Engine) dealSeated(room *models.Room) {
	room.ClearAssignments()
	room.Pool = BuildPool(room.Config)
	for i := range room.Seats {
		seat := &room.Seats[i]
		if seat.Occupant == "" {
			continue
		}
		var role models.Role
		room.Pool, role = Draw(room.Pool)
		room.AssignRole(seat.Occupant, role)
		e.Notify.ToParticipant(room.ID, seat.Occupant, EventRoleAssigned, RoleAssigned{Role: role, Seat: seat.Number})
	}
}

// CheckLastNight re-serves the last computed death list to the caller.
func (e *Engine) CheckLastNight(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if _, ok := room.Participants[actorID]; !ok {
		return InvalidParticipant("unknown participant")
	}

	e.Notify.ToParticipant(room.ID, actorID, EventLastNight, DayPayload{
		Key:    KeyDayDeaths,
		Night:  room.NightNumber,
		Deaths: deathViews(room, room.DayResult),
	})
	return nil
}
