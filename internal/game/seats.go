package game

import (
	"fmt"
	"log"

	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/google/uuid"
)

func newParticipant(name string) *models.Participant {
	return &models.Participant{
		ID:        uuid.New().String(),
		Name:      name,
		Connected: true,
		Token:     uuid.New().String(),
	}
}

// Join adds a participant to the room, or rebinds an existing identity when
// the reconnection token matches. Rebinding preserves seat, role and
// completed-action state, and wins even while the previous connection still
// looks alive so a reconnect cannot race the transport's disconnect notice.
func (e *Engine) Join(room *models.Room, name, token string) (*models.Participant, *Failure) {
	room.Lock()
	defer room.Unlock()

	if token != "" {
		for _, p := range room.Participants {
			if p.Token == token && !p.Synthetic {
				p.Connected = true
				log.Printf("Join: room=%s rebound participant %s (seat %d)", room.ID, p.ID, p.Seat)
				e.pushSnapshots(room)
				return p, nil
			}
		}
		log.Printf("Join: room=%s token did not match a participant, joining fresh", room.ID)
	}

	live := 0
	for _, p := range room.Participants {
		if p.Connected || p.Synthetic {
			live++
		}
	}
	if live >= room.Config.Seats {
		return nil, RoomFull()
	}

	p := newParticipant(name)
	room.Participants[p.ID] = p
	log.Printf("Join: room=%s participant=%s name=%s", room.ID, p.ID, name)
	e.pushSnapshots(room)
	return p, nil
}

// TakeSeat claims a seat for a participant and immediately draws their role.
// Seat choice is one-shot: once seated, a participant can never move.
func (e *Engine) TakeSeat(room *models.Room, participantID string, seatNumber int) (models.Role, *Failure) {
	room.Lock()
	defer room.Unlock()

	p, ok := room.Participants[participantID]
	if !ok {
		return "", InvalidParticipant("unknown participant")
	}
	if p.Seated() {
		return "", InvalidTarget("seat choice is one-shot")
	}
	seat := room.SeatByNumber(seatNumber)
	if seat == nil {
		return "", InvalidTarget(fmt.Sprintf("no seat %d", seatNumber))
	}
	if seat.Occupant != "" {
		return "", InvalidTarget(fmt.Sprintf("seat %d is taken", seatNumber))
	}

	seat.Occupant = p.ID
	p.Seat = seatNumber

	var role models.Role
	room.Pool, role = Draw(room.Pool)
	room.AssignRole(p.ID, role)

	log.Printf("TakeSeat: room=%s participant=%s seat=%d", room.ID, p.ID, seatNumber)

	e.Notify.ToParticipant(room.ID, p.ID, EventRoleAssigned, RoleAssigned{Role: role, Seat: seatNumber})
	e.pushSnapshots(room)
	return role, nil
}

// MarkDisconnected records a transport loss. The host going away tears the
// room down; a participant who never took a seat is deleted; anyone else
// keeps seat and role so a reconnection token can rebind them.
func (e *Engine) MarkDisconnected(room *models.Room, participantID string) {
	room.Lock()

	p, ok := room.Participants[participantID]
	if !ok {
		room.Unlock()
		return
	}

	if p.ID == room.HostID {
		room.Unlock()
		log.Printf("MarkDisconnected: room=%s host %s left, tearing down", room.ID, p.ID)
		e.Teardown(room)
		return
	}

	if !p.Seated() && !p.Synthetic {
		delete(room.Participants, p.ID)
		log.Printf("MarkDisconnected: room=%s unseated participant %s removed", room.ID, p.ID)
	} else {
		p.Connected = false
		log.Printf("MarkDisconnected: room=%s participant %s (seat %d) flagged, seat and role kept", room.ID, p.ID, p.Seat)
	}

	e.pushSnapshots(room)
	room.Unlock()
}

// fillStandins seats a synthetic participant on every empty seat, each
// drawing a role exactly like a human. Must be called with the lock held.
func (e *Engine) fillStandins(room *models.Room) {
	for i := range room.Seats {
		seat := &room.Seats[i]
		if seat.Occupant != "" {
			continue
		}
		p := &models.Participant{
			ID:        uuid.New().String(),
			Name:      fmt.Sprintf("Bot %d", seat.Number),
			Seat:      seat.Number,
			Synthetic: true,
		}
		room.Participants[p.ID] = p
		seat.Occupant = p.ID

		var role models.Role
		room.Pool, role = Draw(room.Pool)
		room.AssignRole(p.ID, role)
		log.Printf("fillStandins: room=%s seat %d filled by %s", room.ID, seat.Number, p.Name)
	}
}
