package game

import (
	"github.com/SkyFish-bot/werewolves/internal/models"
)

// Outbound event type constants
const (
	EventRoomCreated     = "room-created"
	EventRoomJoined      = "room-joined"
	EventRoomClosed      = "room-closed"
	EventSeatState       = "seat-state"
	EventParticipantList = "participant-list"
	EventRoleAssigned    = "role-assigned"
	EventSeatsStatus     = "seats-status"
	EventPhaseStarted    = "phase-started"
	EventPhaseComplete   = "phase-complete"
	EventRolePrompt      = "role-prompt"
	EventLoverReveal     = "lover-reveal"
	EventSeerResult      = "seer-result"
	EventHunterStatus    = "hunter-status"
	EventOrphanChains    = "orphan-chains"
	EventDayPhase        = "day-phase-started"
	EventLastNight       = "last-night"
	EventActionResult    = "action-result"
)

// Notifier delivers core notifications. The transport implements it;
// delivery is best-effort and must never block the caller.
type Notifier interface {
	ToParticipant(roomID, participantID, event string, data any)
	ToRoom(roomID, event string, data any)
	CloseRoom(roomID string)
}

// SeatView is one seat in a seat-state snapshot.
type SeatView struct {
	Number    int    `json:"number"`
	Occupant  string `json:"occupant,omitempty"`
	Name      string `json:"name,omitempty"`
	Connected bool   `json:"connected"`
	Synthetic bool   `json:"synthetic"`
}

// ParticipantView is one entry in a participant-list snapshot. Roles stay
// secret and are deliberately absent.
type ParticipantView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seat      int    `json:"seat,omitempty"`
	IsHost    bool   `json:"isHost"`
	Connected bool   `json:"connected"`
	Synthetic bool   `json:"synthetic"`
	Alive     bool   `json:"alive"`
}

// SeatsStatus summarizes seat occupancy for the room.
type SeatsStatus struct {
	Filled        int  `json:"filled"`
	Total         int  `json:"total"`
	AllFilled     bool `json:"allFilled"`
	RolesAssigned bool `json:"rolesAssigned"`
}

// PhasePayload announces a sub-phase boundary by narration key.
type PhasePayload struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Night    int    `json:"night,omitempty"`
}

// CandidateView names one selectable participant.
type CandidateView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

// RolePrompt tells a role holder it is their turn and what they may target.
type RolePrompt struct {
	Action          string          `json:"action"`
	Candidates      []CandidateView `json:"candidates,omitempty"`
	Allies          []CandidateView `json:"allies,omitempty"`
	Victim          *CandidateView  `json:"victim,omitempty"`
	SaveAvailable   bool            `json:"saveAvailable,omitempty"`
	PoisonAvailable bool            `json:"poisonAvailable,omitempty"`
}

// LoverReveal is sent privately to each half of the chosen pair.
type LoverReveal struct {
	Partner CandidateView `json:"partner"`
}

// SeerResult is the private outcome of a seer check.
type SeerResult struct {
	TargetName string         `json:"targetName"`
	TargetSeat int            `json:"targetSeat"`
	Faction    models.Faction `json:"faction"`
}

// HunterStatus tells the hunter whether the day privilege stands.
type HunterStatus struct {
	CanShoot bool `json:"canShoot"`
}

// DayPayload carries the resolved death list into the day phase.
type DayPayload struct {
	Key    string          `json:"key"`
	Night  int             `json:"night"`
	Deaths []CandidateView `json:"deaths"`
}

// ActionResult reports synchronous success or failure for an inbound event.
type ActionResult struct {
	OK     bool   `json:"ok"`
	Action string `json:"action"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// RoomCreated is the host's private acknowledgement of a new room.
type RoomCreated struct {
	Code          string            `json:"code"`
	ParticipantID string            `json:"participantId"`
	Token         string            `json:"token"`
	Config        models.RoomConfig `json:"config"`
}

// RoomJoined carries a participant's identity and the room's current shape.
// The token lets the same person rebind after a dropped connection.
type RoomJoined struct {
	Code          string            `json:"code"`
	ParticipantID string            `json:"participantId"`
	Token         string            `json:"token"`
	Name          string            `json:"name"`
	Seat          int               `json:"seat,omitempty"`
	IsHost        bool              `json:"isHost"`
	Phase         models.Phase      `json:"phase"`
	Config        models.RoomConfig `json:"config"`
}

// RoleAssigned is the private role notification for one participant.
type RoleAssigned struct {
	Role models.Role `json:"role"`
	Seat int         `json:"seat"`
}

// candidateView builds the wire view for one participant (lock held).
func candidateView(room *models.Room, participantID string) CandidateView {
	p, ok := room.Participants[participantID]
	if !ok {
		return CandidateView{ID: participantID}
	}
	return CandidateView{ID: p.ID, Name: p.Name, Seat: p.Seat}
}

// livingCandidates lists every living seated participant in seat order,
// skipping the given IDs (lock held).
func livingCandidates(room *models.Room, skip ...string) []CandidateView {
	skipped := make(map[string]bool, len(skip))
	for _, id := range skip {
		skipped[id] = true
	}
	var out []CandidateView
	for _, seat := range room.Seats {
		if seat.Occupant == "" || skipped[seat.Occupant] {
			continue
		}
		if !room.Alive(seat.Occupant) {
			continue
		}
		out = append(out, candidateView(room, seat.Occupant))
	}
	return out
}

// seatViews builds the seat-state snapshot (lock held).
func seatViews(room *models.Room) []SeatView {
	out := make([]SeatView, len(room.Seats))
	for i, seat := range room.Seats {
		view := SeatView{Number: seat.Number}
		if seat.Occupant != "" {
			if p, ok := room.Participants[seat.Occupant]; ok {
				view.Occupant = p.ID
				view.Name = p.Name
				view.Connected = p.Connected
				view.Synthetic = p.Synthetic
			}
		}
		out[i] = view
	}
	return out
}

// participantViews builds the participant-list snapshot (lock held).
func participantViews(room *models.Room) []ParticipantView {
	var out []ParticipantView
	for _, seat := range room.Seats {
		if seat.Occupant == "" {
			continue
		}
		if p, ok := room.Participants[seat.Occupant]; ok {
			out = append(out, participantView(room, p))
		}
	}
	// unseated participants trail the seated ones
	for _, p := range room.Participants {
		if !p.Seated() {
			out = append(out, participantView(room, p))
		}
	}
	return out
}

func participantView(room *models.Room, p *models.Participant) ParticipantView {
	return ParticipantView{
		ID:        p.ID,
		Name:      p.Name,
		Seat:      p.Seat,
		IsHost:    p.ID == room.HostID,
		Connected: p.Connected,
		Synthetic: p.Synthetic,
		Alive:     room.Alive(p.ID),
	}
}

// deathViews maps a death list to wire views in resolution order (lock held).
func deathViews(room *models.Room, ids []string) []CandidateView {
	out := make([]CandidateView, 0, len(ids))
	for _, id := range ids {
		out = append(out, candidateView(room, id))
	}
	return out
}

// seatsStatus builds the occupancy summary (lock held).
func seatsStatus(room *models.Room) SeatsStatus {
	filled := room.FilledSeats()
	return SeatsStatus{
		Filled:        filled,
		Total:         room.Config.Seats,
		AllFilled:     filled == room.Config.Seats,
		RolesAssigned: len(room.Roles) == filled && filled > 0,
	}
}
