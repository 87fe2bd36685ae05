package models

import (
	"sync"
	"time"
)

// Seat is one fixed slot in a room. Occupant holds a participant ID and is
// empty while the seat is free.
type Seat struct {
	Number   int
	Occupant string
}

// Room represents one isolated game instance (aggregate root)
type Room struct {
	ID     string
	HostID string
	Config RoomConfig
	Phase  Phase
	Seats  []Seat

	Participants map[string]*Participant      // participantID -> Participant
	Roles        map[string]Role              // participantID -> assigned role
	RoleHolders  map[Role][]string            // role -> holder IDs, kept in sync with Roles
	States       map[string]*ParticipantState // participantID -> flags that outlive a night

	Pool       []Role        // remaining shuffled role tokens
	Night      *NightActions // nil outside a night
	Progress   map[Role]bool // role -> has acted this night
	ActiveRole Role          // role whose sub-phase is currently waiting for input
	Lovers     [2]string     // set once per game by the cupid
	DayResult  []string      // last computed ordered death list

	OrphanLinks map[string]string // dependent participantID -> protector participantID

	NightNumber int
	SaveUsed    bool   // witch save potion spent
	PoisonUsed  bool   // witch poison potion spent
	LastProtect string // guard target of the previous night

	mu         sync.RWMutex
	timers     map[uint64]*time.Timer // pending delayed continuations
	nextTimer  uint64
	generation uint64 // bumped by StopTimers; stale continuations check it
	closed     bool
}

// NewRoom creates a room in lobby phase with its fixed seat layout.
func NewRoom(id, hostID string, config RoomConfig) *Room {
	seats := make([]Seat, config.Seats)
	for i := range seats {
		seats[i].Number = i + 1
	}
	return &Room{
		ID:           id,
		HostID:       hostID,
		Config:       config,
		Phase:        PhaseLobby,
		Seats:        seats,
		Participants: make(map[string]*Participant),
		Roles:        make(map[string]Role),
		RoleHolders:  make(map[Role][]string),
		States:       make(map[string]*ParticipantState),
		OrphanLinks:  make(map[string]string),
		timers:       make(map[uint64]*time.Timer),
	}
}

// Lock acquires the room's write lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's write lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// RLock acquires the room's read lock
func (r *Room) RLock() {
	r.mu.RLock()
}

// RUnlock releases the room's read lock
func (r *Room) RUnlock() {
	r.mu.RUnlock()
}

// Schedule runs fn after d unless the room is closed or the timer is
// cancelled first. Must be called with the lock held; fn runs with the lock
// held and must re-check phase state itself, a cancelled or stale timer is
// expected to no-op. A non-positive delay runs fn inline.
func (r *Room) Schedule(d time.Duration, fn func()) {
	if r.closed {
		return
	}
	if d <= 0 {
		fn()
		return
	}
	gen := r.generation
	token := r.nextTimer
	r.nextTimer++
	r.timers[token] = time.AfterFunc(d, func() {
		r.Lock()
		defer r.Unlock()
		if r.closed || r.generation != gen {
			return
		}
		delete(r.timers, token)
		fn()
	})
}

// StopTimers cancels every pending continuation but keeps the room usable
// (host reset). A continuation that already fired and is waiting on the lock
// is invalidated too. Must be called with the lock held.
func (r *Room) StopTimers() {
	r.generation++
	for token, t := range r.timers {
		t.Stop()
		delete(r.timers, token)
	}
}

// Close cancels all timers and marks the room dead so later timer fires and
// Schedule calls no-op. Must be called with the lock held.
func (r *Room) Close() {
	r.closed = true
	r.StopTimers()
}

// Closed reports whether the room has been torn down (lock held).
func (r *Room) Closed() bool {
	return r.closed
}

// PendingTimers returns the number of outstanding continuations (lock held).
func (r *Room) PendingTimers() int {
	return len(r.timers)
}

// AssignRole records a role for a participant and updates the role index.
// Must be called with the lock held.
func (r *Room) AssignRole(participantID string, role Role) {
	if prev, ok := r.Roles[participantID]; ok {
		r.removeHolder(prev, participantID)
	}
	r.Roles[participantID] = role
	r.RoleHolders[role] = append(r.RoleHolders[role], participantID)
	if p, ok := r.Participants[participantID]; ok {
		p.Role = role
	}
}

// ClearAssignments wipes every role assignment and the role index (reshuffle
// or reset). Must be called with the lock held.
func (r *Room) ClearAssignments() {
	r.Roles = make(map[string]Role)
	r.RoleHolders = make(map[Role][]string)
	for _, p := range r.Participants {
		p.Role = ""
	}
}

func (r *Room) removeHolder(role Role, participantID string) {
	holders := r.RoleHolders[role]
	for i, id := range holders {
		if id == participantID {
			r.RoleHolders[role] = append(holders[:i], holders[i+1:]...)
			return
		}
	}
}

// LivingHolders returns the holders of a role that are still alive, in seat
// order (lock held).
func (r *Room) LivingHolders(role Role) []string {
	var out []string
	for _, seat := range r.Seats {
		if seat.Occupant == "" {
			continue
		}
		if r.Roles[seat.Occupant] != role {
			continue
		}
		if r.Alive(seat.Occupant) {
			out = append(out, seat.Occupant)
		}
	}
	return out
}

// Alive reports whether a participant is seated and not yet dead (lock held).
// Participants without a recorded state (lobby phase) count as alive.
func (r *Room) Alive(participantID string) bool {
	if _, ok := r.Participants[participantID]; !ok {
		return false
	}
	if state, ok := r.States[participantID]; ok {
		return state.Alive
	}
	return true
}

// SeatByNumber returns the seat with the given number, or nil.
func (r *Room) SeatByNumber(n int) *Seat {
	if n < 1 || n > len(r.Seats) {
		return nil
	}
	return &r.Seats[n-1]
}

// FilledSeats counts occupied seats (lock held).
func (r *Room) FilledSeats() int {
	filled := 0
	for _, seat := range r.Seats {
		if seat.Occupant != "" {
			filled++
		}
	}
	return filled
}
