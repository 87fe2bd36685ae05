package game

import (
	"log"

	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/SkyFish-bot/werewolves/internal/store"
)

// Engine owns every room mutation: seats, role deals, the night sequence and
// death resolution. Handlers decode payloads and call in; the engine locks
// the room, applies the change, and pushes notifications through the
// Notifier. Delayed continuations are scheduled on the room itself so a
// teardown cancels them.
type Engine struct {
	Rooms  *store.RoomStore
	Notify Notifier
	Pacing Pacing
}

// NewEngine creates the engine with its collaborators.
func NewEngine(rooms *store.RoomStore, notify Notifier, pacing Pacing) *Engine {
	return &Engine{Rooms: rooms, Notify: notify, Pacing: pacing}
}

// CreateRoom validates the configuration, materializes the room with its
// host participant, registers it and returns both.
func (e *Engine) CreateRoom(hostName string, config models.RoomConfig) (*models.Room, *models.Participant, *Failure) {
	if f := ValidateConfig(config); f != nil {
		return nil, nil, f
	}

	host := newParticipant(hostName)
	host.IsHost = true

	code := GetUniqueRoomCode(e.Rooms)
	room := models.NewRoom(code, host.ID, config)
	room.Participants[host.ID] = host
	room.Pool = BuildPool(config)
	e.Rooms.Set(code, room)

	log.Printf("CreateRoom: code=%s host=%s seats=%d", code, host.ID, config.Seats)
	return room, host, nil
}

// ValidateConfig checks a room configuration for internal consistency.
func ValidateConfig(config models.RoomConfig) *Failure {
	if config.Seats < MinSeats || config.Seats > MaxSeats {
		return InvalidTarget("seat count out of range")
	}
	if config.Werewolves < 0 || config.Villagers < 0 || config.Orphans < 0 {
		return InvalidTarget("role counts must not be negative")
	}
	seen := make(map[models.Role]bool)
	for _, s := range config.Specials {
		if !s.IsSpecial() || s == models.RoleWerewolf {
			return InvalidTarget("unknown special role " + string(s))
		}
		if seen[s] {
			return InvalidTarget("duplicate special role " + string(s))
		}
		seen[s] = true
	}
	if config.RoleSum() > config.Seats {
		return InvalidTarget("role counts exceed seat count")
	}
	return nil
}

// Teardown destroys a room: every pending timer is cancelled so stale fires
// no-op, the registry entry is removed, and the transport drops its
// bindings. Host disconnect is the only caller besides process shutdown.
func (e *Engine) Teardown(room *models.Room) {
	room.Lock()
	room.Close()
	room.Unlock()

	e.Rooms.Delete(room.ID)
	e.Notify.ToRoom(room.ID, EventRoomClosed, nil)
	e.Notify.CloseRoom(room.ID)
	log.Printf("Teardown: room %s destroyed", room.ID)
}

// Greet brings one freshly bound connection up to date: identity, seat and
// participant snapshots, and the private role if one is already assigned.
// The transport must have bound the participant before this is called.
func (e *Engine) Greet(room *models.Room, participantID string) {
	room.RLock()
	defer room.RUnlock()

	p, ok := room.Participants[participantID]
	if !ok {
		return
	}
	e.Notify.ToParticipant(room.ID, p.ID, EventRoomJoined, RoomJoined{
		Code:          room.ID,
		ParticipantID: p.ID,
		Token:         p.Token,
		Name:          p.Name,
		Seat:          p.Seat,
		IsHost:        p.ID == room.HostID,
		Phase:         room.Phase,
		Config:        room.Config,
	})
	e.Notify.ToParticipant(room.ID, p.ID, EventSeatState, seatViews(room))
	e.Notify.ToParticipant(room.ID, p.ID, EventParticipantList, participantViews(room))
	e.Notify.ToParticipant(room.ID, p.ID, EventSeatsStatus, seatsStatus(room))
	if p.Role != "" {
		e.Notify.ToParticipant(room.ID, p.ID, EventRoleAssigned, RoleAssigned{Role: p.Role, Seat: p.Seat})
	}
}

// notifyPhase pushes a phase boundary event with its narration key.
func (e *Engine) notifyPhase(room *models.Room, event, key string) {
	e.Notify.ToRoom(room.ID, event, PhasePayload{
		Key:      key,
		Language: room.Config.Language,
		Night:    room.NightNumber,
	})
}

// pushSnapshots sends the room-wide seat and participant views (lock held).
func (e *Engine) pushSnapshots(room *models.Room) {
	e.Notify.ToRoom(room.ID, EventSeatState, seatViews(room))
	e.Notify.ToRoom(room.ID, EventParticipantList, participantViews(room))
	e.Notify.ToRoom(room.ID, EventSeatsStatus, seatsStatus(room))
}
