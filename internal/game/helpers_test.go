package game

import (
	"fmt"
	"sync"

	"github.com/SkyFish-bot/werewolves/internal/models"
	"github.com/SkyFish-bot/werewolves/internal/store"
)

// recorder captures notifications so tests can assert on delivery without a
// live transport.
type recorder struct {
	mu     sync.Mutex
	events []recorded
}

type recorded struct {
	RoomID        string
	ParticipantID string // empty for room-wide events
	Event         string
	Data          any
}

func (r *recorder) ToParticipant(roomID, participantID, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{roomID, participantID, event, data})
}

func (r *recorder) ToRoom(roomID, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{RoomID: roomID, Event: event, Data: data})
}

func (r *recorder) CloseRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{RoomID: roomID, Event: "transport-close"})
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]recorded, len(r.events))
	copy(out, r.events)
	return out
}

// lastTo returns the most recent event of the given type sent privately to
// one participant.
func (r *recorder) lastTo(participantID, event string) (recorded, bool) {
	events := r.all()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].ParticipantID == participantID && events[i].Event == event {
			return events[i], true
		}
	}
	return recorded{}, false
}

// lastEvent returns the most recent event of the given type regardless of
// addressee.
func (r *recorder) lastEvent(event string) (recorded, bool) {
	events := r.all()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Event == event {
			return events[i], true
		}
	}
	return recorded{}, false
}

func (r *recorder) count(event string) int {
	n := 0
	for _, ev := range r.all() {
		if ev.Event == event {
			n++
		}
	}
	return n
}

func testEngine(p Pacing) (*Engine, *recorder) {
	rec := &recorder{}
	return NewEngine(store.NewRoomStore(), rec, p), rec
}

// seatRoom builds a registered room with one seated, living participant per
// role, in seat order. The first participant is the host; IDs are p1, p2...
func seatRoom(e *Engine, roles ...models.Role) (*models.Room, []string) {
	cfg := models.RoomConfig{Seats: len(roles), Language: "en"}
	room := models.NewRoom("TESTRM", "", cfg)
	ids := make([]string, len(roles))
	for i, role := range roles {
		id := fmt.Sprintf("p%d", i+1)
		ids[i] = id
		room.Participants[id] = &models.Participant{
			ID:        id,
			Name:      fmt.Sprintf("Player %d", i+1),
			Seat:      i + 1,
			Connected: true,
		}
		room.Seats[i].Occupant = id
		room.AssignRole(id, role)
		room.States[id] = &models.ParticipantState{Alive: true}
	}
	room.HostID = ids[0]
	e.Rooms.Set(room.ID, room)
	return room, ids
}

// startNightNow drives the room into its first night the way StartGame
// would. With zero pacing the whole opening sequence runs inline.
func startNightNow(e *Engine, room *models.Room) {
	room.Lock()
	e.startNight(room)
	room.Unlock()
}
