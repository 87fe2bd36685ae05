package models

// Participant represents one identity inside a room
type Participant struct {
	ID        string
	Name      string
	Seat      int  // 0 until a seat is taken; seats number from 1
	Role      Role // empty until seated
	IsHost    bool
	Connected bool
	Token     string // opaque reconnection token
	Synthetic bool   // machine-filled stand-in
}

// Seated reports whether the participant has taken a seat.
func (p *Participant) Seated() bool {
	return p.Seat > 0
}

// ParticipantState carries per-participant flags that outlive a single night
type ParticipantState struct {
	Alive    bool
	Disarmed bool // hunter was poisoned, day privilege lost
}
