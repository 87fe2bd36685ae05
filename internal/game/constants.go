package game

import "time"

const (
	// MinSeats is the smallest seat count a room configuration may declare
	MinSeats = 3

	// MaxSeats bounds room size; larger requests are a configuration error
	MaxSeats = 20

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating room codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Pacing holds the delays that mimic narration timing between sub-phases.
// Zero values run continuations inline, which tests rely on.
type Pacing struct {
	Announce    time.Duration // opening announcement before the role sequence
	InterPhase  time.Duration // gap between one sub-phase completing and the next starting
	Synthetic   time.Duration // wait before a synthetic-only sub-phase auto-completes
	LoverReveal time.Duration // pause while the cupid's chosen pair see each other
}

// DefaultPacing returns the delays used when no configuration overrides them.
func DefaultPacing() Pacing {
	return Pacing{
		Announce:    5 * time.Second,
		InterPhase:  2 * time.Second,
		Synthetic:   3 * time.Second,
		LoverReveal: 4 * time.Second,
	}
}
