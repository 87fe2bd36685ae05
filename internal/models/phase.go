package models

// Phase represents the current state of a room
type Phase string

const (
	PhaseLobby        Phase = "lobby"
	PhaseOrphanSelect Phase = "orphanSelect"
	PhaseNight        Phase = "night"
	PhaseDay          Phase = "day"
)

// phaseTransitions lists the legal forward moves. Every phase may also
// reset back to lobby on host request.
var phaseTransitions = map[Phase][]Phase{
	PhaseLobby:        {PhaseOrphanSelect, PhaseNight},
	PhaseOrphanSelect: {PhaseNight},
	PhaseNight:        {PhaseDay},
	PhaseDay:          {PhaseNight},
}

// CanTransitionTo reports whether moving from p to next is legal.
func (p Phase) CanTransitionTo(next Phase) bool {
	if next == PhaseLobby {
		return p != PhaseLobby
	}
	for _, t := range phaseTransitions[p] {
		if t == next {
			return true
		}
	}
	return false
}
