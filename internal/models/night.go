package models

// NightActions is the bag of actions recorded during one night (ephemeral,
// re-created at every night start)
type NightActions struct {
	KillTarget    string // participant chosen by the werewolves, empty = none
	Saved         bool   // witch spent the save potion on the kill target
	PoisonTarget  string
	ProtectTarget string
	SeerTarget    string
}
