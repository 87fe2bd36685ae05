package game

// Narration keys attached to phase events. The core never emits narration
// text; localization and playback belong to the transport side.
const (
	KeyOrphanBegin    = "orphan.begin"
	KeyOrphanComplete = "orphan.complete"

	KeyNightAnnounce = "night.announce.begin"

	KeyCupidBegin    = "night.cupid.begin"
	KeyCupidComplete = "night.cupid.end"
	KeyLoverReveal   = "night.cupid.reveal"

	KeyGuardBegin    = "night.guard.begin"
	KeyGuardComplete = "night.guard.end"

	KeyWerewolfBegin    = "night.werewolf.begin"
	KeyWerewolfComplete = "night.werewolf.end"

	KeyWitchBegin    = "night.witch.begin"
	KeyWitchComplete = "night.witch.end"

	KeySeerBegin    = "night.seer.begin"
	KeySeerComplete = "night.seer.end"

	KeyHunterBegin    = "night.hunter.begin"
	KeyHunterComplete = "night.hunter.end"

	KeyDayDeaths = "day.deaths"

	KeyLobbyReset = "lobby.reset"
)
