package models

// Role is a secret role token held by a seated participant.
type Role string

const (
	RoleVillager Role = "villager"
	RoleWerewolf Role = "werewolf"
	RoleSeer     Role = "seer"
	RoleWitch    Role = "witch"
	RoleHunter   Role = "hunter"
	RoleGuard    Role = "guard"
	RoleCupid    Role = "cupid"
	RoleOrphan   Role = "orphan"
)

// Faction is what the seer learns about a checked participant.
type Faction string

const (
	FactionWerewolf Faction = "werewolf"
	FactionVillager Faction = "villager"
)

// SpecialRoles lists every role with a night sub-phase, in the canonical
// order the convergence check walks them.
var SpecialRoles = []Role{RoleCupid, RoleGuard, RoleWerewolf, RoleWitch, RoleSeer, RoleHunter}

// Faction returns the side a role counts for when checked by the seer.
func (r Role) Faction() Faction {
	if r == RoleWerewolf {
		return FactionWerewolf
	}
	return FactionVillager
}

// IsSpecial reports whether the role has its own night sub-phase.
func (r Role) IsSpecial() bool {
	for _, s := range SpecialRoles {
		if r == s {
			return true
		}
	}
	return false
}

// ParseRole maps a wire string to a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleVillager, RoleWerewolf, RoleSeer, RoleWitch, RoleHunter, RoleGuard, RoleCupid, RoleOrphan:
		return Role(s), true
	}
	return "", false
}
