package game

import "github.com/SkyFish-bot/werewolves/internal/models"

// ResolveNight computes the night's deaths from the recorded action bag.
// The kill lands unless the witch saved or the guard protected the same
// target; either negation alone suffices. Poison is not a werewolf attack
// and lands regardless of protection. If exactly one member of the lover
// pair ends up dead, the survivor dies of heartbreak, exactly once. The
// dead set names participants killed on earlier nights; they cannot die
// again. The returned list is deduplicated and order-stable.
func ResolveNight(bag *models.NightActions, lovers [2]string, dead map[string]bool) []string {
	deaths := []string{}
	listed := func(id string) bool {
		for _, d := range deaths {
			if d == id {
				return true
			}
		}
		return false
	}

	if bag != nil {
		if bag.KillTarget != "" && !bag.Saved && bag.ProtectTarget != bag.KillTarget && !dead[bag.KillTarget] {
			deaths = append(deaths, bag.KillTarget)
		}
		if bag.PoisonTarget != "" && !dead[bag.PoisonTarget] && !listed(bag.PoisonTarget) {
			deaths = append(deaths, bag.PoisonTarget)
		}
	}

	a, b := lovers[0], lovers[1]
	if a != "" && b != "" {
		aGone := dead[a] || listed(a)
		bGone := dead[b] || listed(b)
		if aGone != bGone {
			survivor := a
			if aGone {
				survivor = b
			}
			deaths = append(deaths, survivor)
		}
	}

	return deaths
}
