package game

import (
	"log"
	"math/rand"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// BuildPool creates the shuffled role pool for a configuration: one token
// per werewolf slot, one per orphan slot, one per configured special role,
// then villager tokens for every remaining seat. The pool length always
// equals the seat count; a mismatched villager count is reported, not fatal.
func BuildPool(config models.RoomConfig) []models.Role {
	pool := make([]models.Role, 0, config.Seats)
	add := func(role models.Role, n int) {
		for i := 0; i < n; i++ {
			if len(pool) >= config.Seats {
				log.Printf("BuildPool: role %s overflows %d seats, token dropped", role, config.Seats)
				return
			}
			pool = append(pool, role)
		}
	}

	add(models.RoleWerewolf, config.Werewolves)
	add(models.RoleOrphan, config.Orphans)
	for _, special := range config.Specials {
		add(special, 1)
	}

	if config.RoleSum() != config.Seats {
		log.Printf("BuildPool: config sums to %d roles for %d seats, filling with villagers", config.RoleSum(), config.Seats)
	}
	for len(pool) < config.Seats {
		pool = append(pool, models.RoleVillager)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

// Draw removes and returns the head of the pool. An exhausted pool yields
// the villager default so seat assignment always succeeds.
func Draw(pool []models.Role) ([]models.Role, models.Role) {
	if len(pool) == 0 {
		log.Printf("Draw: pool exhausted, falling back to villager")
		return pool, models.RoleVillager
	}
	return pool[1:], pool[0]
}
