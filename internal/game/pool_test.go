package game

import (
	"testing"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

func roleCounts(pool []models.Role) map[models.Role]int {
	counts := make(map[models.Role]int)
	for _, r := range pool {
		counts[r]++
	}
	return counts
}

func TestBuildPoolComposition(t *testing.T) {
	cfg := models.RoomConfig{
		Seats:      6,
		Werewolves: 2,
		Villagers:  3,
		Specials:   []models.Role{models.RoleSeer},
	}

	pool := BuildPool(cfg)
	if got, want := len(pool), cfg.Seats; got != want {
		t.Fatalf("pool size = %d, want %d", got, want)
	}

	counts := roleCounts(pool)
	if got := counts[models.RoleWerewolf]; got != 2 {
		t.Errorf("werewolf tokens = %d, want 2", got)
	}
	if got := counts[models.RoleSeer]; got != 1 {
		t.Errorf("seer tokens = %d, want 1", got)
	}
	if got := counts[models.RoleVillager]; got != 3 {
		t.Errorf("villager tokens = %d, want 3", got)
	}
}

func TestBuildPoolIncludesOrphans(t *testing.T) {
	cfg := models.RoomConfig{Seats: 5, Werewolves: 1, Orphans: 2, Villagers: 2}

	counts := roleCounts(BuildPool(cfg))
	if got := counts[models.RoleOrphan]; got != 2 {
		t.Errorf("orphan tokens = %d, want 2", got)
	}
}

func TestBuildPoolFillsShortConfigWithVillagers(t *testing.T) {
	cfg := models.RoomConfig{Seats: 5, Werewolves: 1}

	pool := BuildPool(cfg)
	if got, want := len(pool), 5; got != want {
		t.Fatalf("pool size = %d, want %d", got, want)
	}
	counts := roleCounts(pool)
	if got := counts[models.RoleVillager]; got != 4 {
		t.Errorf("villager fill = %d, want 4", got)
	}
}

func TestBuildPoolCapsOverflowAtSeats(t *testing.T) {
	cfg := models.RoomConfig{Seats: 3, Werewolves: 5}

	pool := BuildPool(cfg)
	if got, want := len(pool), 3; got != want {
		t.Fatalf("pool size = %d, want %d", got, want)
	}
	if got := roleCounts(pool)[models.RoleWerewolf]; got != 3 {
		t.Errorf("werewolf tokens = %d, want 3", got)
	}
}

func TestDrawConsumesHeadAndFallsBack(t *testing.T) {
	pool := []models.Role{models.RoleSeer, models.RoleWitch}

	pool, role := Draw(pool)
	if role != models.RoleSeer {
		t.Errorf("first draw = %q, want %q", role, models.RoleSeer)
	}
	pool, role = Draw(pool)
	if role != models.RoleWitch {
		t.Errorf("second draw = %q, want %q", role, models.RoleWitch)
	}
	if len(pool) != 0 {
		t.Fatalf("pool not exhausted, %d left", len(pool))
	}

	_, role = Draw(pool)
	if role != models.RoleVillager {
		t.Errorf("exhausted draw = %q, want the villager fallback", role)
	}
}
