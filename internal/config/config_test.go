package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// clearEnv neutralizes ambient overrides so Load sees only what the test
// sets.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "ADDR", "PORT", "PUBLIC_URL"} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if got, want := cfg.Addr, ":8080"; got != want {
		t.Errorf("Addr = %q, want %q", got, want)
	}
	if got, want := cfg.Pacing.AnnounceSeconds, 5; got != want {
		t.Errorf("AnnounceSeconds = %d, want %d", got, want)
	}
	if got, want := cfg.DefaultRoom.Seats, 8; got != want {
		t.Errorf("DefaultRoom.Seats = %d, want %d", got, want)
	}
	if !slices.Contains(cfg.DefaultRoom.Specials, models.RoleSeer) {
		t.Error("default room carries no seer")
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := []byte("addr: \":9090\"\npacing:\n  announceSeconds: 1\ndefaultRoom:\n  seats: 10\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg := Load()

	// PORT wins over the file's addr
	if got, want := cfg.Addr, ":7070"; got != want {
		t.Errorf("Addr = %q, want %q", got, want)
	}
	if got, want := cfg.Pacing.AnnounceSeconds, 1; got != want {
		t.Errorf("AnnounceSeconds = %d, want %d", got, want)
	}
	// fields absent from the file keep their defaults
	if got, want := cfg.Pacing.InterPhaseSeconds, 2; got != want {
		t.Errorf("InterPhaseSeconds = %d, want %d", got, want)
	}
	if got, want := cfg.DefaultRoom.Seats, 10; got != want {
		t.Errorf("DefaultRoom.Seats = %d, want %d", got, want)
	}
	if got, want := cfg.DefaultRoom.Werewolves, 2; got != want {
		t.Errorf("DefaultRoom.Werewolves = %d, want %d", got, want)
	}
	if got, want := cfg.PublicURL, "http://localhost:8080"; got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg := Load()

	if got, want := cfg.Addr, ":8080"; got != want {
		t.Errorf("Addr = %q, want %q", got, want)
	}
	if got, want := cfg.DefaultRoom.Villagers, 3; got != want {
		t.Errorf("DefaultRoom.Villagers = %d, want %d", got, want)
	}
}

func TestLoadBadYAMLFallsBack(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()
	if got, want := cfg.Addr, ":8080"; got != want {
		t.Errorf("Addr = %q, want %q", got, want)
	}
}
