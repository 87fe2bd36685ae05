package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// PacingConfig sets the narration pauses in whole seconds. Zero means no
// pause, which is mostly useful in tests.
type PacingConfig struct {
	AnnounceSeconds    int `yaml:"announceSeconds"`
	InterPhaseSeconds  int `yaml:"interPhaseSeconds"`
	SyntheticSeconds   int `yaml:"syntheticSeconds"`
	LoverRevealSeconds int `yaml:"loverRevealSeconds"`
}

// Config is the full server configuration.
type Config struct {
	Addr        string            `yaml:"addr"`
	PublicURL   string            `yaml:"publicUrl"`
	Pacing      PacingConfig      `yaml:"pacing"`
	DefaultRoom models.RoomConfig `yaml:"defaultRoom"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:      ":8080",
		PublicURL: "http://localhost:8080",
		Pacing: PacingConfig{
			AnnounceSeconds:    5,
			InterPhaseSeconds:  2,
			SyntheticSeconds:   3,
			LoverRevealSeconds: 4,
		},
		DefaultRoom: models.RoomConfig{
			Seats:      8,
			Werewolves: 2,
			Villagers:  3,
			Specials:   []models.Role{models.RoleSeer, models.RoleWitch, models.RoleGuard},
			Language:   "en",
		},
	}
}

// Load reads the YAML configuration file and applies environment overrides.
// A missing file is fine; the defaults apply.
func Load() *Config {
	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			log.Printf("Load: %s is not valid YAML, using defaults: %v", path, err)
			cfg = Default()
		} else {
			log.Printf("Load: configuration read from %s", path)
		}
	case os.IsNotExist(err):
		log.Printf("Load: no %s found, using defaults", path)
	default:
		log.Printf("Load: cannot read %s, using defaults: %v", path, err)
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if url := os.Getenv("PUBLIC_URL"); url != "" {
		cfg.PublicURL = url
	}

	return cfg
}
