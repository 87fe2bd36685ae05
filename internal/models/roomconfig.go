package models

// RoomConfig is fixed at room creation and never mutated afterwards.
type RoomConfig struct {
	Seats      int    `json:"seats" yaml:"seats"`
	Werewolves int    `json:"werewolves" yaml:"werewolves"`
	Villagers  int    `json:"villagers" yaml:"villagers"`
	Orphans    int    `json:"orphans" yaml:"orphans"`
	Specials   []Role `json:"specials" yaml:"specials"`
	Language   string `json:"language" yaml:"language"`
}

// RoleSum returns the number of seats the configured role counts claim.
func (c RoomConfig) RoleSum() int {
	return c.Werewolves + c.Villagers + c.Orphans + len(c.Specials)
}
