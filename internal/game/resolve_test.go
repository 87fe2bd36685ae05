package game

import (
	"reflect"
	"testing"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

func TestResolveNight(t *testing.T) {
	tests := []struct {
		name   string
		bag    *models.NightActions
		lovers [2]string
		dead   map[string]bool
		want   []string
	}{
		{
			name: "kill lands",
			bag:  &models.NightActions{KillTarget: "a"},
			want: []string{"a"},
		},
		{
			name: "save cancels the kill",
			bag:  &models.NightActions{KillTarget: "a", Saved: true},
			want: []string{},
		},
		{
			name: "protection cancels the kill",
			bag:  &models.NightActions{KillTarget: "a", ProtectTarget: "a"},
			want: []string{},
		},
		{
			name: "protection elsewhere does not help",
			bag:  &models.NightActions{KillTarget: "a", ProtectTarget: "b"},
			want: []string{"a"},
		},
		{
			name: "poison kills",
			bag:  &models.NightActions{PoisonTarget: "b"},
			want: []string{"b"},
		},
		{
			name: "poison ignores protection",
			bag:  &models.NightActions{PoisonTarget: "b", ProtectTarget: "b"},
			want: []string{"b"},
		},
		{
			name: "poison on the kill target lists once",
			bag:  &models.NightActions{KillTarget: "a", PoisonTarget: "a"},
			want: []string{"a"},
		},
		{
			name: "poison still lands on a saved victim",
			bag:  &models.NightActions{KillTarget: "a", Saved: true, PoisonTarget: "a"},
			want: []string{"a"},
		},
		{
			name: "kill before poison in the result",
			bag:  &models.NightActions{KillTarget: "a", PoisonTarget: "b"},
			want: []string{"a", "b"},
		},
		{
			name:   "heartbreak follows the kill",
			bag:    &models.NightActions{KillTarget: "a"},
			lovers: [2]string{"a", "b"},
			want:   []string{"a", "b"},
		},
		{
			name:   "heartbreak follows the poison",
			bag:    &models.NightActions{PoisonTarget: "b"},
			lovers: [2]string{"a", "b"},
			want:   []string{"b", "a"},
		},
		{
			name:   "both lovers dying adds nothing",
			bag:    &models.NightActions{KillTarget: "a", PoisonTarget: "b"},
			lovers: [2]string{"a", "b"},
			want:   []string{"a", "b"},
		},
		{
			name:   "heartbreak trails the night's own deaths",
			bag:    &models.NightActions{KillTarget: "a", PoisonTarget: "c"},
			lovers: [2]string{"a", "b"},
			want:   []string{"a", "c", "b"},
		},
		{
			name:   "lovers already dead stay quiet",
			lovers: [2]string{"a", "b"},
			dead:   map[string]bool{"a": true, "b": true},
			want:   []string{},
		},
		{
			name:   "widowed lover follows",
			lovers: [2]string{"a", "b"},
			dead:   map[string]bool{"a": true},
			want:   []string{"b"},
		},
		{
			name: "kill on a corpse is ignored",
			bag:  &models.NightActions{KillTarget: "a"},
			dead: map[string]bool{"a": true},
			want: []string{},
		},
		{
			name: "poison on a corpse is ignored",
			bag:  &models.NightActions{PoisonTarget: "a"},
			dead: map[string]bool{"a": true},
			want: []string{},
		},
		{
			name: "empty night",
			bag:  &models.NightActions{},
			want: []string{},
		},
		{
			name: "nil bag",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveNight(tt.bag, tt.lovers, tt.dead)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("deaths = %v, want %v", got, tt.want)
			}
		})
	}
}
