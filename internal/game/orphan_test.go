package game

import (
	"testing"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

func TestAllChosen(t *testing.T) {
	if !AllChosen(map[string]string{}, nil) {
		t.Error("empty dependent set should count as complete")
	}

	links := map[string]string{"a": "x"}
	if AllChosen(links, []string{"a", "b"}) {
		t.Error("missing link reported complete")
	}

	links["b"] = "y"
	if !AllChosen(links, []string{"a", "b"}) {
		t.Error("complete links reported incomplete")
	}
}

func TestBuildChainsEndsAtNonDependent(t *testing.T) {
	e, _ := testEngine(Pacing{})
	room, ids := seatRoom(e, models.RoleOrphan, models.RoleOrphan, models.RoleVillager)
	room.OrphanLinks[ids[0]] = ids[1]
	room.OrphanLinks[ids[1]] = ids[2]

	chains := BuildChains(room)
	if len(chains) != 1 {
		t.Fatalf("chains = %d, want 1", len(chains))
	}
	chain := chains[0]
	if chain.HasLoop {
		t.Error("straight chain flagged as loop")
	}
	if got, want := chain.Text, "Player 1 -> Player 2 -> Player 3"; got != want {
		t.Errorf("chain text = %q, want %q", got, want)
	}
	if got, want := len(chain.Nodes), 3; got != want {
		t.Errorf("chain length = %d, want %d", got, want)
	}
}

func TestBuildChainsDetectsLoop(t *testing.T) {
	e, _ := testEngine(Pacing{})
	room, ids := seatRoom(e, models.RoleOrphan, models.RoleOrphan, models.RoleOrphan)
	room.OrphanLinks[ids[0]] = ids[1]
	room.OrphanLinks[ids[1]] = ids[2]
	room.OrphanLinks[ids[2]] = ids[0]

	chains := BuildChains(room)
	if len(chains) != 1 {
		t.Fatalf("chains = %d, want 1", len(chains))
	}
	if !chains[0].HasLoop {
		t.Error("cycle not flagged as loop")
	}
	if got, want := len(chains[0].Nodes), 3; got != want {
		t.Errorf("loop chain length = %d, want %d", got, want)
	}
}

func TestBuildChainsSkipsCoveredStarts(t *testing.T) {
	e, _ := testEngine(Pacing{})
	room, ids := seatRoom(e, models.RoleOrphan, models.RoleOrphan, models.RoleVillager, models.RoleVillager)
	// seat 1 chains through seat 2; seat 2 must not start a second chain
	room.OrphanLinks[ids[0]] = ids[1]
	room.OrphanLinks[ids[1]] = ids[3]

	chains := BuildChains(room)
	if len(chains) != 1 {
		t.Fatalf("chains = %d, want 1", len(chains))
	}
}

func TestOrphanSelectionFlow(t *testing.T) {
	e, rec := testEngine(Pacing{})
	room, ids := seatRoom(e, models.RoleOrphan, models.RoleOrphan, models.RoleWerewolf, models.RoleVillager)
	first, second := ids[0], ids[1]
	room.Phase = models.PhaseOrphanSelect

	if f := e.OrphanChoose(room, first, first); f == nil || f.Code != CodeInvalidTarget {
		t.Fatalf("self-pick = %v, want InvalidTarget", f)
	}
	if f := e.OrphanChoose(room, ids[3], first); f == nil || f.Code != CodeInvalidParticipant {
		t.Fatalf("non-orphan pick = %v, want InvalidParticipant", f)
	}
	// a spectator without a seat cannot be anyone's protector
	room.Participants["lurker"] = &models.Participant{ID: "lurker", Name: "Lurker", Connected: true}
	if f := e.OrphanChoose(room, first, "lurker"); f == nil || f.Code != CodeInvalidTarget {
		t.Fatalf("spectator protector = %v, want InvalidTarget", f)
	}

	if f := e.OrphanChoose(room, first, ids[3]); f != nil {
		t.Fatalf("first pick failed: %v", f)
	}
	if got, want := room.Phase, models.PhaseOrphanSelect; got != want {
		t.Fatalf("night started with a pick outstanding, phase = %q", got)
	}
	if f := e.OrphanChoose(room, first, ids[2]); f == nil || f.Code != CodePhaseViolation {
		t.Fatalf("re-pick = %v, want PhaseViolation", f)
	}

	if f := e.OrphanChoose(room, second, first); f != nil {
		t.Fatalf("second pick failed: %v", f)
	}

	// all chosen: the host sees the chains and the night begins
	ev, ok := rec.lastTo(room.HostID, EventOrphanChains)
	if !ok {
		t.Fatal("host got no protector chains")
	}
	chains := ev.Data.([]Chain)
	if len(chains) != 2 {
		t.Fatalf("chains = %d, want 2", len(chains))
	}
	if got, want := chains[0].Text, "Player 1 -> Player 4"; got != want {
		t.Errorf("first chain = %q, want %q", got, want)
	}
	if got, want := chains[1].Text, "Player 2 -> Player 1 -> Player 4"; got != want {
		t.Errorf("second chain = %q, want %q", got, want)
	}

	if got, want := room.Phase, models.PhaseNight; got != want {
		t.Fatalf("phase after selection = %q, want %q", got, want)
	}
	if got, want := room.ActiveRole, models.RoleWerewolf; got != want {
		t.Errorf("active role = %q, want %q", got, want)
	}

	// selection is closed for good
	if f := e.OrphanChoose(room, second, ids[2]); f == nil || f.Code != CodePhaseViolation {
		t.Fatalf("pick after close = %v, want PhaseViolation", f)
	}
}
