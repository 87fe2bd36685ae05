package game

import (
	"log"
	"math/rand"
	"strings"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// ChainNode is one participant on a protector chain.
type ChainNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

// Chain is one walked protector sequence, for host inspection only.
type Chain struct {
	Nodes   []ChainNode `json:"nodes"`
	HasLoop bool        `json:"hasLoop"`
	Text    string      `json:"text"`
}

// AllChosen reports whether every listed dependent has a recorded protector.
// Vacuously true for an empty dependent set.
func AllChosen(links map[string]string, dependents []string) bool {
	for _, id := range dependents {
		if links[id] == "" {
			return false
		}
	}
	return true
}

// BuildChains walks every orphan-role holder's protector links. A node
// reappearing within the current walk marks the chain looped and stops it;
// otherwise the walk ends at the first non-dependent protector, appended as
// the terminal node. Chains start in seat order and a dependent already
// covered by an earlier chain does not start its own.
func BuildChains(room *models.Room) []Chain {
	var chains []Chain
	covered := make(map[string]bool)

	for _, seat := range room.Seats {
		start := seat.Occupant
		if start == "" || room.Roles[start] != models.RoleOrphan || covered[start] {
			continue
		}
		var chain Chain
		seen := make(map[string]bool)
		cur := start
		for {
			seen[cur] = true
			if room.Roles[cur] == models.RoleOrphan {
				covered[cur] = true
			}
			chain.Nodes = append(chain.Nodes, chainNode(room, cur))

			next := room.OrphanLinks[cur]
			if next == "" {
				break
			}
			if seen[next] {
				chain.HasLoop = true
				break
			}
			if room.Roles[next] != models.RoleOrphan {
				chain.Nodes = append(chain.Nodes, chainNode(room, next))
				break
			}
			cur = next
		}

		names := make([]string, len(chain.Nodes))
		for i, n := range chain.Nodes {
			names[i] = n.Name
		}
		chain.Text = strings.Join(names, " -> ")
		chains = append(chains, chain)
	}
	return chains
}

func chainNode(room *models.Room, participantID string) ChainNode {
	node := ChainNode{ID: participantID}
	if p, ok := room.Participants[participantID]; ok {
		node.Name = p.Name
		node.Seat = p.Seat
	}
	return node
}

// OrphanChoose records a protector pick during orphan selection. When every
// real orphan holder has chosen, the chains go to the host and the first
// night begins.
func (e *Engine) OrphanChoose(room *models.Room, actorID, targetID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if room.Phase != models.PhaseOrphanSelect {
		return PhaseViolation("protector selection is closed")
	}
	actor, ok := room.Participants[actorID]
	if !ok || room.Roles[actorID] != models.RoleOrphan {
		return InvalidParticipant("only an orphan picks a protector")
	}
	if room.OrphanLinks[actorID] != "" {
		return PhaseViolation("protector already chosen")
	}
	if targetID == actorID {
		return InvalidTarget("cannot pick yourself")
	}
	protector, ok := room.Participants[targetID]
	if !ok {
		return InvalidTarget("unknown protector")
	}
	if !protector.Seated() {
		return InvalidTarget("protector is not seated")
	}

	room.OrphanLinks[actorID] = targetID
	log.Printf("OrphanChoose: room=%s %s chose a protector", room.ID, actor.Name)

	if !AllChosen(room.OrphanLinks, e.realOrphanHolders(room)) {
		return nil
	}
	e.finishOrphanSelection(room)
	return nil
}

// finishOrphanSelection closes the selection sub-phase: the walked chains go
// to the host and the first night is scheduled (lock held).
func (e *Engine) finishOrphanSelection(room *models.Room) {
	chains := BuildChains(room)
	e.Notify.ToParticipant(room.ID, room.HostID, EventOrphanChains, chains)
	e.notifyPhase(room, EventPhaseComplete, KeyOrphanComplete)

	room.Schedule(e.Pacing.InterPhase, func() {
		if room.Phase != models.PhaseOrphanSelect {
			return
		}
		e.startNight(room)
	})
}

// autoPickProtector chooses for a synthetic orphan holder so selection never
// waits on a stand-in (lock held).
func (e *Engine) autoPickProtector(room *models.Room, holderID string) {
	var candidates []string
	for _, seat := range room.Seats {
		if seat.Occupant == "" || seat.Occupant == holderID {
			continue
		}
		if room.Alive(seat.Occupant) {
			candidates = append(candidates, seat.Occupant)
		}
	}
	if len(candidates) == 0 {
		return
	}
	pick := candidates[rand.Intn(len(candidates))]
	room.OrphanLinks[holderID] = pick
	log.Printf("autoPickProtector: room=%s stand-in %s linked to %s", room.ID, holderID, pick)
}

// realOrphanHolders lists living non-synthetic orphan holders; synthetic
// holders never block selection (lock held).
func (e *Engine) realOrphanHolders(room *models.Room) []string {
	var out []string
	for _, id := range room.LivingHolders(models.RoleOrphan) {
		if p, ok := room.Participants[id]; ok && !p.Synthetic {
			out = append(out, id)
		}
	}
	return out
}
