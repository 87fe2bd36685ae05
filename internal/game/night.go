package game

import (
	"log"
	"time"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// nightStep describes one role's slot in the night sequence. Opening steps
// run in table order until the werewolf pivot completes; the remaining steps
// are started by the convergence check in priority order. Adding a role is a
// table entry plus its begin func.
type nightStep struct {
	Role     models.Role
	BeginKey string
	EndKey   string
	Opening  bool
	Present  func(room *models.Room) bool
	Begin    func(e *Engine, room *models.Room)
}

var nightSteps = []nightStep{
	{Role: models.RoleCupid, BeginKey: KeyCupidBegin, EndKey: KeyCupidComplete, Opening: true, Present: cupidPending, Begin: (*Engine).beginCupid},
	{Role: models.RoleGuard, BeginKey: KeyGuardBegin, EndKey: KeyGuardComplete, Opening: true, Present: rolePresent(models.RoleGuard), Begin: (*Engine).beginGuard},
	{Role: models.RoleWerewolf, BeginKey: KeyWerewolfBegin, EndKey: KeyWerewolfComplete, Opening: true, Present: rolePresent(models.RoleWerewolf), Begin: (*Engine).beginWerewolf},
	{Role: models.RoleWitch, BeginKey: KeyWitchBegin, EndKey: KeyWitchComplete, Present: rolePresent(models.RoleWitch), Begin: (*Engine).beginWitch},
	{Role: models.RoleSeer, BeginKey: KeySeerBegin, EndKey: KeySeerComplete, Present: rolePresent(models.RoleSeer), Begin: (*Engine).beginSeer},
	{Role: models.RoleHunter, BeginKey: KeyHunterBegin, EndKey: KeyHunterComplete, Present: rolePresent(models.RoleHunter), Begin: (*Engine).beginHunter},
}

// convergencePriority orders the roles convergence may still have to start;
// cupid, guard and werewolf are sequenced before convergence is consulted.
var convergencePriority = []models.Role{models.RoleWitch, models.RoleSeer, models.RoleHunter}

func rolePresent(role models.Role) func(*models.Room) bool {
	return func(room *models.Room) bool {
		return len(room.LivingHolders(role)) > 0
	}
}

// cupidPending holds only on the night the pair gets formed.
func cupidPending(room *models.Room) bool {
	return len(room.LivingHolders(models.RoleCupid)) > 0 && room.Lovers[0] == ""
}

func stepFor(role models.Role) nightStep {
	for _, step := range nightSteps {
		if step.Role == role {
			return step
		}
	}
	return nightStep{Role: role}
}

// startNight opens a new night: fresh action bag and progress map, absent
// roles pre-satisfied, then the announcement pacing before the opening
// sequence. Must be called with the lock held.
func (e *Engine) startNight(room *models.Room) {
	if !room.Phase.CanTransitionTo(models.PhaseNight) {
		log.Printf("startNight: room=%s cannot enter night from %s", room.ID, room.Phase)
		return
	}
	room.NightNumber++
	room.Phase = models.PhaseNight
	room.Night = &models.NightActions{}
	room.Progress = make(map[models.Role]bool)
	room.ActiveRole = ""
	for _, step := range nightSteps {
		if !step.Present(room) {
			room.Progress[step.Role] = true
		}
	}

	log.Printf("startNight: room=%s night=%d", room.ID, room.NightNumber)
	e.notifyPhase(room, EventPhaseStarted, KeyNightAnnounce)

	night := room.NightNumber
	room.Schedule(e.Pacing.Announce, func() {
		e.continueNight(room, night)
	})
}

// continueNight advances the sequence. It mostly runs from timers, so it
// re-checks freshness before touching anything.
func (e *Engine) continueNight(room *models.Room, night int) {
	if room.Phase != models.PhaseNight || room.NightNumber != night {
		return
	}
	for _, step := range nightSteps {
		if !step.Opening {
			break
		}
		if !room.Progress[step.Role] {
			e.beginStep(room, step)
			return
		}
	}
	e.converge(room)
}

// converge decides whether the night is complete or which role acts next.
// Inert until the werewolf pivot has completed.
func (e *Engine) converge(room *models.Room) {
	if !room.Progress[models.RoleWerewolf] {
		return
	}
	complete := true
	for _, step := range nightSteps {
		if !room.Progress[step.Role] {
			complete = false
			break
		}
	}
	if complete {
		e.transitionToDay(room)
		return
	}
	for _, role := range convergencePriority {
		if !room.Progress[role] {
			e.beginStep(room, stepFor(role))
			return
		}
	}
}

// beginStep opens one role's sub-phase. A role held only by synthetic
// participants auto-completes after the synthetic pacing since no input will
// ever come.
func (e *Engine) beginStep(room *models.Room, step nightStep) {
	room.ActiveRole = step.Role
	e.notifyPhase(room, EventPhaseStarted, step.BeginKey)

	real := 0
	for _, id := range room.LivingHolders(step.Role) {
		if p, ok := room.Participants[id]; ok && !p.Synthetic {
			real++
		}
	}
	if real == 0 {
		night := room.NightNumber
		room.Schedule(e.Pacing.Synthetic, func() {
			if room.Phase != models.PhaseNight || room.NightNumber != night || room.Progress[step.Role] {
				return
			}
			log.Printf("beginStep: room=%s role=%s held only by standins, auto-completing", room.ID, step.Role)
			e.completeStep(room, step.Role)
		})
		return
	}
	step.Begin(e, room)
}

// completeStep marks a role done and schedules the next advance after the
// standard inter-phase pacing.
func (e *Engine) completeStep(room *models.Room, role models.Role) {
	e.completeStepAfter(room, role, e.Pacing.InterPhase)
}

func (e *Engine) completeStepAfter(room *models.Room, role models.Role, delay time.Duration) {
	room.Progress[role] = true
	room.ActiveRole = ""
	e.notifyPhase(room, EventPhaseComplete, stepFor(role).EndKey)
	night := room.NightNumber
	room.Schedule(delay, func() {
		e.continueNight(room, night)
	})
}

// nightActionCheck enforces phase, turn order, role ownership, liveness and
// the hard once-per-night completion flag. No state is mutated on rejection.
func (e *Engine) nightActionCheck(room *models.Room, actorID string, role models.Role) *Failure {
	if room.Phase != models.PhaseNight {
		return PhaseViolation("not night")
	}
	if _, ok := room.Participants[actorID]; !ok || room.Roles[actorID] != role {
		return InvalidParticipant("action does not match your role")
	}
	if !room.Alive(actorID) {
		return InvalidParticipant("the dead do not act")
	}
	if room.Progress[role] {
		return PhaseViolation(string(role) + " already acted tonight")
	}
	if room.ActiveRole != role {
		return PhaseViolation("not your turn")
	}
	return nil
}

// validTarget checks that a target is a seated participant still alive (lock
// held). Spectators without a seat are not part of the game and cannot be
// targeted.
func validTarget(room *models.Room, targetID string) *Failure {
	p, ok := room.Participants[targetID]
	if !ok {
		return InvalidTarget("unknown target")
	}
	if !p.Seated() {
		return InvalidTarget("target is not seated")
	}
	if !room.Alive(targetID) {
		return InvalidTarget("target is already dead")
	}
	return nil
}

func (e *Engine) beginCupid(room *models.Room) {
	for _, id := range room.LivingHolders(models.RoleCupid) {
		if p, ok := room.Participants[id]; !ok || p.Synthetic {
			continue
		}
		e.Notify.ToParticipant(room.ID, id, EventRolePrompt, RolePrompt{
			Action:     "cupid-link",
			Candidates: livingCandidates(room),
		})
	}
}

// CupidLink forms the lover pair, once per game, and reveals the partners to
// each other before the sequence continues.
func (e *Engine) CupidLink(room *models.Room, actorID, firstID, secondID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleCupid); f != nil {
		return f
	}
	if room.Lovers[0] != "" {
		return PhaseViolation("the pair is already formed")
	}
	if firstID == secondID {
		return InvalidTarget("pick two distinct participants")
	}
	if f := validTarget(room, firstID); f != nil {
		return f
	}
	if f := validTarget(room, secondID); f != nil {
		return f
	}

	room.Lovers = [2]string{firstID, secondID}
	log.Printf("CupidLink: room=%s pair formed", room.ID)

	e.notifyPhase(room, EventPhaseStarted, KeyLoverReveal)
	e.Notify.ToParticipant(room.ID, firstID, EventLoverReveal, LoverReveal{Partner: candidateView(room, secondID)})
	e.Notify.ToParticipant(room.ID, secondID, EventLoverReveal, LoverReveal{Partner: candidateView(room, firstID)})

	e.completeStepAfter(room, models.RoleCupid, e.Pacing.LoverReveal)
	return nil
}

func (e *Engine) beginGuard(room *models.Room) {
	for _, id := range room.LivingHolders(models.RoleGuard) {
		if p, ok := room.Participants[id]; !ok || p.Synthetic {
			continue
		}
		e.Notify.ToParticipant(room.ID, id, EventRolePrompt, RolePrompt{
			Action:     "guard-protect",
			Candidates: livingCandidates(room, id, room.LastProtect),
		})
	}
}

// GuardProtect records the guard's protection target. Self-protection and
// repeating the previous night's target are both rejected.
func (e *Engine) GuardProtect(room *models.Room, actorID, targetID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleGuard); f != nil {
		return f
	}
	if f := validTarget(room, targetID); f != nil {
		return f
	}
	if targetID == actorID {
		return InvalidTarget("cannot protect yourself")
	}
	if targetID == room.LastProtect {
		return InvalidTarget("cannot protect the same participant two nights in a row")
	}

	room.Night.ProtectTarget = targetID
	e.completeStep(room, models.RoleGuard)
	return nil
}

func (e *Engine) beginWerewolf(room *models.Room) {
	wolves := room.LivingHolders(models.RoleWerewolf)
	for _, id := range wolves {
		p, ok := room.Participants[id]
		if !ok || p.Synthetic {
			continue
		}
		var allies []CandidateView
		for _, other := range wolves {
			if other != id {
				allies = append(allies, candidateView(room, other))
			}
		}
		e.Notify.ToParticipant(room.ID, id, EventRolePrompt, RolePrompt{
			Action:     "werewolf-kill",
			Candidates: livingCandidates(room),
			Allies:     allies,
		})
	}
}

// WerewolfKill records the pack's kill target. The first submission settles
// the night's hunt for the whole pack.
func (e *Engine) WerewolfKill(room *models.Room, actorID, targetID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleWerewolf); f != nil {
		return f
	}
	if f := validTarget(room, targetID); f != nil {
		return f
	}

	room.Night.KillTarget = targetID
	e.completeStep(room, models.RoleWerewolf)
	return nil
}

func (e *Engine) beginWitch(room *models.Room) {
	for _, id := range room.LivingHolders(models.RoleWitch) {
		p, ok := room.Participants[id]
		if !ok || p.Synthetic {
			continue
		}
		prompt := RolePrompt{
			Action:          "witch",
			Candidates:      livingCandidates(room),
			PoisonAvailable: !room.PoisonUsed,
		}
		if victim := room.Night.KillTarget; victim != "" {
			view := candidateView(room, victim)
			prompt.Victim = &view
			prompt.SaveAvailable = !room.SaveUsed && victim != id
		}
		e.Notify.ToParticipant(room.ID, id, EventRolePrompt, prompt)
	}
}

// WitchSave spends the save potion on tonight's kill target. Saving herself
// is forbidden.
func (e *Engine) WitchSave(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleWitch); f != nil {
		return f
	}
	if room.SaveUsed {
		return InvalidTarget("save potion already spent")
	}
	if room.Night.KillTarget == "" {
		return InvalidTarget("no victim to save")
	}
	if room.Night.KillTarget == actorID {
		return InvalidTarget("cannot save yourself")
	}

	room.Night.Saved = true
	room.SaveUsed = true
	e.completeStep(room, models.RoleWitch)
	return nil
}

// WitchPoison spends the poison potion on an arbitrary living target.
func (e *Engine) WitchPoison(room *models.Room, actorID, targetID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleWitch); f != nil {
		return f
	}
	if room.PoisonUsed {
		return InvalidTarget("poison potion already spent")
	}
	if f := validTarget(room, targetID); f != nil {
		return f
	}

	room.Night.PoisonTarget = targetID
	room.PoisonUsed = true
	e.completeStep(room, models.RoleWitch)
	return nil
}

// WitchSkip completes the witch's turn without spending anything.
func (e *Engine) WitchSkip(room *models.Room, actorID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleWitch); f != nil {
		return f
	}
	e.completeStep(room, models.RoleWitch)
	return nil
}

func (e *Engine) beginSeer(room *models.Room) {
	for _, id := range room.LivingHolders(models.RoleSeer) {
		if p, ok := room.Participants[id]; !ok || p.Synthetic {
			continue
		}
		e.Notify.ToParticipant(room.ID, id, EventRolePrompt, RolePrompt{
			Action:     "seer-check",
			Candidates: livingCandidates(room, id),
		})
	}
}

// SeerCheck reveals the target's faction privately to the seer. The check
// does not complete the sub-phase; a separate acknowledge does.
func (e *Engine) SeerCheck(room *models.Room, actorID, targetID string) *Failure {
	room.Lock()
	defer room.Unlock()

	if f := e.nightActionCheck(room, actorID, models.RoleSeer); f != nil {
		return f
	}
	if room.Night.SeerTarget != "" {
		return InvalidTarget("already checked tonight")
	}
	if targetID == actorID {
		return InvalidTarget("cannot check yourself")
	}
	if f := validTarget(room, targetID); f != nil {
		return f
	}

	room.Night.SeerTarget = targetID
	target := room.Participants[targetID]
	e.Notify.ToParticipant(room.ID, actorID, EventSeerResult, SeerResult{
		TargetName: target.Name,
		TargetSeat: target.Seat,
		Faction:    room.Roles[targetID].Faction(),
	})
	return nil
}

func (e *Engine) beginHunter(room *models.Room) {
	for _, id := range room.LivingHolders(models.RoleHunter) {
		p, ok := room.Participants[id]
		if !ok || p.Synthetic {
			continue
		}
		state := room.States[id]
		if room.Night.PoisonTarget == id && state != nil {
			state.Disarmed = true
		}
		canShoot := state == nil || !state.Disarmed
		e.Notify.ToParticipant(room.ID, id, EventHunterStatus, HunterStatus{CanShoot: canShoot})
	}
}

// Acknowledge completes a sub-phase that reveals information first: the
// seer after a check, the hunter after the status notice.
func (e *Engine) Acknowledge(room *models.Room, actorID string, role models.Role) *Failure {
	room.Lock()
	defer room.Unlock()

	switch role {
	case models.RoleSeer:
		if f := e.nightActionCheck(room, actorID, models.RoleSeer); f != nil {
			return f
		}
		if room.Night.SeerTarget == "" {
			return PhaseViolation("nothing to acknowledge, check first")
		}
		e.completeStep(room, models.RoleSeer)
	case models.RoleHunter:
		if f := e.nightActionCheck(room, actorID, models.RoleHunter); f != nil {
			return f
		}
		e.completeStep(room, models.RoleHunter)
	default:
		return InvalidTarget("no acknowledgment for role " + string(role))
	}
	return nil
}

// transitionToDay resolves the night and enters the shared day phase.
func (e *Engine) transitionToDay(room *models.Room) {
	deadBefore := make(map[string]bool)
	for id, state := range room.States {
		if !state.Alive {
			deadBefore[id] = true
		}
	}

	deaths := ResolveNight(room.Night, room.Lovers, deadBefore)
	room.DayResult = deaths
	for _, id := range deaths {
		if state, ok := room.States[id]; ok {
			state.Alive = false
		}
	}
	room.LastProtect = room.Night.ProtectTarget
	room.Phase = models.PhaseDay
	room.ActiveRole = ""

	log.Printf("transitionToDay: room=%s night=%d deaths=%d", room.ID, room.NightNumber, len(deaths))
	e.Notify.ToRoom(room.ID, EventDayPhase, DayPayload{
		Key:    KeyDayDeaths,
		Night:  room.NightNumber,
		Deaths: deathViews(room, deaths),
	})
	e.pushSnapshots(room)
}
