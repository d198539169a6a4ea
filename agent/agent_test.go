package agent

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/tmago/duel/adapt"
)

// fakeWorld implements every collaborator interface so tests can script the
// agent's surroundings without physics.
type fakeWorld struct {
	agentX, agentY   float64
	targetX, targetY float64
	hasTarget        bool

	grounded   bool
	blockedPos bool
	blockedNeg bool
	threat     bool

	moves      []move
	velocities [][2]float64

	meleeStrikes int
	projectiles  int
	dashContacts int
	dashLands    bool

	artilleryXs []float64

	events []string
}

type move struct {
	dir, speed float64
}

type fakeTarget struct{ w *fakeWorld }

func (t *fakeTarget) Position() (float64, float64) { return t.w.targetX, t.w.targetY }

func (w *fakeWorld) Position() (float64, float64) { return w.agentX, w.agentY }

func (w *fakeWorld) DistanceTo(t Target) float64 {
	tx, ty := t.Position()
	return math.Hypot(tx-w.agentX, ty-w.agentY)
}

func (w *fakeWorld) IsGrounded() bool { return w.grounded }

func (w *fakeWorld) MoveInDirection(dir, speed float64) {
	w.moves = append(w.moves, move{dir, speed})
}

func (w *fakeWorld) ApplyVelocity(vx, vy float64) {
	w.velocities = append(w.velocities, [2]float64{vx, vy})
}

func (w *fakeWorld) IsBlockedAhead(dir float64) bool {
	if dir > 0 {
		return w.blockedPos
	}
	if dir < 0 {
		return w.blockedNeg
	}
	return false
}

func (w *fakeWorld) MeleeStrike(damage float64) { w.meleeStrikes++ }

func (w *fakeWorld) SpawnProjectile(dir, speed, damage float64) { w.projectiles++ }

func (w *fakeWorld) DashContact(damage, knockback float64) bool {
	w.dashContacts++
	return w.dashLands
}

func (w *fakeWorld) ArtilleryStrike(x, damage float64) {
	w.artilleryXs = append(w.artilleryXs, x)
}

func (w *fakeWorld) FindTarget() (Target, bool) {
	if !w.hasTarget {
		return nil, false
	}
	return &fakeTarget{w}, true
}

func (w *fakeWorld) IncomingThreat() bool { return w.threat }

func (w *fakeWorld) StateEntered(s StateID) { w.events = append(w.events, "enter:"+s.String()) }
func (w *fakeWorld) StateExited(s StateID)  { w.events = append(w.events, "exit:"+s.String()) }
func (w *fakeWorld) SetMoving(moving bool)  {}
func (w *fakeWorld) TriggerAttack()         {}
func (w *fakeWorld) TriggerHurt()           {}
func (w *fakeWorld) TriggerJump()           {}

func (w *fakeWorld) StateChanged(old, new StateID) {
	w.events = append(w.events, fmt.Sprintf("%s->%s", old, new))
}

func (w *fakeWorld) transitions() []string {
	var out []string
	for _, e := range w.events {
		if strings.Contains(e, "->") {
			out = append(out, e)
		}
	}
	return out
}

func newTestAgent(data Data, w *fakeWorld, withArtillery bool) *Agent {
	deps := Deps{
		Mover:   w,
		Combat:  w,
		Locator: w,
		Threat:  w,
		Present: w,
		Sink:    w,
	}
	if withArtillery {
		deps.Artillery = w
	}
	return New(data, deps)
}

const dt = 0.1

func tick(a *Agent, n int) {
	for i := 0; i < n; i++ {
		a.Update(dt)
	}
}

func TestIdleDriftsIntoPatrol(t *testing.T) {
	w := &fakeWorld{grounded: true}
	a := newTestAgent(DefaultData(), w, false)

	if a.State() != StateIdle {
		t.Fatalf("expected initial state idle, got %s", a.State())
	}
	tick(a, 6) // past the 0.5s scan time
	if a.State() != StatePatrol {
		t.Fatalf("expected patrol after idle scan, got %s", a.State())
	}
}

func TestDetectionStartsChase(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 6}
	a := newTestAgent(DefaultData(), w, false)

	a.Update(dt)
	if a.State() != StateChase {
		t.Fatalf("expected chase on detection, got %s", a.State())
	}
}

func TestOutOfDetectionRangeStaysPatrolling(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 50}
	a := newTestAgent(DefaultData(), w, false)

	tick(a, 10)
	if a.State() != StatePatrol {
		t.Fatalf("expected patrol with target out of range, got %s", a.State())
	}
}

func TestAtMostOneTransitionPerTick(t *testing.T) {
	// Target in attack range from the start: idle->chase this tick even
	// though chase itself would immediately pick an attack.
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2}
	a := newTestAgent(DefaultData(), w, false)

	a.Update(dt)
	if got := len(w.transitions()); got != 1 {
		t.Fatalf("expected exactly one transition in one tick, got %d: %v", got, w.transitions())
	}
	if a.State() != StateChase {
		t.Fatalf("expected chase after the first tick, got %s", a.State())
	}
}

func TestExitRunsBeforeEnter(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 6}
	a := newTestAgent(DefaultData(), w, false)

	a.Update(dt)
	want := []string{"exit:idle", "enter:chase", "idle->chase"}
	if len(w.events) < 3 {
		t.Fatalf("expected exit/enter/sink events, got %v", w.events)
	}
	for i, e := range want {
		if w.events[i] != e {
			t.Fatalf("event %d: expected %q, got %q (all: %v)", i, e, w.events[i], w.events)
		}
	}
}

func TestStunPreemptsCurrentState(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 6}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase

	a.OnDamaged()
	a.Update(dt)
	if a.State() != StateStunned {
		t.Fatalf("expected stunned after damage, got %s", a.State())
	}

	// The stun tick performs no other transition.
	last := w.transitions()[len(w.transitions())-1]
	if last != "chase->stunned" {
		t.Fatalf("expected chase->stunned, got %s", last)
	}
}

func TestStunnedRecoversIntoChaseNotAttack(t *testing.T) {
	// In attack range with the attack ready; recovery still repositions.
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2.2}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase
	a.OnDamaged()
	a.Update(dt) // stunned

	tick(a, 9) // past the 0.8s stun
	if a.State() != StateChase {
		t.Fatalf("expected chase after stun recovery, got %s", a.State())
	}
}

func TestAttackChoreographyMeleeInRange(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase
	a.Update(dt) // chase picks attack
	if a.State() != StateAttack {
		t.Fatalf("expected attack in range with cooldown ready, got %s", a.State())
	}

	// Windup is 0.35s; nothing fires before it elapses.
	tick(a, 3)
	if w.meleeStrikes != 0 {
		t.Fatalf("attack fired during windup")
	}
	a.Update(dt) // elapsed 0.4 >= fire delay
	if w.meleeStrikes != 1 {
		t.Fatalf("expected exactly one melee strike, got %d", w.meleeStrikes)
	}

	// Recovery, then back out of the state. The strike stays at one.
	tick(a, 6)
	if a.State() == StateAttack {
		t.Fatalf("expected attack to finish after recovery")
	}
	if w.meleeStrikes != 1 {
		t.Fatalf("strike should fire exactly once, got %d", w.meleeStrikes)
	}
}

func TestAttackFallsBackToProjectileWhenTargetEscapes(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase
	a.Update(dt) // attack
	if a.State() != StateAttack {
		t.Fatalf("expected attack, got %s", a.State())
	}

	// The opponent backpedals out of melee reach during the windup.
	w.targetX = 6
	tick(a, 4)
	if w.meleeStrikes != 0 {
		t.Fatalf("melee should not land out of range")
	}
	if w.projectiles != 1 {
		t.Fatalf("expected one projectile fallback, got %d", w.projectiles)
	}
}

func TestAttackWindupDodgePreempt(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase: threat not set yet
	a.Update(dt) // attack
	if a.State() != StateAttack {
		t.Fatalf("expected attack, got %s", a.State())
	}

	w.threat = true
	a.Update(dt)
	if a.State() != StateDodge {
		t.Fatalf("expected dodge pre-empt during windup, got %s", a.State())
	}
	if w.meleeStrikes != 0 || w.projectiles != 0 {
		t.Fatalf("aborted windup must not fire")
	}
	if len(w.velocities) == 0 || w.velocities[0][1] >= 0 {
		t.Fatalf("dodge should apply an upward impulse, got %v", w.velocities)
	}
}

func TestChaseRetreatsWhenCrowded(t *testing.T) {
	data := DefaultData()
	data.AttackCooldown = 100 // keep the attack out of the picture
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 1}
	a := newTestAgent(data, w, false)
	a.attackTimer = 0

	a.Update(dt) // chase
	a.Update(dt)
	if a.State() != StateRetreat {
		t.Fatalf("expected retreat inside half retreat range, got %s", a.State())
	}

	// Retreat moves away from the target on the following tick.
	a.Update(dt)
	found := false
	for _, m := range w.moves {
		if m.dir == -1 && m.speed > 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected retreat movement away from target, moves: %v", w.moves)
	}
}

func TestRetreatTimeCapWhenCornered(t *testing.T) {
	data := DefaultData()
	data.AttackCooldown = 100
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 1, blockedNeg: true}
	a := newTestAgent(data, w, false)
	a.attackTimer = 0
	a.Update(dt)
	a.Update(dt)
	if a.State() != StateRetreat {
		t.Fatalf("expected retreat, got %s", a.State())
	}

	tick(a, 16) // past the 1.5s cap
	found := false
	for _, tr := range w.transitions() {
		if tr == "retreat->chase" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the time cap to end a cornered retreat, transitions: %v", w.transitions())
	}
}

func TestDashContactLandsAtMostOnce(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 5, dashLands: true}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase
	a.Update(dt) // dash band, cooldown ready
	if a.State() != StateDash {
		t.Fatalf("expected dash at mid range, got %s", a.State())
	}

	tick(a, 3)
	if w.dashContacts != 1 {
		t.Fatalf("dash contact must be attempted until it lands and then stop, got %d calls", w.dashContacts)
	}
}

func TestDashRetriesContactUntilItLands(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 5}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt)
	a.Update(dt)
	if a.State() != StateDash {
		t.Fatalf("expected dash, got %s", a.State())
	}

	tick(a, 3)
	if w.dashContacts != 3 {
		t.Fatalf("missed contact should retry every tick, got %d calls", w.dashContacts)
	}
}

func TestDashDirectionLocked(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 5}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt)
	a.Update(dt) // dash, direction locked at +1
	w.moves = nil

	// The target crosses behind mid-dash; the dash must not turn.
	w.targetX = -5
	tick(a, 2)
	for _, m := range w.moves {
		if m.dir != 1 {
			t.Fatalf("dash direction must stay locked, got move %+v", m)
		}
	}
}

func TestDashEndsEarlyAtWall(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 5}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt)
	a.Update(dt)
	if a.State() != StateDash {
		t.Fatalf("expected dash, got %s", a.State())
	}

	w.blockedPos = true
	a.Update(dt)
	if a.State() == StateDash {
		t.Fatalf("expected wall to end the dash")
	}
}

func TestArtilleryFiresConfiguredStrikeCount(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 10}
	a := newTestAgent(DefaultData(), w, true)
	a.Update(dt) // chase (dist 10 is outside the dash band)
	a.Update(dt)
	if a.State() != StateArtillery {
		t.Fatalf("expected artillery beyond dash range, got %s", a.State())
	}

	tick(a, 30)
	if got := len(w.artilleryXs); got != DefaultData().ArtilleryStrikes {
		t.Fatalf("expected %d strikes, got %d", DefaultData().ArtilleryStrikes, got)
	}
	if a.State() == StateArtillery {
		t.Fatalf("expected artillery to end after its strikes")
	}
	for _, x := range w.artilleryXs {
		if x != 10 {
			t.Fatalf("strikes should target the opponent's x, got %v", w.artilleryXs)
		}
	}
}

func TestArtilleryDurationCeiling(t *testing.T) {
	data := DefaultData()
	data.ArtilleryInterval = 2.0
	data.ArtilleryMaxDuration = 1.0
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 10}
	a := newTestAgent(data, w, true)
	a.Update(dt)
	a.Update(dt)
	if a.State() != StateArtillery {
		t.Fatalf("expected artillery, got %s", a.State())
	}

	tick(a, 12)
	if a.State() == StateArtillery {
		t.Fatalf("expected the duration ceiling to end the barrage")
	}
	if got := len(w.artilleryXs); got >= data.ArtilleryStrikes {
		t.Fatalf("ceiling should cut the barrage short, got %d strikes", got)
	}
}

func TestDodgeRecoversOnLanding(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 6, threat: true}
	a := newTestAgent(DefaultData(), w, false)
	a.Update(dt) // chase
	// Threat range is 3; the target is too far for a dodge, walk closer.
	w.targetX = 2.8
	a.Update(dt)
	if a.State() != StateDodge {
		t.Fatalf("expected dodge under threat in range, got %s", a.State())
	}

	w.grounded = false
	tick(a, 2)
	if a.State() != StateDodge {
		t.Fatalf("dodge should hold while airborne, got %s", a.State())
	}
	w.grounded = true
	a.Update(dt)
	if a.State() == StateDodge {
		t.Fatalf("expected landing to end the dodge")
	}
}

func TestScoreTieBreakPrefersDash(t *testing.T) {
	cases := []struct {
		name string
		s    Scores
		want chaseAction
	}{
		{"all_zero", Scores{}, actionNone},
		{"dash_wins_tie", Scores{Dash: 1, Artillery: 1, Attack: 1}, actionDash},
		{"artillery_beats_attack_tie", Scores{Artillery: 1, Attack: 1}, actionArtillery},
		{"higher_attack_wins", Scores{Dash: 1, Attack: 2}, actionAttack},
		{"negative_scores_ignored", Scores{Dash: -1, Attack: -2}, actionNone},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := selectAction(c.s); got != c.want {
				t.Fatalf("expected action %d, got %d", c.want, got)
			}
		})
	}
}

type dashBiasTuning struct{}

func (dashBiasTuning) Current() adapt.Tuning {
	tn := adapt.DefaultTuning()
	tn.DashPriorityBonus = 2
	return tn
}

func TestDashPriorityBonusOutscoresReadyPeers(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2}
	data := DefaultData()
	data.DashMinRange = 1
	deps := Deps{Mover: w, Combat: w, Artillery: w, Locator: w, Threat: w, Present: w, Sink: w,
		Tuning: dashBiasTuning{}}
	a := New(data, deps)

	a.Update(dt) // chase

	// All three actions are ready; the bonus lifts dash from the 1/1/1 tie.
	s := a.scoreActions(2)
	if s.Dash != 3 || s.Artillery != 1 || s.Attack != 1 {
		t.Fatalf("expected scores 3/1/1, got %+v", s)
	}
	if got := selectAction(s); got != actionDash {
		t.Fatalf("expected dash to win on its bonus, got %d", got)
	}

	a.Update(dt)
	if a.State() != StateDash {
		t.Fatalf("expected the bonus to drive a dash, got %s", a.State())
	}
}

func TestScoreHookOverridesSelection(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 5}
	a := newTestAgent(DefaultData(), w, false)
	a.SetScoreHook(func(s Scores) Scores {
		s.Dash = 0 // scripted veto
		return s
	})

	a.Update(dt) // chase
	a.Update(dt)
	if a.State() == StateDash {
		t.Fatalf("hook zeroed the dash score; dash must not be chosen")
	}
}

type slowAttackTuning struct{}

func (slowAttackTuning) Current() adapt.Tuning {
	tn := adapt.DefaultTuning()
	tn.AttackCooldownMult = 2
	return tn
}

func TestTuningScalesCooldowns(t *testing.T) {
	w := &fakeWorld{grounded: true, hasTarget: true, agentX: 0, targetX: 2}
	deps := Deps{Mover: w, Combat: w, Locator: w, Threat: w, Present: w, Sink: w,
		Tuning: slowAttackTuning{}}
	a := New(DefaultData(), deps)

	a.Update(dt) // chase
	a.Update(dt)
	// Base cooldown is ready, but the doubled effective cooldown is not.
	if a.State() == StateAttack {
		t.Fatalf("doubled attack cooldown should gate the attack")
	}
}
