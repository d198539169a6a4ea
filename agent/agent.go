package agent

import (
	"math"

	"github.com/tmago/duel/adapt"
	"github.com/tmago/duel/common"
)

// StateID identifies one state of the agent's closed state set.
type StateID int

const (
	StateIdle StateID = iota
	StatePatrol
	StateChase
	StateAttack
	StateRetreat
	StateDodge
	StateStunned
	StateDash
	StateArtillery
)

func (s StateID) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateRetreat:
		return "retreat"
	case StateDodge:
		return "dodge"
	case StateStunned:
		return "stunned"
	case StateDash:
		return "dash"
	case StateArtillery:
		return "artillery"
	default:
		return "unknown"
	}
}

// choreography sub-phases for Attack and ArtilleryStrike.
type choreoPhase int

const (
	phaseWindup choreoPhase = iota
	phaseFiring
	phaseRecover
)

// scratch holds all per-state timers and latches. It is zeroed on every
// state entry and meaningless once the state is exited.
type scratch struct {
	elapsed float64

	phase choreoPhase
	fired bool

	strikesFired  int
	intervalTimer float64

	dashDir float64
	dashHit bool

	patrolDir    float64
	patrolPaused bool
	pauseElapsed float64

	airborne bool
}

// Agent is the adaptive opposing combatant. All collaborators are injected
// at construction; missing ones degrade behavior (no target means infinite
// distance and a patrol/idle loop) rather than erroring.
type Agent struct {
	data Data

	mover     Mover
	combat    Combat
	artillery ArtilleryCaster
	locator   Locator
	threat    ThreatSensor
	present   Presentation
	sink      TransitionSink
	tuning    TuningSource
	scoreHook ScoreHook

	target Target

	state StateID
	st    scratch

	// Cooldown accumulators. These persist across states and count time
	// since the action last fired.
	attackTimer    float64
	dodgeTimer     float64
	dashTimer      float64
	artilleryTimer float64

	attacking     bool
	stunRequested bool
}

// Deps bundles the agent's collaborators. Combat, artillery, threat,
// presentation, and sink may be nil.
type Deps struct {
	Mover     Mover
	Combat    Combat
	Artillery ArtilleryCaster
	Locator   Locator
	Threat    ThreatSensor
	Present   Presentation
	Sink      TransitionSink
	Tuning    TuningSource
}

func New(data Data, deps Deps) *Agent {
	a := &Agent{
		data:      data,
		mover:     deps.Mover,
		combat:    deps.Combat,
		artillery: deps.Artillery,
		locator:   deps.Locator,
		threat:    deps.Threat,
		present:   deps.Present,
		sink:      deps.Sink,
		tuning:    deps.Tuning,
		state:     StateIdle,
	}
	// Start cooldowns ready so the agent can act immediately on first
	// contact.
	a.attackTimer = data.AttackCooldown
	a.dodgeTimer = data.DodgeCooldown
	a.dashTimer = data.DashCooldown
	a.artilleryTimer = data.ArtilleryCooldown
	a.enterState(a.state)
	return a
}

func (a *Agent) State() StateID { return a.state }
func (a *Agent) Data() Data     { return a.data }

// Target returns the resolved target, or nil while unresolved.
func (a *Agent) Target() Target { return a.target }

// SetScoreHook installs a score adjustment hook for chase action selection.
func (a *Agent) SetScoreHook(h ScoreHook) { a.scoreHook = h }

// OnDamaged requests a stun. The transition happens at the next tick
// boundary so no tick ever performs more than one transition.
func (a *Agent) OnDamaged() {
	if a == nil {
		return
	}
	a.stunRequested = true
}

// Update advances the agent one tick. dt is the tick duration in seconds.
// At most one state transition happens per call.
func (a *Agent) Update(dt float64) {
	if a == nil {
		return
	}

	a.attackTimer += dt
	a.dodgeTimer += dt
	a.dashTimer += dt
	a.artilleryTimer += dt

	if a.target == nil && a.locator != nil {
		if t, ok := a.locator.FindTarget(); ok {
			a.target = t
		}
	}

	// A stun pre-empts whatever the current state would do this tick.
	if a.stunRequested {
		a.stunRequested = false
		if a.state != StateStunned {
			a.transition(StateStunned)
			return
		}
	}

	a.st.elapsed += dt

	var next StateID
	change := false
	switch a.state {
	case StateIdle:
		next, change = a.updateIdle()
	case StatePatrol:
		next, change = a.updatePatrol(dt)
	case StateChase:
		next, change = a.updateChase()
	case StateAttack:
		next, change = a.updateAttack()
	case StateRetreat:
		next, change = a.updateRetreat()
	case StateDodge:
		next, change = a.updateDodge()
	case StateStunned:
		next, change = a.updateStunned()
	case StateDash:
		next, change = a.updateDash()
	case StateArtillery:
		next, change = a.updateArtillery(dt)
	}
	if change {
		a.transition(next)
	}
}

// transition runs the outgoing state's exit before the incoming state's
// enter, and resets all per-state scratch in between.
func (a *Agent) transition(next StateID) {
	old := a.state
	a.exitState(old)
	if a.present != nil {
		a.present.StateExited(old)
	}
	a.state = next
	a.st = scratch{}
	a.enterState(next)
	if a.present != nil {
		a.present.StateEntered(next)
	}
	if a.sink != nil {
		a.sink.StateChanged(old, next)
	}
}

func (a *Agent) tun() adapt.Tuning {
	if a.tuning == nil {
		return adapt.DefaultTuning()
	}
	return a.tuning.Current()
}

// Effective values: base parameter scaled by the adapted multiplier. The
// tuning source clamps multipliers to the global band, so effective values
// stay within [base*0.5, base*2].
func (a *Agent) effectiveAttackCooldown() float64 {
	return a.data.AttackCooldown * a.tun().AttackCooldownMult
}

func (a *Agent) effectiveDodgeCooldown() float64 {
	return a.data.DodgeCooldown * a.tun().DodgeCooldownMult
}

func (a *Agent) effectiveChaseSpeed() float64 {
	return a.data.ChaseSpeed * a.tun().ChaseSpeedMult
}

func (a *Agent) effectiveRetreatRange() float64 {
	return a.data.RetreatRange * a.tun().RetreatRangeMult
}

func (a *Agent) effectiveRetreatSpeed() float64 {
	return a.data.RetreatSpeed * a.tun().RetreatSpeedMult
}

// distanceToTarget returns +Inf while no target is resolved, which routes
// every detection predicate to false.
func (a *Agent) distanceToTarget() float64 {
	if a.target == nil || a.mover == nil {
		return math.Inf(1)
	}
	return a.mover.DistanceTo(a.target)
}

func (a *Agent) targetDetected() bool {
	return a.distanceToTarget() <= a.data.DetectionRange
}

// directionToTarget is -1 or +1 toward the target's x, defaulting to +1
// when unresolved or aligned.
func (a *Agent) directionToTarget() float64 {
	if a.target == nil || a.mover == nil {
		return 1
	}
	ax, _ := a.mover.Position()
	tx, _ := a.target.Position()
	if d := common.Sign(tx - ax); d != 0 {
		return d
	}
	return 1
}

func (a *Agent) threatened() bool {
	if a.threat == nil || !a.threat.IncomingThreat() {
		return false
	}
	return a.distanceToTarget() <= a.data.ThreatRange
}

func (a *Agent) canAttack() bool {
	return a.attackTimer >= a.effectiveAttackCooldown() && !a.attacking
}

func (a *Agent) canDodge() bool {
	return a.dodgeTimer >= a.effectiveDodgeCooldown()
}

func (a *Agent) canDash(dist float64) bool {
	return a.dashTimer >= a.data.DashCooldown &&
		dist >= a.data.DashMinRange && dist <= a.data.DashMaxRange
}

func (a *Agent) canUseArtillery() bool {
	return a.artillery != nil && a.artilleryTimer >= a.data.ArtilleryCooldown
}

func (a *Agent) stop() {
	if a.mover != nil {
		a.mover.MoveInDirection(0, 0)
	}
	a.setMoving(false)
}

func (a *Agent) setMoving(moving bool) {
	if a.present != nil {
		a.present.SetMoving(moving)
	}
}

// reacquire picks the state to fall back into after a completed action,
// following one shared priority: create space if the opponent is crowding,
// attack if ready and in range, chase if detected, otherwise patrol.
func (a *Agent) reacquire() StateID {
	dist := a.distanceToTarget()
	if !a.targetDetected() {
		return StatePatrol
	}
	if dist < a.effectiveRetreatRange()*0.5 {
		return StateRetreat
	}
	if dist <= a.data.AttackRange && a.canAttack() {
		return StateAttack
	}
	return StateChase
}
