package agent

import "math"

func (a *Agent) enterState(s StateID) {
	switch s {
	case StateIdle:
		a.stop()
	case StatePatrol:
		a.st.patrolDir = a.patrolHomeDirection()
	case StateChase:
		// no setup; chase reads live tuning every tick
	case StateAttack:
		a.enterAttack()
	case StateRetreat:
		a.setMoving(true)
	case StateDodge:
		a.enterDodge()
	case StateStunned:
		a.stop()
		if a.present != nil {
			a.present.TriggerHurt()
		}
	case StateDash:
		a.enterDash()
	case StateArtillery:
		a.enterArtillery()
	}
}

func (a *Agent) exitState(s StateID) {
	switch s {
	case StateAttack:
		// Abandoned choreography must not leave the attacking latch set.
		a.attacking = false
	case StateDash:
		a.st.dashHit = false
		a.stop()
	case StateRetreat, StateChase, StatePatrol:
		a.stop()
	}
}

// Idle: stand still and observe. Chase when the target shows up, otherwise
// drift into patrol after a short scan.
func (a *Agent) updateIdle() (StateID, bool) {
	a.stop()
	if a.targetDetected() {
		return StateChase, true
	}
	if a.st.elapsed >= a.data.IdleScanTime {
		return StatePatrol, true
	}
	return 0, false
}

// patrolHomeDirection heads toward the farther patrol bound so the agent
// sweeps the full beat.
func (a *Agent) patrolHomeDirection() float64 {
	if a.mover == nil {
		return 1
	}
	x, _ := a.mover.Position()
	if math.Abs(a.data.PatrolMaxX-x) >= math.Abs(x-a.data.PatrolMinX) {
		return 1
	}
	return -1
}

// Patrol: walk between the two bounds, pausing briefly at each.
func (a *Agent) updatePatrol(dt float64) (StateID, bool) {
	if a.targetDetected() {
		return StateChase, true
	}

	if a.st.patrolPaused {
		a.stop()
		a.st.pauseElapsed += dt
		if a.st.pauseElapsed >= a.data.PatrolPause {
			a.st.patrolPaused = false
			a.st.pauseElapsed = 0
			a.st.patrolDir = -a.st.patrolDir
		}
		return 0, false
	}

	if a.mover != nil {
		x, _ := a.mover.Position()
		if (a.st.patrolDir > 0 && x >= a.data.PatrolMaxX) ||
			(a.st.patrolDir < 0 && x <= a.data.PatrolMinX) ||
			a.mover.IsBlockedAhead(a.st.patrolDir) {
			a.st.patrolPaused = true
			return 0, false
		}
		a.mover.MoveInDirection(a.st.patrolDir, a.data.PatrolSpeed)
	}
	a.setMoving(true)
	return 0, false
}

// Scores are the chase state's competing action scores.
type Scores struct {
	Dash      float64
	Artillery float64
	Attack    float64
}

type chaseAction int

const (
	actionNone chaseAction = iota
	actionDash
	actionArtillery
	actionAttack
)

// scoreActions computes the special-action scores from cooldown gates and
// the live tuning's priority bonuses, then lets the optional hook adjust
// them.
func (a *Agent) scoreActions(dist float64) Scores {
	tun := a.tun()
	var s Scores
	if a.canDash(dist) {
		s.Dash = 1 + tun.DashPriorityBonus
	}
	if a.canUseArtillery() {
		s.Artillery = 1 + tun.ArtilleryPriorityBonus
	}
	if dist <= a.data.AttackRange && a.canAttack() {
		s.Attack = 1
	}
	if a.scoreHook != nil {
		s = a.scoreHook(s)
	}
	return s
}

// selectAction picks the highest positive score. Equal scores resolve by
// evaluation order: dash, then artillery, then attack. Keep this order; it
// matches long-standing behavior that tests pin down.
func selectAction(s Scores) chaseAction {
	best := actionNone
	bestScore := 0.0
	if s.Dash > bestScore {
		best = actionDash
		bestScore = s.Dash
	}
	if s.Artillery > bestScore {
		best = actionArtillery
		bestScore = s.Artillery
	}
	if s.Attack > bestScore {
		best = actionAttack
		bestScore = s.Attack
	}
	return best
}

// Chase: close toward a stand-off distance and pick special actions by
// score. Exits are evaluated in fixed priority order; the first match wins.
func (a *Agent) updateChase() (StateID, bool) {
	if !a.targetDetected() {
		return StatePatrol, true
	}

	dist := a.distanceToTarget()

	if a.threatened() && a.canDodge() {
		return StateDodge, true
	}

	if dist < a.effectiveRetreatRange()*0.5 {
		return StateRetreat, true
	}

	switch selectAction(a.scoreActions(dist)) {
	case actionDash:
		return StateDash, true
	case actionArtillery:
		return StateArtillery, true
	case actionAttack:
		return StateAttack, true
	}

	// No action ready: hold a stand-off at 80% of attack range.
	standoff := a.data.AttackRange * 0.8
	if a.mover != nil {
		dir := a.directionToTarget()
		if dist > standoff {
			a.mover.MoveInDirection(dir, a.effectiveChaseSpeed())
			a.setMoving(true)
		} else {
			a.stop()
		}
	}
	return 0, false
}

// Retreat: back away until outside the adapted retreat range or until the
// time cap, then re-evaluate.
func (a *Agent) updateRetreat() (StateID, bool) {
	if a.threatened() && a.canDodge() {
		return StateDodge, true
	}

	dist := a.distanceToTarget()
	if dist >= a.effectiveRetreatRange() || a.st.elapsed >= a.data.RetreatMaxTime {
		if !a.targetDetected() {
			return StatePatrol, true
		}
		if dist <= a.data.AttackRange && a.canAttack() {
			return StateAttack, true
		}
		return StateChase, true
	}

	if a.mover != nil {
		away := -a.directionToTarget()
		if a.mover.IsBlockedAhead(away) {
			// Cornered; stand and let the time cap expire.
			a.stop()
		} else {
			a.mover.MoveInDirection(away, a.effectiveRetreatSpeed())
			a.setMoving(true)
		}
	}
	return 0, false
}

func (a *Agent) enterDodge() {
	a.dodgeTimer = 0
	if a.mover != nil {
		a.mover.ApplyVelocity(0, -a.data.DodgeImpulse)
	}
	if a.present != nil {
		a.present.TriggerJump()
	}
}

// Dodge: vertical evasive hop, held until back on the ground or until the
// timeout.
func (a *Agent) updateDodge() (StateID, bool) {
	grounded := a.mover != nil && a.mover.IsGrounded()
	if !grounded {
		a.st.airborne = true
	}
	landed := a.st.airborne && grounded
	if landed || a.st.elapsed >= a.data.DodgeMaxTime {
		dist := a.distanceToTarget()
		if dist <= a.data.AttackRange && a.canAttack() {
			return StateAttack, true
		}
		if a.targetDetected() {
			return StateChase, true
		}
		return StatePatrol, true
	}
	return 0, false
}

// Stunned: forced incapacitation, then a full re-evaluation.
func (a *Agent) updateStunned() (StateID, bool) {
	a.stop()
	if a.st.elapsed >= a.data.StunDuration {
		next := a.reacquire()
		if next == StateAttack {
			// Coming out of a stun the agent repositions before swinging.
			next = StateChase
		}
		return next, true
	}
	return 0, false
}
