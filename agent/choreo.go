package agent

// Attack, Dash, and ArtilleryStrike run multi-tick choreography on the tick
// loop itself: elapsed-time accumulators advanced every Update, never a
// separate execution context. A higher-priority transition can abandon the
// choreography at any tick boundary; exitState clears the latches.

func (a *Agent) enterAttack() {
	a.attacking = true
	a.st.phase = phaseWindup
	a.stop()
	if a.present != nil {
		a.present.TriggerAttack()
	}
}

// Attack: windup for fireDelay, execute the hit exactly once, then recover
// until the attacking flag clears. An incoming threat during windup
// pre-empts into Dodge; after the hit fires the swing is committed.
func (a *Agent) updateAttack() (StateID, bool) {
	switch a.st.phase {
	case phaseWindup:
		if a.threatened() && a.canDodge() {
			return StateDodge, true
		}
		if a.st.elapsed >= a.data.FireDelay {
			a.fireAttack()
			a.st.phase = phaseRecover
			a.st.elapsed = 0
		}
	case phaseRecover:
		if a.st.elapsed >= a.data.AttackRecovery {
			a.attacking = false
			return a.reacquire(), true
		}
	}
	return 0, false
}

// fireAttack lands the actual effect: a melee swing in range, a projectile
// otherwise. The cooldown restarts here, not at state entry, so an aborted
// windup doesn't burn it.
func (a *Agent) fireAttack() {
	if a.st.fired {
		return
	}
	a.st.fired = true
	a.attackTimer = 0
	if a.combat == nil {
		return
	}
	if a.distanceToTarget() <= a.data.AttackRange {
		a.combat.MeleeStrike(a.data.AttackDamage)
	} else {
		a.combat.SpawnProjectile(a.directionToTarget(), a.data.ProjectileSpeed, a.data.AttackDamage)
	}
}

func (a *Agent) enterDash() {
	// Direction is locked here and never re-evaluated mid-dash.
	a.st.dashDir = a.directionToTarget()
	a.st.dashHit = false
	a.dashTimer = 0
	if a.present != nil {
		a.present.TriggerAttack()
	}
}

// Dash: drive the locked direction at fixed speed for the dash duration, end
// early at a wall, and land contact damage at most once.
func (a *Agent) updateDash() (StateID, bool) {
	blocked := a.mover != nil && a.mover.IsBlockedAhead(a.st.dashDir)
	if blocked || a.st.elapsed >= a.data.DashDuration {
		return a.reacquire(), true
	}

	if a.mover != nil {
		a.mover.MoveInDirection(a.st.dashDir, a.data.DashSpeed)
	}
	a.setMoving(true)

	if !a.st.dashHit && a.combat != nil {
		if a.combat.DashContact(a.data.DashDamage, a.st.dashDir*a.data.DashKnockback) {
			a.st.dashHit = true
		}
	}
	return 0, false
}

func (a *Agent) enterArtillery() {
	a.artilleryTimer = 0
	a.st.phase = phaseWindup
	a.stop()
	if a.present != nil {
		a.present.TriggerAttack()
	}
}

// ArtilleryStrike: windup, then a fixed number of strikes at a fixed
// interval, bounded by a hard duration ceiling. Strike count and ceiling
// come from base data and are never adapted.
func (a *Agent) updateArtillery(dt float64) (StateID, bool) {
	if a.st.elapsed >= a.data.ArtilleryMaxDuration {
		return a.reacquire(), true
	}

	switch a.st.phase {
	case phaseWindup:
		if a.st.elapsed >= a.data.ArtilleryWindup {
			a.st.phase = phaseFiring
			// First strike lands immediately on phase entry.
			a.st.intervalTimer = a.data.ArtilleryInterval
		}
	case phaseFiring:
		a.st.intervalTimer += dt
		if a.st.intervalTimer >= a.data.ArtilleryInterval {
			a.st.intervalTimer = 0
			a.fireArtilleryStrike()
		}
		if a.st.strikesFired >= a.data.ArtilleryStrikes {
			return a.reacquire(), true
		}
	}
	return 0, false
}

func (a *Agent) fireArtilleryStrike() {
	a.st.strikesFired++
	if a.artillery == nil {
		return
	}
	x := 0.0
	if a.target != nil {
		x, _ = a.target.Position()
	} else if a.mover != nil {
		x, _ = a.mover.Position()
	}
	a.artillery.ArtilleryStrike(x, a.data.ArtilleryDamage)
}
