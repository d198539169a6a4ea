package agent

import "github.com/tmago/duel/adapt"

// Target is a handle to the opposing combatant, resolved lazily by the
// Locator.
type Target interface {
	Position() (x, y float64)
}

// Locator resolves the opposing combatant. It is polled every tick until a
// target is found, which handles targets that spawn after the agent.
type Locator interface {
	FindTarget() (Target, bool)
}

// Mover is the spatial/physics capability surface. The agent never
// integrates physics itself; it only issues these calls.
type Mover interface {
	Position() (x, y float64)
	DistanceTo(t Target) float64
	IsGrounded() bool
	// MoveInDirection sets horizontal velocity toward dir (-1, 0, +1) at the
	// given speed, preserving vertical velocity.
	MoveInDirection(dir, speed float64)
	// ApplyVelocity sets the body's velocity outright.
	ApplyVelocity(vx, vy float64)
	IsBlockedAhead(dir float64) bool
}

// Combat executes the agent's attacks against the world.
type Combat interface {
	// MeleeStrike swings at the current facing. Fire-and-forget.
	MeleeStrike(damage float64)
	// SpawnProjectile fires a projectile toward dir at the given speed.
	SpawnProjectile(dir, speed, damage float64)
	// DashContact applies dash contact damage if the agent currently
	// overlaps the target, reporting whether a hit landed.
	DashContact(damage, knockback float64) bool
}

// ArtilleryCaster is the optional artillery collaborator. When absent the
// artillery strike action never scores.
type ArtilleryCaster interface {
	// ArtilleryStrike drops one strike at the given world x.
	ArtilleryStrike(x, damage float64)
}

// ThreatSensor reports whether an attack is incoming right now. Used for
// pre-emptive dodges.
type ThreatSensor interface {
	IncomingThreat() bool
}

// Presentation receives fire-and-forget animation/audio triggers. Nothing is
// ever read back from it.
type Presentation interface {
	StateEntered(s StateID)
	StateExited(s StateID)
	SetMoving(moving bool)
	TriggerAttack()
	TriggerHurt()
	TriggerJump()
}

// TransitionSink receives FSM transition events for debugging.
type TransitionSink interface {
	StateChanged(old, new StateID)
}

// TuningSource supplies the live adapted tuning each tick.
// *adapt.Controller satisfies it.
type TuningSource interface {
	Current() adapt.Tuning
}

// ScoreHook optionally adjusts the chase action scores before selection.
// Wired from a user script; nil means no adjustment.
type ScoreHook func(s Scores) Scores
