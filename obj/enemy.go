package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/tmago/duel/agent"
)

const (
	enemyWidth  = 0.9
	enemyHeight = 1.9
)

// Enemy is the adaptive agent's body in the arena. It implements the
// agent's capability interfaces (Mover, Combat, ArtilleryCaster, Locator,
// ThreatSensor, Presentation) over the chipmunk body, the opponent, and the
// projectile pool. The decision logic itself lives entirely in the agent
// package.
type Enemy struct {
	body  *cp.Body
	world *CollisionWorld

	health      *Health
	meleeReach  float64
	facing      float64
	moving      bool
	currentAnim string

	opponent    *Player
	projectiles *Projectiles

	// OnHurt is invoked whenever a hit lands, before i-frames restart.
	// The game wires it to the agent's stun request.
	OnHurt func()

	flashTimer float64

	placeholder *ebiten.Image
	flashImg    *ebiten.Image
}

func NewEnemy(x float64, world *CollisionWorld, projectiles *Projectiles, meleeReach float64) *Enemy {
	e := &Enemy{
		world:       world,
		projectiles: projectiles,
		health:      NewHealth(12),
		meleeReach:  meleeReach,
		facing:      -1,
	}
	e.body = world.AttachCombatant(x, world.Arena().GroundY-enemyHeight/2, enemyWidth, enemyHeight)

	e.placeholder = ebiten.NewImage(1, 1)
	e.placeholder.Fill(colornames.Firebrick)
	e.flashImg = ebiten.NewImage(1, 1)
	e.flashImg.Fill(colornames.White)
	return e
}

// SetOpponent resolves the target. Until it is called FindTarget reports
// nothing, which keeps the agent in its patrol/idle loop.
func (e *Enemy) SetOpponent(p *Player) { e.opponent = p }

func (e *Enemy) Health() *Health   { return e.health }
func (e *Enemy) Facing() float64   { return e.facing }
func (e *Enemy) Animation() string { return e.currentAnim }

// Tick advances per-frame bookkeeping that is not decision logic.
func (e *Enemy) Tick(dt float64) {
	e.health.Tick(dt)
	if e.flashTimer > 0 {
		e.flashTimer -= dt
	}
	if e.opponent != nil {
		px, _ := e.opponent.Position()
		ex, _ := e.Position()
		if px != ex {
			e.facing = math.Copysign(1, px-ex)
		}
	}
}

// Damage applies an incoming hit. Reports whether it landed.
func (e *Enemy) Damage(amount float64) bool {
	if e == nil || !e.health.ApplyDamage(amount) {
		return false
	}
	e.flashTimer = 0.2
	if e.OnHurt != nil {
		e.OnHurt()
	}
	return true
}

func (e *Enemy) overlaps(x, y, r float64) bool {
	ex, ey := e.Position()
	return math.Abs(x-ex) <= enemyWidth/2+r && math.Abs(y-ey) <= enemyHeight/2+r
}

// --- agent.Mover ---

func (e *Enemy) Position() (x, y float64) {
	pos := e.body.Position()
	return pos.X, pos.Y
}

func (e *Enemy) DistanceTo(t agent.Target) float64 {
	if t == nil {
		return math.Inf(1)
	}
	ex, ey := e.Position()
	tx, ty := t.Position()
	return math.Hypot(tx-ex, ty-ey)
}

func (e *Enemy) IsGrounded() bool {
	return e.world.IsGrounded(e.body, enemyHeight/2)
}

func (e *Enemy) MoveInDirection(dir, speed float64) {
	v := e.body.Velocity()
	e.body.SetVelocity(dir*speed, v.Y)
}

func (e *Enemy) ApplyVelocity(vx, vy float64) {
	e.body.SetVelocity(vx, vy)
}

func (e *Enemy) IsBlockedAhead(dir float64) bool {
	return e.world.IsBlockedAhead(e.body, dir, enemyWidth/2)
}

// --- agent.Combat ---

func (e *Enemy) MeleeStrike(damage float64) {
	if e.opponent == nil {
		return
	}
	ex, _ := e.Position()
	px, _ := e.opponent.Position()
	if math.Abs(px-ex) <= e.meleeReach {
		e.opponent.Damage(damage, math.Copysign(2, px-ex))
	}
}

func (e *Enemy) SpawnProjectile(dir, speed, damage float64) {
	ex, ey := e.Position()
	e.projectiles.Spawn(FactionEnemy, ex+dir*(enemyWidth/2+0.2), ey-0.2, dir*speed, 0, damage)
}

func (e *Enemy) DashContact(damage, knockback float64) bool {
	if e.opponent == nil {
		return false
	}
	ex, ey := e.Position()
	if !e.opponent.overlaps(ex, ey, 0.3) {
		return false
	}
	return e.opponent.Damage(damage, knockback)
}

// --- agent.ArtilleryCaster ---

func (e *Enemy) ArtilleryStrike(x, damage float64) {
	e.projectiles.SpawnArtillery(FactionEnemy, x, damage)
}

// --- agent.Locator ---

func (e *Enemy) FindTarget() (agent.Target, bool) {
	if e.opponent == nil {
		return nil, false
	}
	return e.opponent, true
}

// --- agent.ThreatSensor ---

func (e *Enemy) IncomingThreat() bool {
	return e.opponent != nil && e.opponent.AttackActive()
}

// --- agent.Presentation ---

func (e *Enemy) StateEntered(s agent.StateID) { e.currentAnim = s.String() }
func (e *Enemy) StateExited(s agent.StateID)  {}
func (e *Enemy) SetMoving(moving bool)        { e.moving = moving }
func (e *Enemy) TriggerAttack()               {}
func (e *Enemy) TriggerHurt()                 { e.flashTimer = 0.2 }
func (e *Enemy) TriggerJump()                 {}

func (e *Enemy) Draw(screen *ebiten.Image, v View) {
	img := e.placeholder
	if e.flashTimer > 0 {
		img = e.flashImg
	}
	ex, ey := e.Position()
	v.FillRect(screen, img, ex-enemyWidth/2, ey-enemyHeight/2, enemyWidth, enemyHeight)
}
