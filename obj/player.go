package obj

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/tmago/duel/telemetry"
)

const (
	playerWidth  = 0.8
	playerHeight = 1.8

	playerMoveSpeed  = 4.0
	playerJumpSpeed  = 10.0
	playerMeleeReach = 2.2
	playerShotSpeed  = 10.0

	playerAttackCooldown = 0.35
	playerSwingTime      = 0.25

	blockDamageScale = 0.25
)

// Player is the human-controlled combatant. Every attack it throws and all
// damage it deals or takes is recorded into the telemetry log, which is what
// the agent adapts against.
type Player struct {
	body  *cp.Body
	world *CollisionWorld
	input *Input
	log   *telemetry.Log

	health *Health

	facing        float64
	blocking      bool
	swingTimer    float64
	cooldownTimer float64

	placeholder *ebiten.Image
	blockImg    *ebiten.Image
	swingImg    *ebiten.Image
}

func NewPlayer(x float64, world *CollisionWorld, input *Input, log *telemetry.Log) *Player {
	p := &Player{
		world:  world,
		input:  input,
		log:    log,
		health: NewHealth(10),
		facing: 1,
	}
	p.body = world.AttachCombatant(x, world.Arena().GroundY-playerHeight/2, playerWidth, playerHeight)

	p.placeholder = ebiten.NewImage(1, 1)
	p.placeholder.Fill(colornames.Steelblue)
	p.blockImg = ebiten.NewImage(1, 1)
	p.blockImg.Fill(colornames.Lightsteelblue)
	p.swingImg = ebiten.NewImage(1, 1)
	p.swingImg.Fill(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80})
	return p
}

func (p *Player) Position() (x, y float64) {
	pos := p.body.Position()
	return pos.X, pos.Y
}

func (p *Player) Body() *cp.Body    { return p.body }
func (p *Player) Health() *Health   { return p.health }
func (p *Player) Blocking() bool    { return p.blocking }
func (p *Player) Facing() float64   { return p.facing }

// AttackActive reports whether a swing is currently live. The agent's
// threat sensor reads this for pre-emptive dodges.
func (p *Player) AttackActive() bool { return p.swingTimer > 0 }

func (p *Player) grounded() bool {
	return p.world.IsGrounded(p.body, playerHeight/2)
}

// Update applies input, executes attacks against the enemy, and records
// telemetry events.
func (p *Player) Update(dt float64, now time.Time, enemy *Enemy, projectiles *Projectiles) {
	if p == nil || !p.health.IsAlive() {
		return
	}

	p.health.Tick(dt)
	if p.swingTimer > 0 {
		p.swingTimer -= dt
	}
	p.cooldownTimer += dt

	grounded := p.grounded()
	p.blocking = p.input.BlockHeld && grounded

	v := p.body.Velocity()
	moveX := p.input.MoveX
	if p.blocking {
		moveX = 0
	}
	p.body.SetVelocity(moveX*playerMoveSpeed, v.Y)
	if moveX != 0 {
		p.facing = math.Copysign(1, moveX)
	}

	if p.input.JumpPressed && grounded {
		p.body.SetVelocity(moveX*playerMoveSpeed, -playerJumpSpeed)
	}

	if p.blocking || p.cooldownTimer < playerAttackCooldown {
		return
	}

	switch {
	case p.input.MeleePressed && !grounded:
		p.strike(telemetry.AttackJump, now, enemy, 1.5)
	case p.input.MeleePressed:
		p.strike(telemetry.AttackMelee, now, enemy, 1)
	case p.input.UppercutPressed && grounded:
		p.strike(telemetry.AttackUppercut, now, enemy, 2)
	case p.input.RangedPressed:
		p.cooldownTimer = 0
		p.swingTimer = playerSwingTime
		p.log.RecordAttack(telemetry.AttackRanged, now)
		px, py := p.Position()
		projectiles.Spawn(FactionPlayer, px+p.facing*(playerWidth/2+0.2), py-0.2, p.facing*playerShotSpeed, 0, 1)
	}
}

func (p *Player) strike(kind telemetry.AttackKind, now time.Time, enemy *Enemy, damage float64) {
	p.cooldownTimer = 0
	p.swingTimer = playerSwingTime
	p.log.RecordAttack(kind, now)
	if enemy == nil {
		return
	}
	px, _ := p.Position()
	ex, _ := enemy.Position()
	if math.Abs(ex-px) <= playerMeleeReach && math.Copysign(1, ex-px) == p.facing {
		if enemy.Damage(damage) {
			p.log.RecordDamageDealt(damage)
		}
	}
}

// Damage applies an incoming hit, scaled down while blocking. Reports
// whether the hit landed.
func (p *Player) Damage(amount, knockback float64) bool {
	if p == nil {
		return false
	}
	if p.blocking {
		amount *= blockDamageScale
	}
	if !p.health.ApplyDamage(amount) {
		return false
	}
	p.log.RecordDamageTaken(amount)
	v := p.body.Velocity()
	p.body.SetVelocity(v.X+knockback, v.Y-1)
	return true
}

func (p *Player) overlaps(x, y, r float64) bool {
	px, py := p.Position()
	return math.Abs(x-px) <= playerWidth/2+r && math.Abs(y-py) <= playerHeight/2+r
}

func (p *Player) Draw(screen *ebiten.Image, v View) {
	img := p.placeholder
	if p.blocking {
		img = p.blockImg
	}
	px, py := p.Position()
	v.FillRect(screen, img, px-playerWidth/2, py-playerHeight/2, playerWidth, playerHeight)
	if p.swingTimer > 0 {
		v.FillRect(screen, p.swingImg, px+p.facing*playerWidth/2, py-0.4, p.facing*1.2, 0.3)
	}
}
