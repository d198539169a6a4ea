package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Faction marks who a projectile can hurt.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

const (
	projectileTTL      = 3.0
	artilleryFallSpeed = 14.0
)

// Projectile is a straight-line shot or a falling artillery strike.
type Projectile struct {
	X, Y     float64
	VX, VY   float64
	Damage   float64
	Faction  Faction
	Active   bool
	age      float64
	falling  bool
}

// Projectiles owns every live projectile in the encounter, recycling slots
// in place.
type Projectiles struct {
	world *CollisionWorld
	items []Projectile

	placeholder *ebiten.Image
}

func NewProjectiles(world *CollisionWorld) *Projectiles {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.RGBA{R: 0xff, G: 0xcc, B: 0x33, A: 0xff})
	return &Projectiles{world: world, placeholder: img}
}

// Spawn adds a horizontal shot.
func (ps *Projectiles) Spawn(f Faction, x, y, vx, vy, damage float64) {
	ps.add(Projectile{X: x, Y: y, VX: vx, VY: vy, Damage: damage, Faction: f, Active: true})
}

// SpawnArtillery drops a strike from above the given world x.
func (ps *Projectiles) SpawnArtillery(f Faction, x, damage float64) {
	y := ps.world.Arena().GroundY - 10
	ps.add(Projectile{X: x, Y: y, VY: artilleryFallSpeed, Damage: damage, Faction: f, Active: true, falling: true})
}

func (ps *Projectiles) add(p Projectile) {
	for i := range ps.items {
		if !ps.items[i].Active {
			ps.items[i] = p
			return
		}
	}
	ps.items = append(ps.items, p)
}

// ActiveCount reports the number of live projectiles.
func (ps *Projectiles) ActiveCount() int {
	n := 0
	for i := range ps.items {
		if ps.items[i].Active {
			n++
		}
	}
	return n
}

// Update advances projectiles and applies hits. Enemy-faction projectiles
// hurt the player and vice versa; anything past its TTL, off the arena, or
// into the ground is retired.
func (ps *Projectiles) Update(dt float64, player *Player, enemy *Enemy) {
	arena := ps.world.Arena()
	for i := range ps.items {
		p := &ps.items[i]
		if !p.Active {
			continue
		}
		p.age += dt
		p.X += p.VX * dt
		p.Y += p.VY * dt

		if p.age >= projectileTTL || p.X < arena.MinX-1 || p.X > arena.MaxX+1 || p.Y > arena.GroundY+0.5 {
			p.Active = false
			continue
		}

		switch p.Faction {
		case FactionEnemy:
			if player != nil && player.overlaps(p.X, p.Y, 0.3) {
				if player.Damage(p.Damage, math.Copysign(2, p.VX)) {
					p.Active = false
				}
			}
		case FactionPlayer:
			if enemy != nil && enemy.overlaps(p.X, p.Y, 0.3) {
				if enemy.Damage(p.Damage) {
					p.Active = false
				}
			}
		}
	}
}

func (ps *Projectiles) Draw(screen *ebiten.Image, v View) {
	for i := range ps.items {
		p := &ps.items[i]
		if !p.Active {
			continue
		}
		size := 0.25
		if p.falling {
			size = 0.4
		}
		v.FillRect(screen, ps.placeholder, p.X-size/2, p.Y-size/2, size, size)
	}
}
