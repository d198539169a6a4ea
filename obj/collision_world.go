package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// World units: 1 unit is one arena meter; +Y points down, matching screen
// space. Gravity is positive.
const (
	Gravity = 30.0

	groundProbe = 0.1
	wallProbe   = 0.6
)

const (
	collisionTypeCombatant cp.CollisionType = iota + 1
	collisionTypeSolid
)

// Arena describes the flat dueling ground: a floor at GroundY between the
// two side walls.
type Arena struct {
	MinX    float64
	MaxX    float64
	GroundY float64
}

func DefaultArena() Arena {
	return Arena{MinX: -12, MaxX: 12, GroundY: 0}
}

// CollisionWorld owns the chipmunk space backing the encounter. It exposes
// only capability-style queries (grounded, blocked-ahead, distance); nothing
// outside this package touches the space directly.
type CollisionWorld struct {
	arena Arena
	space *cp.Space
}

func NewCollisionWorld(arena Arena) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: Gravity})

	cw := &CollisionWorld{arena: arena, space: space}
	cw.buildStaticShapes()
	return cw
}

func (cw *CollisionWorld) Arena() Arena { return cw.arena }

func (cw *CollisionWorld) buildStaticShapes() {
	a := cw.arena
	body := cw.space.StaticBody

	ground := cp.NewSegment(body, cp.Vector{X: a.MinX - 2, Y: a.GroundY}, cp.Vector{X: a.MaxX + 2, Y: a.GroundY}, 0)
	ground.SetFriction(0.8)
	ground.SetCollisionType(collisionTypeSolid)
	cw.space.AddShape(ground)

	for _, x := range []float64{a.MinX, a.MaxX} {
		wall := cp.NewSegment(body, cp.Vector{X: x, Y: a.GroundY}, cp.Vector{X: x, Y: a.GroundY - 12}, 0)
		wall.SetFriction(0)
		wall.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(wall)
	}
}

// AttachCombatant adds a dynamic box body for a combatant of the given size
// at (x, y), with rotation locked.
func (cw *CollisionWorld) AttachCombatant(x, y, w, h float64) *cp.Body {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	cw.space.AddBody(body)

	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0.6)
	shape.SetCollisionType(collisionTypeCombatant)
	cw.space.AddShape(shape)
	return body
}

// Step advances the physics simulation.
func (cw *CollisionWorld) Step(dt float64) {
	cw.space.Step(dt)
}

// IsGrounded reports whether the body's feet are on the floor and it is not
// moving vertically.
func (cw *CollisionWorld) IsGrounded(body *cp.Body, halfHeight float64) bool {
	if cw == nil || body == nil {
		return false
	}
	pos := body.Position()
	return pos.Y+halfHeight >= cw.arena.GroundY-groundProbe && math.Abs(body.Velocity().Y) < 0.5
}

// IsBlockedAhead reports whether a wall sits within a short probe distance
// in the given horizontal direction.
func (cw *CollisionWorld) IsBlockedAhead(body *cp.Body, dir, halfWidth float64) bool {
	if cw == nil || body == nil || dir == 0 {
		return false
	}
	x := body.Position().X
	if dir > 0 {
		return x+halfWidth+wallProbe >= cw.arena.MaxX
	}
	return x-halfWidth-wallProbe <= cw.arena.MinX
}
