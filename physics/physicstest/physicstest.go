// Package physicstest provides scriptable collider and scene fakes.
package physicstest

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/physics"
)

// Collider records moves and reports whatever state the test sets.
type Collider struct {
	Pos      mgl64.Vec3
	Grounded bool
	H        float64
	C        mgl64.Vec3
	R        float64
	Slope    float64
	Vel      mgl64.Vec3

	Moves []mgl64.Vec3
}

func NewCollider() *Collider {
	return &Collider{Grounded: true, H: 2, R: 0.5, Slope: 45}
}

func (c *Collider) Position() mgl64.Vec3 { return c.Pos }
func (c *Collider) IsGrounded() bool { return c.Grounded }
func (c *Collider) Height() float64 { return c.H }
func (c *Collider) SetHeight(h float64) { c.H = h }
func (c *Collider) Center() mgl64.Vec3 { return c.C }
func (c *Collider) SetCenter(v mgl64.Vec3) { c.C = v }
func (c *Collider) Radius() float64 { return c.R }
func (c *Collider) SlopeLimit() float64 { return c.Slope }
func (c *Collider) Velocity() mgl64.Vec3 { return c.Vel }

func (c *Collider) Move(motion mgl64.Vec3, dt float64) {
	c.Moves = append(c.Moves, motion)
	c.Pos = c.Pos.Add(motion)
	if dt > 0 {
		c.Vel = motion.Mul(1 / dt)
	}
}

// LastMove returns the most recent motion, or zero.
func (c *Collider) LastMove() mgl64.Vec3 {
	if len(c.Moves) == 0 {
		return mgl64.Vec3{}
	}
	return c.Moves[len(c.Moves)-1]
}

// Scene answers rays by direction: mostly-down rays get Ground, mostly-up
// rays get Ceiling, anything else gets Ahead. Nil means no hit.
type Scene struct {
	Ground  *physics.Hit
	Ceiling *physics.Hit
	Ahead   *physics.Hit

	Targets map[physics.ColliderID]interact.Focusable
	Casts   int
}

func NewScene() *Scene {
	return &Scene{Targets: make(map[physics.ColliderID]interact.Focusable)}
}

func (s *Scene) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask) (physics.Hit, bool) {
	s.Casts++
	var hit *physics.Hit
	switch {
	case dir.Y() < -0.9:
		hit = s.Ground
	case dir.Y() > 0.9:
		hit = s.Ceiling
	default:
		hit = s.Ahead
	}
	if hit == nil || hit.Distance > maxDist || !mask.Contains(hit.Layer) {
		return physics.Hit{}, false
	}
	return *hit, true
}

func (s *Scene) Target(id physics.ColliderID) (interact.Focusable, bool) {
	t, ok := s.Targets[id]
	return t, ok
}

// Flat returns a level ground hit at distance d with the given surface tag.
func Flat(d float64, tag string) *physics.Hit {
	return &physics.Hit{Normal: mgl64.Vec3{0, 1, 0}, Distance: d, Tag: tag, Collider: 1}
}
