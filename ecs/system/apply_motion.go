package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// landingVelocity is the collider fall speed below which a grounded
// character drops its accumulated vertical velocity.
const landingVelocity = -1.0

// ApplyMotionSystem integrates gravity and slope sliding, then performs the
// tick's single collider move. It runs last.
type ApplyMotionSystem struct{}

func NewApplyMotionSystem() *ApplyMotionSystem {
	return &ApplyMotionSystem{}
}

func (s *ApplyMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.MotionComponent, func(e ecs.Entity, ch *component.Character, m *component.Motion) {
		if !ch.CanMove {
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Collider == nil {
			return
		}
		col := body.Collider

		grounded := col.IsGrounded()
		if !grounded {
			m.Velocity[1] -= m.Gravity * dt
		}
		if grounded && col.Velocity().Y() < landingVelocity {
			m.Velocity[1] = 0
		}
		if ch.Modules.SlopeSlide && m.Sliding {
			n := m.GroundNormal
			m.Velocity = m.Velocity.Add(mgl64.Vec3{n.X(), -n.Y(), n.Z()}.Mul(m.SlideSpeed))
		}

		col.Move(m.Velocity.Mul(dt), dt)
	})
}
