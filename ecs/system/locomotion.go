package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/physics"
)

const slopeProbeDistance = 2.0

// LocomotionSystem sets the horizontal velocity from move input, probes the
// ground for sliding and applies jumps. Vertical velocity is carried over.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CharacterComponent, component.MotionComponent, func(e ecs.Entity, ch *component.Character, m *component.Motion) {
		if !ch.CanMove {
			return
		}
		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Collider == nil {
			return
		}

		speed := m.DefaultSpeed
		switch currentGait(w, e, ch, in) {
		case gaitCrouch:
			speed = m.CrouchSpeed
		case gaitSprint:
			speed = m.SprintSpeed
		}
		m.Planar = in.Move.Mul(speed)

		y := yaw(w, e)
		h := common.Right(y).Mul(m.Planar.X()).Add(common.Forward(y).Mul(m.Planar.Y()))
		m.Velocity = mgl64.Vec3{h.X(), m.Velocity.Y(), h.Z()}

		m.Sliding, m.GroundNormal = probeSlope(body)

		if ch.Modules.Jump && in.Jump && body.Collider.IsGrounded() && !m.Sliding {
			m.Velocity[1] = m.JumpForce
		}
	})
}

// probeSlope reports whether the ground below is steeper than the collider
// can stand on, along with its normal.
func probeSlope(body *component.Body) (bool, mgl64.Vec3) {
	if !body.Collider.IsGrounded() || body.Scene == nil {
		return false, mgl64.Vec3{}
	}
	hit, ok := body.Scene.Raycast(body.Collider.Position(), down, slopeProbeDistance, physics.AllLayers)
	if !ok {
		return false, mgl64.Vec3{}
	}
	return common.AngleFromUp(hit.Normal) > body.Collider.SlopeLimit(), hit.Normal
}
