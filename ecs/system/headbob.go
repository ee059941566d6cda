package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// bobThreshold is the horizontal speed above which the head bobs.
const bobThreshold = 0.1

type HeadbobSystem struct{}

func NewHeadbobSystem() *HeadbobSystem {
	return &HeadbobSystem{}
}

func (s *HeadbobSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.HeadbobComponent, func(e ecs.Entity, ch *component.Character, hb *component.Headbob) {
		if !ch.CanMove || !ch.Modules.Headbob {
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Camera == nil || body.Collider == nil || !body.Collider.IsGrounded() {
			return
		}
		m, ok := ecs.Get(w, e, component.MotionComponent)
		if !ok {
			return
		}
		in, _ := ecs.Get(w, e, component.InputComponent)

		bob := hb.Walk
		switch currentGait(w, e, ch, in) {
		case gaitCrouch:
			bob = hb.Crouch
		case gaitSprint:
			bob = hb.Sprint
		}

		local := body.Camera.LocalPosition()
		switch {
		case math.Abs(m.Velocity.X()) > bobThreshold || math.Abs(m.Velocity.Z()) > bobThreshold:
			hb.Phase += dt * bob.Speed
			body.Camera.SetLocalPosition(mgl64.Vec3{local.X(), hb.DefaultY + math.Sin(hb.Phase)*bob.Amount, local.Z()})
		case local.Y() != hb.DefaultY:
			hb.Phase += dt * bob.Speed
			body.Camera.SetLocalPosition(mgl64.Vec3{local.X(), hb.DefaultY, local.Z()})
		}
	})
}
