package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/rs/zerolog"
)

// CrouchSystem advances crouch transitions and starts new ones on the
// rising edge of the crouch input.
type CrouchSystem struct {
	log zerolog.Logger
}

func NewCrouchSystem(log zerolog.Logger) *CrouchSystem {
	return &CrouchSystem{log: log}
}

func (s *CrouchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.CrouchComponent, func(e ecs.Entity, ch *component.Character, c *component.Crouch) {
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Collider == nil {
			return
		}

		if c.Transition.Active {
			pose, done := c.Transition.Advance(dt)
			body.Collider.SetHeight(pose.Height)
			body.Collider.SetCenter(pose.Center)
			if done {
				if c.State == component.TransitioningToCrouch {
					c.State = component.Crouching
				} else {
					c.State = component.Standing
				}
			}
		}

		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		pressed := in.Crouch && !c.Held
		c.Held = in.Crouch
		if !pressed || !ch.CanMove || !ch.Modules.Crouch {
			return
		}
		if c.Transitioning() || !body.Collider.IsGrounded() {
			return
		}

		from := component.CrouchPose{Height: body.Collider.Height(), Center: body.Collider.Center()}
		switch c.State {
		case component.Standing:
			c.State = component.TransitioningToCrouch
			c.Transition.Start(from, c.Crouched, c.Duration)
		case component.Crouching:
			if s.obstructed(w, e, body, c) {
				s.log.Debug().Str("entity", e.String()).Msg("stand up blocked overhead")
				return
			}
			c.State = component.TransitioningToStand
			c.Transition.Start(from, c.Standing, c.Duration)
		}
	})
}

func (s *CrouchSystem) obstructed(w *ecs.World, e ecs.Entity, body *component.Body, c *component.Crouch) bool {
	if body.Scene == nil || body.Camera == nil {
		return false
	}
	_, hit := body.Scene.Raycast(eye(w, e, body), mgl64.Vec3{0, 1, 0}, c.OverheadDistance, physics.AllLayers)
	return hit
}
