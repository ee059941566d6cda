package system

import (
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/rs/zerolog"
)

// FootstepSystem counts down the step timer while walking and publishes a
// Footstep event for the surface below the camera.
type FootstepSystem struct {
	log zerolog.Logger
}

func NewFootstepSystem(log zerolog.Logger) *FootstepSystem {
	return &FootstepSystem{log: log}
}

func (s *FootstepSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.FootstepsComponent, func(e ecs.Entity, ch *component.Character, fs *component.Footsteps) {
		if !ch.CanMove || !ch.Modules.Footsteps {
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Collider == nil || !body.Collider.IsGrounded() {
			return
		}
		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok || !in.Moving() {
			return
		}

		fs.Timer -= dt
		if fs.Timer > 0 {
			return
		}

		if body.Scene != nil && body.Camera != nil {
			origin := eye(w, e, body)
			if hit, ok := body.Scene.Raycast(origin, down, fs.ProbeDistance, physics.AllLayers); ok {
				w.Events().Publish(ecs.Event{
					Type: ecs.EventFootstep,
					Data: ecs.Footstep{Character: ch.ID, Surface: s.surface(fs, hit.Tag), Position: hit.Point},
				})
			}
		}

		mult := 1.0
		switch currentGait(w, e, ch, in) {
		case gaitCrouch:
			mult = fs.CrouchMultiplier
		case gaitSprint:
			mult = fs.SprintMultiplier
		}
		fs.Timer = fs.BaseInterval * mult
	})
}

func (s *FootstepSystem) surface(fs *component.Footsteps, tag string) string {
	if len(fs.Surfaces) == 0 {
		return tag
	}
	if name, ok := fs.Surfaces[tag]; ok {
		return name
	}
	s.log.Warn().Str("tag", tag).Msg("no footstep surface matched")
	return tag
}
