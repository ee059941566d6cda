package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/physics"
)

// InteractionSystem tracks the interactable under the crosshair and
// forwards interact presses to it.
type InteractionSystem struct{}

func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CharacterComponent, component.FocusComponent, func(e ecs.Entity, ch *component.Character, f *component.Focus) {
		if !ch.Modules.Interact {
			s.drop(f)
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Scene == nil || body.Camera == nil || body.Collider == nil {
			return
		}

		origin := eye(w, e, body)
		dir := common.ViewDir(yaw(w, e), body.Camera.Pitch())

		if ch.CanMove {
			s.refocus(body, f, origin, dir)
		}

		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok || !in.Interact.Fired || !in.Interact.Value || f.Target == nil {
			return
		}
		if _, hit := body.Scene.Raycast(origin, dir, f.Distance, f.Layer.Mask()); hit {
			f.Target.OnInteract()
		}
	})
}

func (s *InteractionSystem) refocus(body *component.Body, f *component.Focus, origin, dir mgl64.Vec3) {
	hit, ok := body.Scene.Raycast(origin, dir, f.Distance, physics.AllLayers)
	if !ok {
		s.drop(f)
		return
	}
	if hit.Layer != f.Layer || hit.Collider == f.Collider {
		return
	}

	s.drop(f)
	if body.Targets == nil {
		return
	}
	target, ok := body.Targets.Target(hit.Collider)
	if !ok || target == nil {
		return
	}
	f.Collider = hit.Collider
	f.Target = target
	target.OnFocus()
}

// drop releases the current focus, if any.
func (s *InteractionSystem) drop(f *component.Focus) {
	if f.Target != nil {
		f.Target.OnLoseFocus()
	}
	f.Clear()
}
