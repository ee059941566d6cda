package system

import (
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// ZoomSystem animates the camera field of view on zoom edges. A new edge
// restarts the animation from the current field of view.
type ZoomSystem struct{}

func NewZoomSystem() *ZoomSystem {
	return &ZoomSystem{}
}

func (s *ZoomSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent, component.ZoomComponent, func(e ecs.Entity, ch *component.Character, z *component.Zoom) {
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Camera == nil {
			return
		}

		if in, ok := ecs.Get(w, e, component.InputComponent); ok && in.Zoom.Fired && ch.Modules.Zoom {
			z.Transition.Cancel()
			z.Entering = in.Zoom.Value
			z.State = component.ZoomTransitioning
			z.Transition.Start(body.Camera.FieldOfView(), z.Target(), z.Duration)
			return
		}

		if !z.Transition.Active {
			return
		}
		fov, done := z.Transition.Advance(dt)
		body.Camera.SetFieldOfView(fov)
		if !done {
			return
		}
		if z.Entering {
			z.State = component.ZoomZoomed
		} else {
			z.State = component.ZoomDefault
		}
	})
}
