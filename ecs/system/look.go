package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// LookSystem turns look input into camera pitch and body yaw.
type LookSystem struct{}

func NewLookSystem() *LookSystem {
	return &LookSystem{}
}

func (s *LookSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CharacterComponent, component.LookComponent, func(e ecs.Entity, ch *component.Character, look *component.Look) {
		if !ch.CanMove {
			return
		}
		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.Camera == nil {
			return
		}

		look.Pitch = mgl64.Clamp(look.Pitch+in.Look.Y()*look.VerticalSpeed, -look.LowerLimit, look.UpperLimit)
		look.Yaw = math.Mod(look.Yaw+in.Look.X()*look.HorizontalSpeed, 360)
		body.Camera.SetPitch(look.Pitch)
	})
}
