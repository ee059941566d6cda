package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

type gait uint8

const (
	gaitWalk gait = iota
	gaitSprint
	gaitCrouch
)

func sprinting(w *ecs.World, e ecs.Entity, ch *component.Character, in *component.InputSnapshot) bool {
	if !ch.Modules.Sprint || in == nil || !in.Sprint {
		return false
	}
	if st, ok := ecs.Get(w, e, component.StaminaComponent); ok && ch.Modules.Stamina {
		return st.CanSprint
	}
	return true
}

func currentGait(w *ecs.World, e ecs.Entity, ch *component.Character, in *component.InputSnapshot) gait {
	if c, ok := ecs.Get(w, e, component.CrouchComponent); ok && ch.Modules.Crouch && c.IsCrouching() {
		return gaitCrouch
	}
	if sprinting(w, e, ch, in) {
		return gaitSprint
	}
	return gaitWalk
}

func yaw(w *ecs.World, e ecs.Entity) float64 {
	if look, ok := ecs.Get(w, e, component.LookComponent); ok {
		return look.Yaw
	}
	return 0
}

// eye returns the world position of the camera.
func eye(w *ecs.World, e ecs.Entity, body *component.Body) mgl64.Vec3 {
	return body.Collider.Position().Add(common.RotateLocal(body.Camera.LocalPosition(), yaw(w, e)))
}

var down = mgl64.Vec3{0, -1, 0}
