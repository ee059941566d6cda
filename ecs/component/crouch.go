package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/common"
)

type CrouchState uint8

const (
	Standing CrouchState = iota
	Crouching
	TransitioningToCrouch
	TransitioningToStand
)

func (s CrouchState) String() string {
	switch s {
	case Standing:
		return "standing"
	case Crouching:
		return "crouching"
	case TransitioningToCrouch:
		return "transitioning_to_crouch"
	case TransitioningToStand:
		return "transitioning_to_stand"
	}
	return "unknown"
}

// CrouchPose is the collider shape for one posture.
type CrouchPose struct {
	Height float64
	Center mgl64.Vec3
}

func LerpPose(a, b CrouchPose, t float64) CrouchPose {
	return CrouchPose{
		Height: common.Lerp(a.Height, b.Height, t),
		Center: common.LerpVec3(a.Center, b.Center, t),
	}
}

// Crouch drives the collider between the standing and crouching poses.
type Crouch struct {
	Standing CrouchPose
	Crouched CrouchPose
	Duration float64
	// OverheadDistance is the upward probe length used before standing up.
	OverheadDistance float64

	State      CrouchState
	Transition Transition[CrouchPose]
	// Held is last tick's crouch input, for edge detection.
	Held bool
}

func NewCrouch(standing, crouched CrouchPose, duration float64) *Crouch {
	return &Crouch{
		Standing:         standing,
		Crouched:         crouched,
		Duration:         duration,
		OverheadDistance: 1,
		Transition:       NewTransition(LerpPose),
	}
}

// IsCrouching reports whether movement should use the crouch speed.
func (c *Crouch) IsCrouching() bool {
	return c != nil && (c.State == Crouching || c.State == TransitioningToStand)
}

func (c *Crouch) Transitioning() bool {
	return c != nil && (c.State == TransitioningToCrouch || c.State == TransitioningToStand)
}

// Pose returns the collider pose for the current state, interpolated while
// transitioning.
func (c *Crouch) Pose() CrouchPose {
	switch {
	case c.Transitioning() && c.Transition.Active:
		return c.Transition.Value()
	case c.State == Crouching:
		return c.Crouched
	default:
		return c.Standing
	}
}

var CrouchComponent = NewComponent[Crouch]()
