package component

import "github.com/go-gl/mathgl/mgl64"

// Motion holds locomotion tuning and the velocity carried between ticks.
type Motion struct {
	DefaultSpeed float64
	SprintSpeed  float64
	CrouchSpeed  float64
	SlideSpeed   float64
	JumpForce    float64
	Gravity      float64

	// Velocity is the desired velocity; Y persists across ticks for gravity.
	Velocity mgl64.Vec3
	// Planar is the move input scaled by the current speed.
	Planar       mgl64.Vec2
	Sliding      bool
	GroundNormal mgl64.Vec3
}

var MotionComponent = NewComponent[Motion]()
