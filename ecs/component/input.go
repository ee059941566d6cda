package component

import "github.com/go-gl/mathgl/mgl64"

// Edge is a one-tick signal. Value carries the direction of the change:
// entering zoom for the zoom edge, pressed for the interact edge.
type Edge struct {
	Fired bool
	Value bool
}

// InputSnapshot is the normalized input of one tick. It is written once
// before the systems run and only read by them.
type InputSnapshot struct {
	// Move is local-space, magnitude <= 1; Y is forward.
	Move mgl64.Vec2
	Look mgl64.Vec2

	Jump   bool
	Sprint bool
	Crouch bool

	Zoom     Edge
	Interact Edge
}

// Moving reports whether any movement input is present.
func (in *InputSnapshot) Moving() bool {
	return in != nil && (in.Move.X() != 0 || in.Move.Y() != 0)
}

var InputComponent = NewComponent[InputSnapshot]()
