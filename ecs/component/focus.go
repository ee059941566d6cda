package component

import (
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/physics"
)

// Focus tracks the interactable object under the crosshair.
type Focus struct {
	Distance float64
	Layer    physics.Layer

	Collider physics.ColliderID
	Target   interact.Focusable
}

func (f *Focus) Focused() bool {
	return f != nil && f.Collider != 0
}

// Clear drops the focused target without notifying it.
func (f *Focus) Clear() {
	f.Collider = 0
	f.Target = nil
}

var FocusComponent = NewComponent[Focus]()
