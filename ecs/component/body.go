package component

import (
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/physics"
)

// Body links a character to its external collaborators.
type Body struct {
	Collider physics.Collider
	Scene    physics.SceneQuery
	// Targets may be nil; focus then never resolves a target.
	Targets physics.TargetResolver
	Camera  camera.Rig
}

var BodyComponent = NewComponent[Body]()
