package component

import "github.com/google/uuid"

// Modules switches whole features of a character on or off.
type Modules struct {
	Sprint     bool `yaml:"sprint"`
	Jump       bool `yaml:"jump"`
	Crouch     bool `yaml:"crouch"`
	Headbob    bool `yaml:"headbob"`
	SlopeSlide bool `yaml:"slope_slide"`
	Zoom       bool `yaml:"zoom"`
	Interact   bool `yaml:"interact"`
	Footsteps  bool `yaml:"footsteps"`
	Health     bool `yaml:"health"`
	Stamina    bool `yaml:"stamina"`
}

// AllModules enables every feature.
func AllModules() Modules {
	return Modules{
		Sprint:     true,
		Jump:       true,
		Crouch:     true,
		Headbob:    true,
		SlopeSlide: true,
		Zoom:       true,
		Interact:   true,
		Footsteps:  true,
		Health:     true,
		Stamina:    true,
	}
}

// Character marks the controlled entity.
type Character struct {
	ID      uuid.UUID
	Modules Modules
	// CanMove gates every input-driven system. Running transitions and
	// regeneration keep advancing while it is false.
	CanMove bool
}

var CharacterComponent = NewComponent[Character]()
