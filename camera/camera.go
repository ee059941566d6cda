// Package camera declares the camera rig the controller drives and a plain
// in-memory implementation of it.
package camera

import "github.com/go-gl/mathgl/mgl64"

// Rig is the camera attached to a character body.
type Rig interface {
	LocalPosition() mgl64.Vec3
	SetLocalPosition(p mgl64.Vec3)
	// Pitch is in degrees; positive looks up.
	Pitch() float64
	SetPitch(deg float64)
	FieldOfView() float64
	SetFieldOfView(deg float64)
}

// Lens is a Rig that only stores its values.
type Lens struct {
	Local mgl64.Vec3
	Tilt  float64
	FOV   float64
}

func NewLens(local mgl64.Vec3, fov float64) *Lens {
	return &Lens{Local: local, FOV: fov}
}

func (l *Lens) LocalPosition() mgl64.Vec3 { return l.Local }
func (l *Lens) SetLocalPosition(p mgl64.Vec3) { l.Local = p }
func (l *Lens) Pitch() float64 { return l.Tilt }
func (l *Lens) SetPitch(deg float64) { l.Tilt = deg }
func (l *Lens) FieldOfView() float64 { return l.FOV }
func (l *Lens) SetFieldOfView(deg float64) { l.FOV = deg }
