// Package physics declares the collider and scene-query capabilities the
// controller drives. Backends live in subpackages.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/interact"
)

// ColliderID identifies a collider within one backend. Zero means none.
type ColliderID uint64

// Layer is a collision layer index in [0, 63].
type Layer uint8

// LayerMask selects a set of layers.
type LayerMask uint64

const AllLayers LayerMask = ^LayerMask(0)

// Mask returns a mask with only l set.
func (l Layer) Mask() LayerMask {
	return LayerMask(1) << (l & 63)
}

// Contains reports whether l is selected by m.
func (m LayerMask) Contains(l Layer) bool {
	return m&l.Mask() != 0
}

// Hit describes the first surface a ray reached.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider ColliderID
	Layer    Layer
	Tag      string
}

// SceneQuery casts rays against the scene.
type SceneQuery interface {
	// Raycast returns the closest hit within maxDist on a layer in mask.
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (Hit, bool)
}

// TargetResolver maps colliders to the focusable objects attached to them.
type TargetResolver interface {
	Target(id ColliderID) (interact.Focusable, bool)
}

// Collider is a capsule character collider.
type Collider interface {
	Position() mgl64.Vec3
	IsGrounded() bool
	Height() float64
	SetHeight(h float64)
	Center() mgl64.Vec3
	SetCenter(c mgl64.Vec3)
	Radius() float64
	// SlopeLimit is the steepest walkable slope in degrees.
	SlopeLimit() float64
	// Velocity is the displacement of the last move divided by its delta time.
	Velocity() mgl64.Vec3
	// Move sweeps the capsule by motion; blocked motion is absorbed.
	Move(motion mgl64.Vec3, dt float64)
}
