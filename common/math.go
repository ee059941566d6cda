package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// AngleFromUp returns the angle in degrees between n and the world up axis.
func AngleFromUp(n mgl64.Vec3) float64 {
	if n.Len() == 0 {
		return 0
	}
	cos := mgl64.Clamp(n.Normalize().Dot(Up), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// Forward returns the horizontal forward axis for a yaw in degrees.
// Yaw 0 faces +Z; positive yaw turns toward +X.
func Forward(yawDeg float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(mgl64.DegToRad(yawDeg)).Mul3x1(mgl64.Vec3{0, 0, 1})
}

// Right returns the horizontal right axis for a yaw in degrees.
func Right(yawDeg float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(mgl64.DegToRad(yawDeg)).Mul3x1(mgl64.Vec3{1, 0, 0})
}

// ViewDir returns the unit view direction for a yaw and a pitch (positive looks up).
func ViewDir(yawDeg, pitchDeg float64) mgl64.Vec3 {
	yaw := mgl64.Rotate3DY(mgl64.DegToRad(yawDeg))
	pitch := mgl64.Rotate3DX(mgl64.DegToRad(-pitchDeg))
	return yaw.Mul3(pitch).Mul3x1(mgl64.Vec3{0, 0, 1})
}

// RotateLocal transforms a body-local offset into world space for a yaw in degrees.
func RotateLocal(local mgl64.Vec3, yawDeg float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(mgl64.DegToRad(yawDeg)).Mul3x1(local)
}
