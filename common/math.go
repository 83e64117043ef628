package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

func Clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Flatten drops the vertical component.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// AtHeight returns v moved onto the horizontal plane y.
func AtHeight(v mgl64.Vec3, y float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), y, v.Z()}
}

func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

func PlanarDistance(a, b mgl64.Vec3) float64 {
	return Flatten(b.Sub(a)).Len()
}

// Direction returns the unit vector from a to b, or the zero vector when they
// coincide.
func Direction(a, b mgl64.Vec3) mgl64.Vec3 {
	return SafeNormalize(b.Sub(a))
}

func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// AngleBetween returns the unsigned angle in degrees. A zero vector on either
// side yields 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	cos = math.Max(-1, math.Min(1, cos))
	return mgl64.RadToDeg(math.Acos(cos))
}

// Yaw is a rotation of deg degrees about the vertical axis. Positive yaw turns
// +Z towards +X.
func Yaw(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up)
}

// YawOf returns the heading of a rotation in degrees, in (-180, 180].
func YawOf(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	return mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
}

// LookRotation returns the yaw-only rotation that turns +Z onto dir. The
// vertical component of dir is ignored. ok is false for a vertical or zero
// direction.
func LookRotation(dir mgl64.Vec3) (mgl64.Quat, bool) {
	flat := Flatten(dir)
	if flat.Len() == 0 {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatRotate(math.Atan2(flat.X(), flat.Z()), Up), true
}

// QuatAngle is the angle in degrees between two unit rotations. It stays
// accurate for nearly equal rotations.
func QuatAngle(a, b mgl64.Quat) float64 {
	d := a.Conjugate().Mul(b)
	return mgl64.RadToDeg(2 * math.Atan2(d.V.Len(), math.Abs(d.W)))
}

// Slerp interpolates along the shortest arc with t clamped to [0, 1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}
