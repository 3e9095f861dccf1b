package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// AxisX is the world-space unit X axis.
	AxisX = mgl64.Vec3{1, 0, 0}
	// AxisY is the world-space unit Y axis and the canonical orbit up axis.
	AxisY = mgl64.Vec3{0, 1, 0}
	// AxisZ is the world-space unit Z axis.
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// Clamp restricts v to [lo, hi] as max(lo, min(hi, v)).
// When lo > hi the result is lo, and infinite bounds leave v untouched.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: the clamped value
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LookAtRotation computes the world orientation of an object at eye that faces target,
// using the camera convention that the object looks down its local -Z axis with +Y as up.
// The basis matches LookAt in a view matrix: z = normalize(eye - target), x = normalize(up × z), y = z × x.
// When eye and target coincide the forward axis falls back to +Z, and when the view
// direction is parallel to up the forward axis is nudged so the cross product stays defined.
//
// Parameters:
//   - eye: world-space position of the object
//   - target: world-space point to face
//   - up: world-space up direction
//
// Returns:
//   - mgl64.Quat: unit quaternion rotating local axes into world space
func LookAtRotation(eye, target, up mgl64.Vec3) mgl64.Quat {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z = AxisZ
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if math.Abs(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()

	y := z.Cross(x)

	m := mgl64.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}

// ViewMatrix builds the world-to-view transform for an object at position with the given orientation.
// It is the inverse of translate(position) * rotate(orientation).
//
// Parameters:
//   - position: world-space position
//   - orientation: unit quaternion of the object's world rotation
//
// Returns:
//   - mgl64.Mat4: the view matrix (column-major)
func ViewMatrix(position mgl64.Vec3, orientation mgl64.Quat) mgl64.Mat4 {
	t := mgl64.Translate3D(-position.X(), -position.Y(), -position.Z())
	return orientation.Inverse().Mat4().Mul4(t)
}

// LocalAxis returns column i (0 = X, 1 = Y, 2 = Z) of the rotation matrix for orientation,
// i.e. the object's local axis expressed in world space.
//
// Parameters:
//   - orientation: unit quaternion of the object's world rotation
//   - i: axis index in [0, 2]
//
// Returns:
//   - mgl64.Vec3: the world-space direction of the local axis
func LocalAxis(orientation mgl64.Quat, i int) mgl64.Vec3 {
	switch i {
	case 0:
		return orientation.Rotate(AxisX)
	case 1:
		return orientation.Rotate(AxisY)
	default:
		return orientation.Rotate(AxisZ)
	}
}
