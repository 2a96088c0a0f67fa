package math

import (
	"math"

	"github.com/chewxy/math32"
)

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is normalized here; a zero axis yields the identity.
// angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	if axis == (Vec3{}) {
		return QuatIdentity()
	}
	s, c := math32.Sincos(angle / 2)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToMat3 converts the quaternion to a rotation matrix.
func (q Quat) ToMat3() Mat3 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw),
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw),
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy),
	}
}

// EulerXYZ returns the rotation as Euler angles in degrees, XYZ order
// (X applied first, then Y, then Z). This is the default rotation order of
// FBX nodes.
func (q Quat) EulerXYZ() Vec3 {
	// Computed in float64; float32 loses about 0.02 degrees near gimbal lock.
	q = q.Normalize()
	x, y, z, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)

	m00 := 1 - 2*(y*y+z*z)
	m10 := 2 * (x*y + z*w)
	m20 := 2 * (x*z - y*w)
	m21 := 2 * (y*z + x*w)
	m22 := 1 - 2*(x*x+y*y)
	m11 := 1 - 2*(x*x+z*z)
	m12 := 2 * (y*z - x*w)

	var rx, ry, rz float64
	sy := math.Max(-1, math.Min(1, -m20))
	if math.Abs(sy) < 0.99999 {
		rx = math.Atan2(m21, m22)
		ry = math.Asin(sy)
		rz = math.Atan2(m10, m00)
	} else {
		// Gimbal lock: fold the Z rotation into X.
		rx = math.Atan2(-m12, m11)
		ry = math.Copysign(math.Pi/2, sy)
		rz = 0
	}

	const toDeg = 180 / math.Pi
	return Vec3{float32(rx * toDeg), float32(ry * toDeg), float32(rz * toDeg)}
}
