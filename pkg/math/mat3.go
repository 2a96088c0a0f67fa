package math

// Mat3 is a 3x3 matrix in column-major order, the layout RSM nodes store
// their mesh transform in.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 [9]float32

// Identity3 returns an identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// MulVec3 transforms v by this matrix.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// IsZero reports whether every element is zero. Some exporters leave the
// matrix unset, which callers treat as identity.
func (m Mat3) IsZero() bool {
	return m == Mat3{}
}
