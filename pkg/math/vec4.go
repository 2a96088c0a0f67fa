package math

// Vec4 is a 4-component vector. Vertex colors use it as R, G, B, A.
type Vec4 struct {
	X, Y, Z, W float32
}

// RGBA builds a color vector.
func RGBA(r, g, b, a float32) Vec4 {
	return Vec4{r, g, b, a}
}

// RGBA8 converts 8-bit color channels to the [0,1] range.
func RGBA8(c [4]uint8) Vec4 {
	return Vec4{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
		float32(c[3]) / 255,
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z) && finite(v.W)
}
