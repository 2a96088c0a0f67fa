// Package scene defines the plain scene records the exporter consumes.
//
// Host scene graphs (editors, game clients, model files) are adapted into
// these records once, at the boundary. The exporter never inspects host
// types itself.
package scene

import "github.com/Faultbox/scenexport/pkg/math"

// Transform is an object's local transform.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Vec3 // Euler angles in degrees
	Scale       math.Vec3
}

// IdentityTransform returns a transform with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: math.One}
}

// IsFinite reports whether every component is a finite number.
func (t Transform) IsFinite() bool {
	return t.Translation.IsFinite() && t.Rotation.IsFinite() && t.Scale.IsFinite()
}

// Mesh is triangle geometry in object space.
//
// Normals, Colors and UVs are optional. When present, each holds exactly
// one entry per position.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	Indices   []int32 // three per triangle
	Normals   []math.Vec3
	Colors    []math.Vec4 // RGBA, nominally in [0,1]
	UVs       []math.Vec2
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Object is one transformable scene object.
type Object struct {
	Name      string
	Transform Transform
	Mesh      *Mesh // nil for empty objects
	Children  []*Object
}

// Flatten returns objects followed by their descendants, depth first and in
// child order. An object reachable twice is listed once.
func Flatten(objects []*Object) []*Object {
	var out []*Object
	seen := make(map[*Object]bool)
	var walk func(o *Object)
	walk = func(o *Object) {
		if o != nil && seen[o] {
			return
		}
		out = append(out, o)
		if o == nil {
			return
		}
		seen[o] = true
		for _, child := range o.Children {
			walk(child)
		}
	}
	for _, o := range objects {
		walk(o)
	}
	return out
}

// Select returns the objects whose name is in names, keeping input order.
// An empty names list selects everything.
func Select(objects []*Object, names []string) []*Object {
	if len(names) == 0 {
		return objects
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []*Object
	for _, o := range objects {
		if o != nil && wanted[o.Name] {
			out = append(out, o)
		}
	}
	return out
}
