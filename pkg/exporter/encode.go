// Package exporter converts scene objects into a document and hands it to a
// writer.
//
// Conversion is synchronous and pure: the same input always produces an
// equal document, and nothing is cached between calls.
package exporter

import (
	"fmt"

	"github.com/Faultbox/scenexport/pkg/document"
	"github.com/Faultbox/scenexport/pkg/math"
	"github.com/Faultbox/scenexport/pkg/scene"
)

// DefaultScaleFactor converts scene meters to document centimeters.
const DefaultScaleFactor = 100.0

// Layer names written on encoded meshes.
const (
	NormalLayerName = "Normals"
	ColorLayerName  = "Colors"
	UVLayerName     = "UVs"
)

// Options configures conversion.
type Options struct {
	// ScaleFactor multiplies every control point. Zero means
	// DefaultScaleFactor.
	ScaleFactor float64
}

// Converter turns scene records into document nodes.
type Converter struct {
	scale float64
}

// NewConverter creates a Converter.
func NewConverter(opts Options) *Converter {
	scale := opts.ScaleFactor
	if scale == 0 {
		scale = DefaultScaleFactor
	}
	return &Converter{scale: scale}
}

// ScaleFactor returns the factor applied to control points.
func (c *Converter) ScaleFactor() float64 {
	return c.scale
}

// EncodeMesh encodes m into a document mesh.
//
// Control points are the positions times the scale factor, one per input
// vertex and in input order. Each index triple becomes one polygon with its
// winding unchanged. Normals, colors and UVs are copied verbatim into
// per-control-point, direct layers; an empty attribute array gets no layer.
func (c *Converter) EncodeMesh(m *scene.Mesh) (*document.Mesh, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil mesh", ErrInvalidGeometry)
	}
	if err := validateMesh(m); err != nil {
		return nil, err
	}

	out := &document.Mesh{
		Name:          m.Name,
		ControlPoints: make([]document.Double3, len(m.Positions)),
		Polygons:      make([]document.Polygon, len(m.Indices)/3),
	}

	for i, p := range m.Positions {
		out.ControlPoints[i] = document.Double3{
			float64(p.X) * c.scale,
			float64(p.Y) * c.scale,
			float64(p.Z) * c.scale,
		}
	}

	for i := range out.Polygons {
		out.Polygons[i] = document.Polygon{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
	}

	if len(m.Normals) > 0 {
		out.Normals = &document.NormalLayer{
			LayerInfo: layerInfo(NormalLayerName),
			Normals:   make([]document.Double3, len(m.Normals)),
		}
		for i, n := range m.Normals {
			out.Normals.Normals[i] = double3(n)
		}
	}

	if len(m.Colors) > 0 {
		out.Colors = &document.ColorLayer{
			LayerInfo: layerInfo(ColorLayerName),
			Colors:    make([]document.Double4, len(m.Colors)),
		}
		for i, col := range m.Colors {
			out.Colors.Colors[i] = document.Double4{float64(col.X), float64(col.Y), float64(col.Z), float64(col.W)}
		}
	}

	if len(m.UVs) > 0 {
		out.UVs = &document.UVLayer{
			LayerInfo: layerInfo(UVLayerName),
			UVs:       make([]document.Double2, len(m.UVs)),
		}
		for i, uv := range m.UVs {
			out.UVs.UVs[i] = document.Double2{float64(uv.X), float64(uv.Y)}
		}
	}

	return out, nil
}

func validateMesh(m *scene.Mesh) error {
	n := len(m.Positions)

	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidGeometry, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range for %d vertices", ErrInvalidGeometry, idx, i, n)
		}
	}

	attrs := []struct {
		name string
		len  int
	}{
		{"normals", len(m.Normals)},
		{"colors", len(m.Colors)},
		{"uvs", len(m.UVs)},
	}
	for _, a := range attrs {
		if a.len > 0 && a.len != n {
			return fmt.Errorf("%w: %d %s for %d vertices", ErrAttributeLengthMismatch, a.len, a.name, n)
		}
	}
	return nil
}

func layerInfo(name string) document.LayerInfo {
	return document.LayerInfo{
		Name:      name,
		Mapping:   document.ByControlPoint,
		Reference: document.Direct,
	}
}

func double3(v math.Vec3) document.Double3 {
	return document.Double3{float64(v.X), float64(v.Y), float64(v.Z)}
}
