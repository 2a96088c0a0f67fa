package document

import (
	"errors"
	"fmt"
)

// ErrInvalidMesh is returned by Mesh.Validate.
var ErrInvalidMesh = errors.New("invalid mesh")

// MappingMode says what each layer entry is attached to.
type MappingMode int

const (
	// ByControlPoint maps entry i to control point i.
	ByControlPoint MappingMode = iota
	// ByPolygonVertex maps one entry to each polygon corner.
	ByPolygonVertex
)

// String returns the mode name.
func (m MappingMode) String() string {
	switch m {
	case ByControlPoint:
		return "ByControlPoint"
	case ByPolygonVertex:
		return "ByPolygonVertex"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// MarshalYAML writes the mode by name.
func (m MappingMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// ReferenceMode says how layer entries are looked up.
type ReferenceMode int

const (
	// Direct reads the layer array positionally.
	Direct ReferenceMode = iota
	// IndexToDirect reads through a separate index array.
	IndexToDirect
)

// String returns the mode name.
func (r ReferenceMode) String() string {
	switch r {
	case Direct:
		return "Direct"
	case IndexToDirect:
		return "IndexToDirect"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// MarshalYAML writes the mode by name.
func (r ReferenceMode) MarshalYAML() (any, error) {
	return r.String(), nil
}

// LayerInfo is the header every attribute layer carries.
type LayerInfo struct {
	Name      string        `yaml:"name"`
	Mapping   MappingMode   `yaml:"mapping"`
	Reference ReferenceMode `yaml:"reference"`
}

// NormalLayer holds one normal per control point.
type NormalLayer struct {
	LayerInfo `yaml:",inline"`
	Normals   []Double3 `yaml:"normals,flow"`
}

// ColorLayer holds one RGBA color per control point.
type ColorLayer struct {
	LayerInfo `yaml:",inline"`
	Colors    []Double4 `yaml:"colors,flow"`
}

// UVLayer holds one texture coordinate per control point.
type UVLayer struct {
	LayerInfo `yaml:",inline"`
	UVs       []Double2 `yaml:"uvs,flow"`
}

// Polygon is an ordered list of control point indices.
type Polygon []int32

// Mesh is encoded geometry attached to a node.
type Mesh struct {
	Name          string       `yaml:"name"`
	ControlPoints []Double3    `yaml:"control_points,flow"`
	Polygons      []Polygon    `yaml:"polygons,flow"`
	Normals       *NormalLayer `yaml:"normals,omitempty"`
	Colors        *ColorLayer  `yaml:"colors,omitempty"`
	UVs           *UVLayer     `yaml:"uvs,omitempty"`
}

// Layer is the common view of an attribute layer.
type Layer interface {
	Info() LayerInfo
	Len() int
}

// Info returns the layer header.
func (l *LayerInfo) Info() LayerInfo { return *l }

// Len returns the number of normals.
func (l *NormalLayer) Len() int { return len(l.Normals) }

// Len returns the number of colors.
func (l *ColorLayer) Len() int { return len(l.Colors) }

// Len returns the number of texture coordinates.
func (l *UVLayer) Len() int { return len(l.UVs) }

// Layers returns the mesh's present layers in normal, color, UV order.
func (m *Mesh) Layers() []Layer {
	var layers []Layer
	if m.Normals != nil {
		layers = append(layers, m.Normals)
	}
	if m.Colors != nil {
		layers = append(layers, m.Colors)
	}
	if m.UVs != nil {
		layers = append(layers, m.UVs)
	}
	return layers
}

// PolygonVertexCount returns the total number of polygon corners.
func (m *Mesh) PolygonVertexCount() int {
	n := 0
	for _, p := range m.Polygons {
		n += len(p)
	}
	return n
}

// Validate checks that polygons reference existing control points and that
// every per-control-point layer has one entry per control point.
func (m *Mesh) Validate() error {
	count := len(m.ControlPoints)
	for i, p := range m.Polygons {
		if len(p) < 3 {
			return fmt.Errorf("%w: polygon %d has %d corners", ErrInvalidMesh, i, len(p))
		}
		for _, idx := range p {
			if idx < 0 || int(idx) >= count {
				return fmt.Errorf("%w: polygon %d references control point %d of %d", ErrInvalidMesh, i, idx, count)
			}
		}
	}
	for _, l := range m.Layers() {
		info := l.Info()
		if info.Mapping == ByControlPoint && info.Reference == Direct && l.Len() != count {
			return fmt.Errorf("%w: layer %q has %d entries for %d control points", ErrInvalidMesh, info.Name, l.Len(), count)
		}
	}
	return nil
}
