package fbx

import (
	"fmt"

	"github.com/Faultbox/scenexport/pkg/document"
)

// geometry builds the Geometry object for m.
func geometry(id int64, m *document.Mesh) (*Node, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	vertices := make([]float64, 0, len(m.ControlPoints)*3)
	for _, p := range m.ControlPoints {
		vertices = append(vertices, p[0], p[1], p[2])
	}

	g := NewNode("Geometry", id, "Geometry::"+m.Name, "Mesh").AddChild(
		NewNode("Vertices", vertices),
		NewNode("PolygonVertexIndex", PolygonVertexIndex(m.Polygons)),
		NewNode("GeometryVersion", 124),
	)

	layer := NewNode("Layer", 0).AddChild(NewNode("Version", 100))

	if l := m.Normals; l != nil {
		values := make([]float64, 0, len(l.Normals)*3)
		for _, n := range l.Normals {
			values = append(values, n[0], n[1], n[2])
		}
		elem, err := layerElement("LayerElementNormal", 101, l.LayerInfo, NewNode("Normals", values))
		if err != nil {
			return nil, err
		}
		g.AddChild(elem)
		layer.AddChild(layerRef("LayerElementNormal"))
	}

	if l := m.Colors; l != nil {
		values := make([]float64, 0, len(l.Colors)*4)
		for _, c := range l.Colors {
			values = append(values, c[0], c[1], c[2], c[3])
		}
		elem, err := layerElement("LayerElementColor", 101, l.LayerInfo, NewNode("Colors", values))
		if err != nil {
			return nil, err
		}
		g.AddChild(elem)
		layer.AddChild(layerRef("LayerElementColor"))
	}

	if l := m.UVs; l != nil {
		values := make([]float64, 0, len(l.UVs)*2)
		for _, uv := range l.UVs {
			values = append(values, uv[0], uv[1])
		}
		elem, err := layerElement("LayerElementUV", 101, l.LayerInfo, NewNode("UV", values))
		if err != nil {
			return nil, err
		}
		g.AddChild(elem)
		layer.AddChild(layerRef("LayerElementUV"))
	}

	if len(layer.Children) > 1 {
		g.AddChild(layer)
	}
	return g, nil
}

// PolygonVertexIndex flattens polygons into FBX form, where the last corner
// of each polygon is stored as its bitwise complement.
func PolygonVertexIndex(polygons []document.Polygon) []int32 {
	n := 0
	for _, p := range polygons {
		n += len(p)
	}
	out := make([]int32, 0, n)
	for _, p := range polygons {
		for i, idx := range p {
			if i == len(p)-1 {
				idx = ^idx
			}
			out = append(out, idx)
		}
	}
	return out
}

func layerElement(name string, version int, info document.LayerInfo, data *Node) (*Node, error) {
	mapping, err := mappingName(info.Mapping)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", name, info.Name, err)
	}
	if info.Reference != document.Direct {
		return nil, fmt.Errorf("%w: %s %q uses %s reference", ErrUnsupportedLayer, name, info.Name, info.Reference)
	}

	return NewNode(name, 0).AddChild(
		NewNode("Version", version),
		NewNode("Name", info.Name),
		NewNode("MappingInformationType", mapping),
		NewNode("ReferenceInformationType", "Direct"),
		data,
	), nil
}

func mappingName(m document.MappingMode) (string, error) {
	switch m {
	case document.ByControlPoint:
		return "ByVertice", nil
	case document.ByPolygonVertex:
		return "ByPolygonVertex", nil
	default:
		return "", fmt.Errorf("%w: mapping %s", ErrUnsupportedLayer, m)
	}
}

func layerRef(typ string) *Node {
	return NewNode("LayerElement").AddChild(
		NewNode("Type", typ),
		NewNode("TypedIndex", 0),
	)
}
