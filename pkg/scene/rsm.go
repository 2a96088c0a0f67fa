package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenexport/pkg/formats"
	"github.com/Faultbox/scenexport/pkg/math"
)

// ErrInvalidFace is returned when an RSM face references a vertex or texture
// coordinate the node does not have.
var ErrInvalidFace = errors.New("face references missing vertex data")

// FromRSM adapts a parsed RSM model into one object per node, in file order.
//
// The node position, axis-angle rotation and scale become the object
// transform. Vertices are baked through the node's mesh matrix and offset.
// RSM faces index positions and texture coordinates separately, so corners
// are welded per (vertex, texcoord) pair to give one UV and color per
// control point.
func FromRSM(model *formats.RSM) ([]*Object, error) {
	objects := make([]*Object, 0, len(model.Nodes))
	for i := range model.Nodes {
		node := &model.Nodes[i]
		obj, err := fromRSMNode(node)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", node.Name, err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// LoadRSMFile parses an RSM file and adapts it with FromRSM.
func LoadRSMFile(path string) ([]*Object, error) {
	model, err := formats.ParseRSMFile(path)
	if err != nil {
		return nil, err
	}
	return FromRSM(model)
}

func fromRSMNode(node *formats.RSMNode) (*Object, error) {
	obj := &Object{
		Name: node.Name,
		Transform: Transform{
			Translation: node.Position,
			Rotation:    math.QuatFromAxisAngle(node.RotAxis, node.RotAngle).EulerXYZ(),
			Scale:       node.Scale,
		},
	}
	if len(node.Faces) == 0 {
		return obj, nil
	}

	mesh, err := weldRSMMesh(node)
	if err != nil {
		return nil, err
	}
	obj.Mesh = mesh
	return obj, nil
}

type rsmCorner struct {
	vertex   uint16
	texCoord uint16
}

func weldRSMMesh(node *formats.RSMNode) (*Mesh, error) {
	matrix := node.Matrix
	if matrix.IsZero() {
		matrix = math.Identity3()
	}
	hasTexCoords := len(node.TexCoords) > 0

	mesh := &Mesh{
		Name:    node.Name + "_mesh",
		Indices: make([]int32, 0, len(node.Faces)*3),
	}
	welded := make(map[rsmCorner]int32)

	for fi, face := range node.Faces {
		for k := 0; k < 3; k++ {
			c := rsmCorner{vertex: face.VertexIDs[k]}
			if hasTexCoords {
				c.texCoord = face.TexCoordIDs[k]
			}

			if int(c.vertex) >= len(node.Vertices) {
				return nil, fmt.Errorf("%w: face %d vertex id %d of %d", ErrInvalidFace, fi, c.vertex, len(node.Vertices))
			}
			if hasTexCoords && int(c.texCoord) >= len(node.TexCoords) {
				return nil, fmt.Errorf("%w: face %d texcoord id %d of %d", ErrInvalidFace, fi, c.texCoord, len(node.TexCoords))
			}

			idx, ok := welded[c]
			if !ok {
				idx = int32(len(mesh.Positions))
				welded[c] = idx
				mesh.Positions = append(mesh.Positions, matrix.MulVec3(node.Vertices[c.vertex]).Add(node.Offset))
				if hasTexCoords {
					tc := node.TexCoords[c.texCoord]
					mesh.UVs = append(mesh.UVs, math.Vec2{X: tc.U, Y: tc.V})
					mesh.Colors = append(mesh.Colors, math.RGBA8(tc.Color))
				}
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}
	return mesh, nil
}
