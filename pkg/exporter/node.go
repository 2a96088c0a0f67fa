package exporter

import (
	"fmt"

	"github.com/Faultbox/scenexport/pkg/document"
	"github.com/Faultbox/scenexport/pkg/scene"
)

// MeshNodeName returns the name of the child node holding obj's mesh.
func MeshNodeName(obj *scene.Object) string {
	if obj.Mesh != nil && obj.Mesh.Name != "" {
		return obj.Mesh.Name
	}
	return obj.Name + "_mesh"
}

// BuildNode converts one object into a document node.
//
// The transform is copied as-is: translation, Euler rotation in degrees and
// scale, with no unit or axis conversion. An object with a mesh gets exactly
// one child node carrying the encoded mesh. Children of obj are not visited.
// Errors are *ObjectError values naming obj.
func (c *Converter) BuildNode(obj *scene.Object) (*document.Node, error) {
	if obj == nil {
		return nil, &ObjectError{Err: fmt.Errorf("%w: nil object", ErrInvalidObject)}
	}
	if !obj.Transform.IsFinite() {
		return nil, &ObjectError{Object: obj.Name, Err: fmt.Errorf("%w: non-finite component", ErrInvalidTransform)}
	}

	node := &document.Node{
		Name: obj.Name,
		Transform: document.Transform{
			Translation: double3(obj.Transform.Translation),
			Rotation:    double3(obj.Transform.Rotation),
			Scale:       double3(obj.Transform.Scale),
		},
	}

	if obj.Mesh == nil {
		return node, nil
	}

	mesh, err := c.EncodeMesh(obj.Mesh)
	if err != nil {
		return nil, &ObjectError{Object: obj.Name, Err: err}
	}
	if mesh.Name == "" {
		mesh.Name = MeshNodeName(obj)
	}

	meshNode := document.NewNode(MeshNodeName(obj))
	meshNode.Mesh = mesh
	node.AddChild(meshNode)

	return node, nil
}
