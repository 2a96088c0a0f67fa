package fbx

import (
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/scenexport/pkg/document"
)

// ErrUnsupportedLayer is returned for layers the writer cannot express.
var ErrUnsupportedLayer = errors.New("unsupported layer")

// DefaultCreator is written when neither the document nor the Format name
// a creator.
const DefaultCreator = "scenexport"

const (
	fbxVersion = 7400
	firstID    = int64(1000000)
)

// Format encodes documents as ASCII FBX.
type Format struct {
	Creator string
}

// Name returns the format name.
func (Format) Name() string { return "fbx" }

// Extension returns the conventional file extension.
func (Format) Extension() string { return ".fbx" }

// Encode writes doc to w.
func (f Format) Encode(w io.Writer, doc *document.Document) error {
	nodes, err := f.Build(doc)
	if err != nil {
		return err
	}

	for _, line := range []string{" FBX 7.4.0 project file", " ----------------------------------------------------"} {
		if err := Comment(w, 0, line); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := n.Dump(w, 0); err != nil {
			return err
		}
	}
	return nil
}

// Build returns the top-level nodes of the FBX file for doc.
//
// Every document node below the root becomes a Model and every mesh a
// Geometry. Object IDs are assigned in depth-first order, so the same
// document always yields the same file.
func (f Format) Build(doc *document.Document) ([]*Node, error) {
	creator := doc.Creator
	if creator == "" {
		creator = f.Creator
	}
	if creator == "" {
		creator = DefaultCreator
	}

	b := &builder{
		objects:     NewNode("Objects"),
		connections: NewNode("Connections"),
		next:        firstID,
	}
	for _, child := range doc.Root.Children {
		if err := b.model(child, 0, document.RootName); err != nil {
			return nil, err
		}
	}

	return []*Node{
		headerExtension(creator),
		globalSettings(),
		b.definitions(),
		b.objects,
		b.connections,
	}, nil
}

type builder struct {
	objects     *Node
	connections *Node
	next        int64
	models      int
	geometries  int
}

func (b *builder) id() int64 {
	id := b.next
	b.next++
	return id
}

func (b *builder) connect(child, parent int64, comment string) {
	c := NewNode("C", "OO", child, parent)
	c.Comment = comment
	b.connections.AddChild(c)
}

func (b *builder) model(n *document.Node, parent int64, parentName string) error {
	id := b.id()
	b.models++

	kind := "Null"
	if n.Mesh != nil {
		kind = "Mesh"
	}

	b.objects.AddChild(NewNode("Model", id, "Model::"+n.Name, kind).AddChild(
		NewNode("Version", 232),
		NewNode("Properties70").AddChild(
			vectorProp("Lcl Translation", n.Transform.Translation),
			vectorProp("Lcl Rotation", n.Transform.Rotation),
			vectorProp("Lcl Scaling", n.Transform.Scale),
		),
		NewNode("Shading", Token("T")),
		NewNode("Culling", "CullingOff"),
	))
	b.connect(id, parent, "Model::"+n.Name+", Model::"+parentName)

	if n.Mesh != nil {
		geom, err := geometry(b.id(), n.Mesh)
		if err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		b.geometries++
		b.objects.AddChild(geom)
		b.connect(geom.Props[0].(int64), id, "Geometry::"+n.Mesh.Name+", Model::"+n.Name)
	}

	for _, child := range n.Children {
		if err := b.model(child, id, n.Name); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) definitions() *Node {
	defs := NewNode("Definitions").AddChild(
		NewNode("Version", 100),
		NewNode("Count", 1+b.models+b.geometries),
		NewNode("ObjectType", "GlobalSettings").AddChild(NewNode("Count", 1)),
	)
	if b.models > 0 {
		defs.AddChild(NewNode("ObjectType", "Model").AddChild(NewNode("Count", b.models)))
	}
	if b.geometries > 0 {
		defs.AddChild(NewNode("ObjectType", "Geometry").AddChild(NewNode("Count", b.geometries)))
	}
	return defs
}

func headerExtension(creator string) *Node {
	return NewNode("FBXHeaderExtension").AddChild(
		NewNode("FBXHeaderVersion", 1003),
		NewNode("FBXVersion", fbxVersion),
		NewNode("Creator", creator),
	)
}

// globalSettings declares a Y-up, right-handed system in centimeters.
func globalSettings() *Node {
	return NewNode("GlobalSettings").AddChild(
		NewNode("Version", 1000),
		NewNode("Properties70").AddChild(
			intProp("UpAxis", 1),
			intProp("UpAxisSign", 1),
			intProp("FrontAxis", 2),
			intProp("FrontAxisSign", 1),
			intProp("CoordAxis", 0),
			intProp("CoordAxisSign", 1),
			NewNode("P", "UnitScaleFactor", "double", "Number", "", 1.0),
		),
	)
}

func intProp(name string, v int) *Node {
	return NewNode("P", name, "int", "Integer", "", v)
}

func vectorProp(name string, v document.Double3) *Node {
	return NewNode("P", name, name, "", "A", v[0], v[1], v[2])
}
