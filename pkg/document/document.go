// Package document is the abstract model of an interchange-format file: a
// tree of transform nodes, some carrying encoded triangle meshes.
//
// A Document is produced by the exporter and handed to a writer. Writers may
// assume the layer invariants checked by Mesh.Validate hold.
package document

// Double2 is a 2D value in document precision.
type Double2 [2]float64

// Double3 is a 3D value in document precision.
type Double3 [3]float64

// Double4 is a 4D value in document precision.
type Double4 [4]float64

// RootName is the name of every document's root node.
const RootName = "RootNode"

// Transform is a node's local transform. Rotation holds Euler angles in
// degrees, XYZ order.
type Transform struct {
	Translation Double3 `yaml:"translation,flow"`
	Rotation    Double3 `yaml:"rotation,flow"`
	Scale       Double3 `yaml:"scale,flow"`
}

// IdentityTransform returns a transform with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: Double3{1, 1, 1}}
}

// Node is one node of the document tree.
type Node struct {
	Name      string    `yaml:"name"`
	Transform Transform `yaml:"transform"`
	Mesh      *Mesh     `yaml:"mesh,omitempty"`
	Children  []*Node   `yaml:"children,omitempty"`
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: IdentityTransform()}
}

// AddChild appends child to the node's children.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk calls fn for n and every descendant, depth first, passing the parent
// (nil for n itself). Walk stops early if fn returns false.
func (n *Node) Walk(fn func(node, parent *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(parent *Node, fn func(node, parent *Node) bool) bool {
	if !fn(n, parent) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(n, fn) {
			return false
		}
	}
	return true
}

// Document owns a single root node and, through it, every mesh.
type Document struct {
	Name    string `yaml:"name"`
	Creator string `yaml:"creator,omitempty"`
	Root    *Node  `yaml:"root"`
}

// New creates an empty document.
func New(name string) *Document {
	return &Document{Name: name, Root: NewNode(RootName)}
}

// Stats summarizes a document.
type Stats struct {
	Nodes         int // excluding the root
	Meshes        int
	ControlPoints int
	Polygons      int
}

// Stats counts the document's nodes and geometry.
func (d *Document) Stats() Stats {
	var s Stats
	d.Root.Walk(func(node, parent *Node) bool {
		if parent != nil {
			s.Nodes++
		}
		if node.Mesh != nil {
			s.Meshes++
			s.ControlPoints += len(node.Mesh.ControlPoints)
			s.Polygons += len(node.Mesh.Polygons)
		}
		return true
	})
	return s
}
