package exporter

import (
	"github.com/Faultbox/scenexport/pkg/document"
	"github.com/Faultbox/scenexport/pkg/scene"
)

// Traversal is the outcome of converting an object list.
type Traversal struct {
	Root     *document.Node
	Exported []string
	Failures []ObjectFailure
}

// Traverse converts objects, in order, into direct children of a new root
// node. The list is treated as flat: object hierarchies are not rebuilt.
// An object that fails to convert is recorded in Failures and skipped; the
// rest are still converted. An empty list yields a root with no children.
func (c *Converter) Traverse(objects []*scene.Object) *Traversal {
	t := &Traversal{Root: document.NewNode(document.RootName)}

	for i, obj := range objects {
		node, err := c.BuildNode(obj)
		if err != nil {
			name := ""
			if obj != nil {
				name = obj.Name
			}
			t.Failures = append(t.Failures, ObjectFailure{Index: i, Name: name, Err: err})
			continue
		}
		t.Root.AddChild(node)
		t.Exported = append(t.Exported, node.Name)
	}

	return t
}
