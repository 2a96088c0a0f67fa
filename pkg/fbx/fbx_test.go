package fbx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenexport/pkg/document"
)

func quadDocument() *document.Document {
	doc := document.New("Level")

	obj := document.NewNode("Floor")
	obj.Transform.Translation = document.Double3{1, 2, 3}
	obj.Transform.Rotation = document.Double3{0, 90, 0}

	mesh := document.NewNode("Quad")
	mesh.Mesh = &document.Mesh{
		Name:          "Quad",
		ControlPoints: []document.Double3{{0, 0, 0}, {100, 0, 0}, {100, 100, 0}, {0, 100, 0}},
		Polygons:      []document.Polygon{{0, 1, 2}, {0, 2, 3}},
		Normals: &document.NormalLayer{
			LayerInfo: document.LayerInfo{Name: "Normals"},
			Normals:   []document.Double3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		},
	}
	obj.AddChild(mesh)
	doc.Root.AddChild(obj)
	doc.Root.AddChild(document.NewNode("Marker"))
	return doc
}

func encode(t *testing.T, f Format, doc *document.Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Encode(&buf, doc))
	return buf.String()
}

func TestPolygonVertexIndex(t *testing.T) {
	assert.Equal(t, []int32{0, 1, -3, 0, 2, -4}, PolygonVertexIndex([]document.Polygon{{0, 1, 2}, {0, 2, 3}}))
	assert.Equal(t, []int32{0, 1, 2, -4}, PolygonVertexIndex([]document.Polygon{{0, 1, 2, 3}}))
	assert.Empty(t, PolygonVertexIndex(nil))
}

func TestEncode_Quad(t *testing.T) {
	out := encode(t, Format{}, quadDocument())

	assert.True(t, strings.HasPrefix(out, "; FBX 7.4.0 project file\n"))
	assert.Contains(t, out, "\tFBXVersion: 7400\n")
	assert.Contains(t, out, "\tCreator: \"scenexport\"\n")

	assert.Contains(t, out, "\t\tPolygonVertexIndex: *6 {\n\t\t\ta: 0,1,-3,0,2,-4\n\t\t}\n")
	assert.Contains(t, out, "\t\tVertices: *12 {\n\t\t\ta: 0,0,0,100,0,0,100,100,0,0,100,0\n\t\t}\n")

	assert.Contains(t, out, "\tModel: 1000000, \"Model::Floor\", \"Null\" {\n")
	assert.Contains(t, out, "\tModel: 1000001, \"Model::Quad\", \"Mesh\" {\n")
	assert.Contains(t, out, "\tGeometry: 1000002, \"Geometry::Quad\", \"Mesh\" {\n")
	assert.Contains(t, out, "\tModel: 1000003, \"Model::Marker\", \"Null\" {\n")

	assert.Contains(t, out, "P: \"Lcl Translation\", \"Lcl Translation\", \"\", \"A\", 1, 2, 3\n")
	assert.Contains(t, out, "P: \"Lcl Rotation\", \"Lcl Rotation\", \"\", \"A\", 0, 90, 0\n")
	assert.Contains(t, out, "P: \"Lcl Scaling\", \"Lcl Scaling\", \"\", \"A\", 1, 1, 1\n")

	assert.Contains(t, out, "\t\tMappingInformationType: \"ByVertice\"\n")
	assert.Contains(t, out, "\t\tReferenceInformationType: \"Direct\"\n")
	assert.Contains(t, out, "\t\t\tType: \"LayerElementNormal\"\n")
	assert.NotContains(t, out, "LayerElementUV")
}

func TestEncode_Connections(t *testing.T) {
	nodes, err := Format{}.Build(quadDocument())
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	conns := nodes[4]
	assert.Equal(t, "Connections", conns.Name)

	var got [][]any
	for _, c := range conns.Children {
		got = append(got, c.Props)
	}
	assert.Equal(t, [][]any{
		{"OO", int64(1000000), int64(0)},
		{"OO", int64(1000001), int64(1000000)},
		{"OO", int64(1000002), int64(1000001)},
		{"OO", int64(1000003), int64(0)},
	}, got)
	assert.Equal(t, "Model::Floor, Model::RootNode", conns.Children[0].Comment)

	defs := nodes[2]
	assert.Equal(t, []any{1 + 3 + 1}, defs.Child("Count").Props)
}

func TestEncode_Deterministic(t *testing.T) {
	a := encode(t, Format{}, quadDocument())
	b := encode(t, Format{}, quadDocument())
	assert.Equal(t, a, b)
}

func TestEncode_Creator(t *testing.T) {
	doc := document.New("Empty")
	assert.Contains(t, encode(t, Format{Creator: "tool"}, doc), "Creator: \"tool\"")

	doc.Creator = "editor"
	assert.Contains(t, encode(t, Format{Creator: "tool"}, doc), "Creator: \"editor\"")
}

func TestEncode_Empty(t *testing.T) {
	out := encode(t, Format{}, document.New("Empty"))
	assert.Contains(t, out, "Objects:  {\n}\n")
	assert.NotContains(t, out, "Model:")
	assert.NotContains(t, out, "ObjectType: \"Model\"")
}

func TestEncode_LayerErrors(t *testing.T) {
	doc := quadDocument()
	doc.Root.Children[0].Children[0].Mesh.Normals.Reference = document.IndexToDirect
	_, err := Format{}.Build(doc)
	assert.ErrorIs(t, err, ErrUnsupportedLayer)
	assert.ErrorContains(t, err, `node "Quad"`)

	doc = quadDocument()
	doc.Root.Children[0].Children[0].Mesh.Polygons = []document.Polygon{{0, 1, 9}}
	_, err = Format{}.Build(doc)
	assert.ErrorIs(t, err, document.ErrInvalidMesh)
}

func TestNode_Dump(t *testing.T) {
	n := NewNode("Thing", int64(7), "Model::a \"b\"", Token("T")).AddChild(
		NewNode("Value", 1.5),
		NewNode("Large", 1e6, 2.5e-7),
		NewNode("Items", []int32{1, -2}),
	)
	n.Children[0].Comment = "note"

	var buf bytes.Buffer
	require.NoError(t, n.Dump(&buf, 0))
	assert.Equal(t,
		"Thing: 7, \"Model::a &quot;b&quot;\", T {\n"+
			"\t;note\n"+
			"\tValue: 1.5\n"+
			"\tLarge: 1000000, 0.00000025\n"+
			"\tItems: *2 {\n"+
			"\t\ta: 1,-2\n"+
			"\t}\n"+
			"}\n",
		buf.String())
}
