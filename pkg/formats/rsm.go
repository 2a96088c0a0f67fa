// Package formats parses the Ragnarok Online model files that can be fed to
// the exporter.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/scenexport/pkg/encoding"
	"github.com/Faultbox/scenexport/pkg/math"
)

// RSM format errors.
var (
	ErrInvalidRSMMagic       = errors.New("invalid RSM magic: expected 'GRSM'")
	ErrUnsupportedRSMVersion = errors.New("unsupported RSM version")
	ErrTruncatedRSMData      = errors.New("truncated RSM data")
	ErrInvalidNodeCount      = errors.New("invalid RSM node count")
	ErrInvalidElementCount   = errors.New("invalid RSM element count")
)

// Fixed field sizes and sanity limits of the v1 layout.
const (
	rsmNameLength  = 40
	rsmMaxNodes    = 10000
	rsmMaxTextures = 1000
	rsmMaxElements = 100000
	rsmMaxKeys     = 10000
	rsmPosKeySize  = 4 + 3*4
	rsmRotKeySize  = 4 + 4*4
)

// RSMVersion represents the RSM file version.
type RSMVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v RSMVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v RSMVersion) AtLeast(major, minor uint8) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// RSMShadingType represents the shading mode for rendering.
type RSMShadingType int32

const (
	RSMShadingNone   RSMShadingType = 0
	RSMShadingFlat   RSMShadingType = 1
	RSMShadingSmooth RSMShadingType = 2
)

// String returns a human-readable shading type name.
func (s RSMShadingType) String() string {
	switch s {
	case RSMShadingNone:
		return "None"
	case RSMShadingFlat:
		return "Flat"
	case RSMShadingSmooth:
		return "Smooth"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// RSMTexCoord is a texture coordinate with its vertex color.
type RSMTexCoord struct {
	Color [4]uint8 // RGBA, opaque white before v1.2
	U, V  float32
}

// RSMFace is a triangle referencing vertices and texture coordinates
// separately.
type RSMFace struct {
	VertexIDs   [3]uint16
	TexCoordIDs [3]uint16
	TextureID   uint16
	TwoSide     int32
	SmoothGroup int32 // v1.2+
}

// RSMNode is one mesh node of the model.
type RSMNode struct {
	Name       string
	Parent     string // empty for the root
	TextureIDs []int32

	// Mesh-local transform applied to vertices before the node transform.
	Matrix math.Mat3
	Offset math.Vec3

	// Node transform.
	Position math.Vec3
	RotAngle float32 // radians
	RotAxis  math.Vec3
	Scale    math.Vec3

	Vertices  []math.Vec3
	TexCoords []RSMTexCoord
	Faces     []RSMFace

	// Keyframes are counted but not decoded.
	PosKeyCount int
	RotKeyCount int
}

// RSM is a parsed RSM (Resource Model) file.
type RSM struct {
	Version    RSMVersion
	AnimLength int32 // milliseconds
	Shading    RSMShadingType
	Alpha      float32 // 0-1
	Textures   []string
	RootNode   string
	Nodes      []RSMNode
}

// rsmReader reads little-endian fields and keeps the first error, so the
// parser can read a whole block before checking.
type rsmReader struct {
	r   *bytes.Reader
	err error
}

func (br *rsmReader) read(v any) {
	if br.err != nil {
		return
	}
	if err := binary.Read(br.r, binary.LittleEndian, v); err != nil {
		br.err = ErrTruncatedRSMData
	}
}

func (br *rsmReader) int32() int32 {
	var v int32
	br.read(&v)
	return v
}

func (br *rsmReader) float32() float32 {
	var v float32
	br.read(&v)
	return v
}

func (br *rsmReader) vec3() math.Vec3 {
	var v math.Vec3
	br.read(&v)
	return v
}

// name reads a fixed-size EUC-KR string field.
func (br *rsmReader) name() string {
	buf := make([]byte, rsmNameLength)
	br.read(buf)
	if br.err != nil {
		return ""
	}
	return encoding.FixedStringToUTF8(buf)
}

// count reads an element count and rejects values outside [0, limit].
func (br *rsmReader) count(what string, limit int32) int {
	n := br.int32()
	if br.err == nil && (n < 0 || n > limit) {
		br.err = fmt.Errorf("%w: %d %s", ErrInvalidElementCount, n, what)
	}
	if br.err != nil {
		return 0
	}
	return int(n)
}

func (br *rsmReader) skip(n int64) {
	if br.err != nil {
		return
	}
	if int64(br.r.Len()) < n {
		br.err = ErrTruncatedRSMData
		return
	}
	_, _ = br.r.Seek(n, io.SeekCurrent)
}

// ParseRSM parses RSM data from a byte slice. Versions 1.1 through 1.5 are
// supported; the 2.x layout is rejected with ErrUnsupportedRSMVersion.
func ParseRSM(data []byte) (*RSM, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedRSMData
	}
	if string(data[:4]) != "GRSM" {
		return nil, ErrInvalidRSMMagic
	}

	br := &rsmReader{r: bytes.NewReader(data[4:])}
	rsm := &RSM{}
	br.read(&rsm.Version)

	if !rsm.Version.AtLeast(1, 1) || rsm.Version.Major > 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRSMVersion, rsm.Version)
	}

	rsm.AnimLength = br.int32()
	rsm.Shading = RSMShadingType(br.int32())

	rsm.Alpha = 1.0
	if rsm.Version.AtLeast(1, 4) {
		var alpha uint8
		br.read(&alpha)
		rsm.Alpha = float32(alpha) / 255.0
	}

	// Reserved
	br.skip(16)

	textureCount := br.count("textures", rsmMaxTextures)
	rsm.Textures = make([]string, textureCount)
	for i := range rsm.Textures {
		rsm.Textures[i] = br.name()
	}

	rsm.RootNode = br.name()

	nodeCount := br.int32()
	if br.err != nil {
		return nil, br.err
	}
	if nodeCount < 0 || nodeCount > rsmMaxNodes {
		return nil, ErrInvalidNodeCount
	}

	rsm.Nodes = make([]RSMNode, nodeCount)
	for i := range rsm.Nodes {
		if err := parseRSMNode(br, rsm.Version, &rsm.Nodes[i]); err != nil {
			return nil, fmt.Errorf("parsing node %d: %w", i, err)
		}
	}

	// Volume boxes may follow; nothing downstream uses them.
	return rsm, nil
}

func parseRSMNode(br *rsmReader, version RSMVersion, node *RSMNode) error {
	node.Name = br.name()
	node.Parent = br.name()

	node.TextureIDs = make([]int32, br.count("texture ids", rsmMaxTextures))
	br.read(node.TextureIDs)

	br.read(&node.Matrix)
	node.Offset = br.vec3()
	node.Position = br.vec3()
	node.RotAngle = br.float32()
	node.RotAxis = br.vec3()
	node.Scale = br.vec3()

	node.Vertices = make([]math.Vec3, br.count("vertices", rsmMaxElements))
	br.read(node.Vertices)

	node.TexCoords = make([]RSMTexCoord, br.count("texcoords", rsmMaxElements))
	for i := range node.TexCoords {
		tc := &node.TexCoords[i]
		if version.AtLeast(1, 2) {
			br.read(&tc.Color)
		} else {
			tc.Color = [4]uint8{255, 255, 255, 255}
		}
		tc.U = br.float32()
		tc.V = br.float32()
	}

	node.Faces = make([]RSMFace, br.count("faces", rsmMaxElements))
	for i := range node.Faces {
		face := &node.Faces[i]
		br.read(&face.VertexIDs)
		br.read(&face.TexCoordIDs)
		br.read(&face.TextureID)
		br.skip(2) // padding
		face.TwoSide = br.int32()
		if version.AtLeast(1, 2) {
			face.SmoothGroup = br.int32()
		}
	}

	if version.AtLeast(1, 5) {
		node.PosKeyCount = br.count("position keys", rsmMaxKeys)
		br.skip(int64(node.PosKeyCount) * rsmPosKeySize)
	}

	node.RotKeyCount = br.count("rotation keys", rsmMaxKeys)
	br.skip(int64(node.RotKeyCount) * rsmRotKeySize)

	return br.err
}

// ParseRSMFile parses an RSM file from disk.
func ParseRSMFile(path string) (*RSM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RSM file: %w", err)
	}
	return ParseRSM(data)
}

// TotalVertexCount returns the number of vertices across all nodes.
func (rsm *RSM) TotalVertexCount() int {
	total := 0
	for _, node := range rsm.Nodes {
		total += len(node.Vertices)
	}
	return total
}

// TotalFaceCount returns the number of faces across all nodes.
func (rsm *RSM) TotalFaceCount() int {
	total := 0
	for _, node := range rsm.Nodes {
		total += len(node.Faces)
	}
	return total
}

// NodeByName returns a node by its name, or nil if not found.
func (rsm *RSM) NodeByName(name string) *RSMNode {
	for i := range rsm.Nodes {
		if rsm.Nodes[i].Name == name {
			return &rsm.Nodes[i]
		}
	}
	return nil
}

// HasAnimation returns true if any node carries keyframes.
func (rsm *RSM) HasAnimation() bool {
	for _, node := range rsm.Nodes {
		if node.PosKeyCount > 0 || node.RotKeyCount > 0 {
			return true
		}
	}
	return false
}
