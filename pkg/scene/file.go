package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenexport/pkg/math"
)

// Scene file errors.
var (
	ErrInvalidVector = errors.New("invalid vector")
	ErrMissingName   = errors.New("object has no name")
)

// File is the YAML scene description.
type File struct {
	Objects []ObjectSpec `yaml:"objects"`
}

// ObjectSpec describes one object in a scene file.
type ObjectSpec struct {
	Name        string       `yaml:"name"`
	Translation []float32    `yaml:"translation,flow,omitempty"`
	Rotation    []float32    `yaml:"rotation,flow,omitempty"`
	Scale       []float32    `yaml:"scale,flow,omitempty"`
	Mesh        *MeshSpec    `yaml:"mesh,omitempty"`
	Children    []ObjectSpec `yaml:"children,omitempty"`
}

// MeshSpec describes mesh data in a scene file. Each vector is a flow
// sequence, e.g. [0, 1, 0].
type MeshSpec struct {
	Name      string      `yaml:"name"`
	Positions [][]float32 `yaml:"positions"`
	Indices   []int32     `yaml:"indices,flow"`
	Normals   [][]float32 `yaml:"normals,omitempty"`
	Colors    [][]float32 `yaml:"colors,omitempty"`
	UVs       [][]float32 `yaml:"uvs,omitempty"`
}

// LoadFile reads a YAML scene file and returns its root objects.
func LoadFile(path string) ([]*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene file: %w", err)
	}
	defer f.Close()

	objects, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return objects, nil
}

// Decode reads a YAML scene description from r.
func Decode(r io.Reader) ([]*Object, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	objects := make([]*Object, 0, len(file.Objects))
	for i := range file.Objects {
		obj, err := file.Objects[i].toObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (s *ObjectSpec) toObject() (*Object, error) {
	if s.Name == "" {
		return nil, ErrMissingName
	}

	obj := &Object{Name: s.Name, Transform: IdentityTransform()}

	var err error
	if obj.Transform.Translation, err = vec3(s.Translation, math.Vec3{}); err != nil {
		return nil, fmt.Errorf("%s translation: %w", s.Name, err)
	}
	if obj.Transform.Rotation, err = vec3(s.Rotation, math.Vec3{}); err != nil {
		return nil, fmt.Errorf("%s rotation: %w", s.Name, err)
	}
	if obj.Transform.Scale, err = vec3(s.Scale, math.One); err != nil {
		return nil, fmt.Errorf("%s scale: %w", s.Name, err)
	}

	if s.Mesh != nil {
		if obj.Mesh, err = s.Mesh.toMesh(); err != nil {
			return nil, fmt.Errorf("%s mesh: %w", s.Name, err)
		}
	}

	for i := range s.Children {
		child, err := s.Children[i].toObject()
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", s.Name, i, err)
		}
		obj.Children = append(obj.Children, child)
	}
	return obj, nil
}

// toMesh converts vector lists. Lengths are not cross-checked here; the
// exporter reports attribute mismatches per object.
func (s *MeshSpec) toMesh() (*Mesh, error) {
	m := &Mesh{Name: s.Name, Indices: s.Indices}

	for i, p := range s.Positions {
		v, err := exactVec3(p)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		m.Positions = append(m.Positions, v)
	}
	for i, n := range s.Normals {
		v, err := exactVec3(n)
		if err != nil {
			return nil, fmt.Errorf("normal %d: %w", i, err)
		}
		m.Normals = append(m.Normals, v)
	}
	for i, c := range s.Colors {
		switch len(c) {
		case 3:
			m.Colors = append(m.Colors, math.RGBA(c[0], c[1], c[2], 1))
		case 4:
			m.Colors = append(m.Colors, math.RGBA(c[0], c[1], c[2], c[3]))
		default:
			return nil, fmt.Errorf("color %d: %w: want 3 or 4 components, got %d", i, ErrInvalidVector, len(c))
		}
	}
	for i, uv := range s.UVs {
		if len(uv) != 2 {
			return nil, fmt.Errorf("uv %d: %w: want 2 components, got %d", i, ErrInvalidVector, len(uv))
		}
		m.UVs = append(m.UVs, math.Vec2{X: uv[0], Y: uv[1]})
	}
	return m, nil
}

// vec3 converts a 3-component list, returning def for an absent one.
func vec3(v []float32, def math.Vec3) (math.Vec3, error) {
	if len(v) == 0 {
		return def, nil
	}
	return exactVec3(v)
}

func exactVec3(v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: want 3 components, got %d", ErrInvalidVector, len(v))
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}
