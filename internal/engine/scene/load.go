package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// NodeDesc is the YAML description of a node and its subtree.
type NodeDesc struct {
	Name      string      `yaml:"name"`
	Position  []float32   `yaml:"position,omitempty"` // x, y, z
	Rotation  []float32   `yaml:"rotation,omitempty"` // euler degrees x, y, z
	Scale     []float32   `yaml:"scale,omitempty"`    // x, y, z
	Active    *bool       `yaml:"active,omitempty"`
	Mesh      *MeshDesc   `yaml:"mesh,omitempty"`
	Materials []*string   `yaml:"materials,omitempty"` // null entries are null materials
	Children  []*NodeDesc `yaml:"children,omitempty"`
}

// MeshDesc selects a generated primitive mesh.
type MeshDesc struct {
	Primitive string  `yaml:"primitive"` // cube, quad, grid
	Size      float32 `yaml:"size,omitempty"`
	Cols      int     `yaml:"cols,omitempty"`
	Rows      int     `yaml:"rows,omitempty"`
}

// LoadFile reads a scene description file and builds the node tree.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a node tree from YAML. Materials with the same name share
// one *model.Material, so they batch into the same submesh group.
func Parse(data []byte) (*Node, error) {
	var desc NodeDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	b := &builder{materials: make(map[string]*model.Material)}
	return b.build(&desc, "root")
}

type builder struct {
	materials map[string]*model.Material
}

func (b *builder) build(d *NodeDesc, path string) (*Node, error) {
	if d.Name != "" {
		path = d.Name
	}
	n := NewNode(d.Name)

	var err error
	if n.Position, err = vec3(d.Position, n.Position); err != nil {
		return nil, fmt.Errorf("%s: position: %w", path, err)
	}
	if n.Scale, err = vec3(d.Scale, n.Scale); err != nil {
		return nil, fmt.Errorf("%s: scale: %w", path, err)
	}
	euler, err := vec3(d.Rotation, math.Vec3{})
	if err != nil {
		return nil, fmt.Errorf("%s: rotation: %w", path, err)
	}
	n.Rotation = math.QuatFromEuler(euler.X, euler.Y, euler.Z)

	if d.Active != nil {
		n.SetActive(*d.Active)
	}

	if d.Mesh != nil {
		mesh, err := primitive(d.Mesh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n.SetComponent(&MeshFilter{Mesh: mesh})
	}
	if d.Mesh != nil || len(d.Materials) > 0 {
		mats := make([]*model.Material, len(d.Materials))
		for i, name := range d.Materials {
			if name != nil {
				mats[i] = b.material(*name)
			}
		}
		n.SetComponent(&MeshRenderer{Materials: mats})
	}

	for i, cd := range d.Children {
		child, err := b.build(cd, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (b *builder) material(name string) *model.Material {
	if m, ok := b.materials[name]; ok {
		return m
	}
	m := &model.Material{Name: name, Color: [4]float32{1, 1, 1, 1}}
	b.materials[name] = m
	return m
}

func vec3(v []float32, def math.Vec3) (math.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return math.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
}

func primitive(d *MeshDesc) (*model.Mesh, error) {
	size := d.Size
	if size == 0 {
		size = 1
	}
	switch d.Primitive {
	case "cube":
		return model.Cube(size), nil
	case "quad":
		return model.Quad(size), nil
	case "grid":
		return model.Grid(d.Cols, d.Rows, size), nil
	default:
		return nil, fmt.Errorf("unknown primitive %q", d.Primitive)
	}
}
