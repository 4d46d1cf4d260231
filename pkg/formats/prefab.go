package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PrefabVersion is the current prefab document version.
const PrefabVersion = 1

// Prefab document errors.
var (
	ErrMalformedPrefab          = errors.New("malformed prefab")
	ErrUnsupportedPrefabVersion = errors.New("unsupported prefab version")
)

// Prefab is a reusable node snapshot stored as YAML. The node's geometry is
// referenced by mesh asset path rather than embedded.
type Prefab struct {
	Version    int               `yaml:"version"`
	Name       string            `yaml:"name"`
	Transform  PrefabTransform   `yaml:"transform"`
	Mesh       string            `yaml:"mesh,omitempty"`
	Materials  []string          `yaml:"materials,omitempty"`
	Components []PrefabComponent `yaml:"components,omitempty"`
}

// PrefabTransform is a local transform. Rotation is a quaternion (x, y, z, w).
type PrefabTransform struct {
	Position [3]float32 `yaml:"position,flow"`
	Rotation [4]float32 `yaml:"rotation,flow"`
	Scale    [3]float32 `yaml:"scale,flow"`
}

// PrefabComponent is a component entry. Fields not used by a kind are omitted.
type PrefabComponent struct {
	Kind      string      `yaml:"kind"`
	Center    *[3]float32 `yaml:"center,flow,omitempty"`
	Size      *[3]float32 `yaml:"size,flow,omitempty"`
	Radius    float32     `yaml:"radius,omitempty"`
	Height    float32     `yaml:"height,omitempty"`
	Direction int         `yaml:"direction,omitempty"`
	Kinematic bool        `yaml:"kinematic,omitempty"`
}

// Marshal encodes the prefab. Version 0 is written as PrefabVersion.
func (p *Prefab) Marshal() ([]byte, error) {
	out := *p
	if out.Version == 0 {
		out.Version = PrefabVersion
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encoding prefab %q: %w", p.Name, err)
	}
	return data, nil
}

// ParsePrefab decodes a prefab document.
func ParsePrefab(data []byte) (*Prefab, error) {
	var p Prefab
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPrefab, err)
	}
	if p.Version != PrefabVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedPrefabVersion, p.Version)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedPrefab)
	}
	for i, c := range p.Components {
		if c.Kind == "" {
			return nil, fmt.Errorf("%w: component %d has no kind", ErrMalformedPrefab, i)
		}
	}
	return &p, nil
}
