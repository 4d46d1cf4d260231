// Package attach adds the auxiliary components a batched node usually needs
// once its geometry has been combined: a collider, a kinematic rigid body,
// and deactivation of the merged source nodes.
package attach

import (
	"fmt"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// ColliderKind selects the collider attached to the combined node.
type ColliderKind string

// Collider kinds.
const (
	ColliderNone    ColliderKind = "none"
	ColliderMesh    ColliderKind = "mesh"
	ColliderSphere  ColliderKind = "sphere"
	ColliderBox     ColliderKind = "box"
	ColliderCapsule ColliderKind = "capsule"
)

// colliderFactories is the fixed kind -> component table. ColliderNone has
// no entry because it attaches nothing.
var colliderFactories = map[ColliderKind]func(mesh *model.Mesh) scene.Component{
	ColliderMesh:    meshCollider,
	ColliderSphere:  sphereCollider,
	ColliderBox:     boxCollider,
	ColliderCapsule: capsuleCollider,
}

// String returns the kind name.
func (k ColliderKind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k ColliderKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown kinds.
func (k *ColliderKind) UnmarshalText(text []byte) error {
	kind := ColliderKind(text)
	if _, ok := colliderFactories[kind]; !ok && kind != ColliderNone {
		return fmt.Errorf("unknown collider kind %q", text)
	}
	*k = kind
	return nil
}

// Scene is the part of the scene graph post-processing needs.
type Scene interface {
	Geometry(n *scene.Node) (scene.Geometry, bool)
	AddComponent(n *scene.Node, c scene.Component)
	SetActive(n *scene.Node, active bool)
}

// Options selects which post-processing steps run.
type Options struct {
	Collider           ColliderKind
	Rigidbody          bool
	DeactivateChildren bool
}

// Apply runs the collider, rigid body and deactivation steps in that order.
func Apply(s Scene, root *scene.Node, opts Options) error {
	if err := AddCollider(s, root, opts.Collider); err != nil {
		return err
	}
	AddRigidbody(s, root, opts.Rigidbody)
	if opts.DeactivateChildren {
		DeactivateChildren(s, root)
	}
	return nil
}

// AddCollider attaches the collider for kind, fitted to the node's mesh.
// An empty kind is treated as ColliderNone.
func AddCollider(s Scene, n *scene.Node, kind ColliderKind) error {
	if kind == "" || kind == ColliderNone {
		return nil
	}
	factory, ok := colliderFactories[kind]
	if !ok {
		return fmt.Errorf("unknown collider kind %q", kind)
	}
	var mesh *model.Mesh
	if geo, ok := s.Geometry(n); ok {
		mesh = geo.Mesh
	}
	s.AddComponent(n, factory(mesh))
	return nil
}

// AddRigidbody attaches a kinematic rigid body when enabled.
func AddRigidbody(s Scene, n *scene.Node, enabled bool) {
	if !enabled {
		return
	}
	s.AddComponent(n, &scene.Rigidbody{Kinematic: true})
}

// DeactivateChildren deactivates every direct child of n.
func DeactivateChildren(s Scene, n *scene.Node) {
	for _, c := range n.Children() {
		s.SetActive(c, false)
	}
}

func meshCollider(mesh *model.Mesh) scene.Component {
	return &scene.MeshCollider{Mesh: mesh}
}

// meshBounds returns the mesh bounds, or a unit box when there is no geometry.
func meshBounds(mesh *model.Mesh) model.Bounds {
	if mesh == nil || mesh.IsEmpty() {
		return model.Bounds{
			Min: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5},
			Max: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		}
	}
	return mesh.Bounds()
}

func boxCollider(mesh *model.Mesh) scene.Component {
	b := meshBounds(mesh)
	return &scene.BoxCollider{Center: b.Center(), Size: b.Size()}
}

func sphereCollider(mesh *model.Mesh) scene.Component {
	b := meshBounds(mesh)
	size := b.Size()
	return &scene.SphereCollider{
		Center: b.Center(),
		Radius: max(size.X, size.Y, size.Z) / 2,
	}
}

func capsuleCollider(mesh *model.Mesh) scene.Component {
	b := meshBounds(mesh)
	size := b.Size()
	return &scene.CapsuleCollider{
		Center:    b.Center(),
		Radius:    max(size.X, size.Z) / 2,
		Height:    size.Y,
		Direction: 1,
	}
}
