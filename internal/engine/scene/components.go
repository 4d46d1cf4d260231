package scene

import (
	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// ComponentKind identifies a component type. A node holds at most one
// component per kind.
type ComponentKind string

// Component kinds.
const (
	KindMeshFilter      ComponentKind = "MeshFilter"
	KindMeshRenderer    ComponentKind = "MeshRenderer"
	KindMeshCollider    ComponentKind = "MeshCollider"
	KindSphereCollider  ComponentKind = "SphereCollider"
	KindBoxCollider     ComponentKind = "BoxCollider"
	KindCapsuleCollider ComponentKind = "CapsuleCollider"
	KindRigidbody       ComponentKind = "Rigidbody"
)

// Component is anything attached to a node.
type Component interface {
	Kind() ComponentKind
}

// MeshFilter references the shared geometry resource drawn by a node.
type MeshFilter struct {
	Mesh *model.Mesh
}

// MeshRenderer holds one material per submesh of the node's mesh.
type MeshRenderer struct {
	Materials []*model.Material
}

// MeshCollider uses a mesh as its collision shape.
type MeshCollider struct {
	Mesh *model.Mesh
}

// SphereCollider is a sphere in the node's local space.
type SphereCollider struct {
	Center math.Vec3
	Radius float32
}

// BoxCollider is an axis-aligned box in the node's local space.
type BoxCollider struct {
	Center math.Vec3
	Size   math.Vec3
}

// CapsuleCollider is a capsule aligned to one local axis (0=X, 1=Y, 2=Z).
type CapsuleCollider struct {
	Center    math.Vec3
	Radius    float32
	Height    float32
	Direction int
}

// Rigidbody marks a node as simulated. Kinematic bodies are moved by code only.
type Rigidbody struct {
	Kinematic bool
}

func (*MeshFilter) Kind() ComponentKind      { return KindMeshFilter }
func (*MeshRenderer) Kind() ComponentKind    { return KindMeshRenderer }
func (*MeshCollider) Kind() ComponentKind    { return KindMeshCollider }
func (*SphereCollider) Kind() ComponentKind  { return KindSphereCollider }
func (*BoxCollider) Kind() ComponentKind     { return KindBoxCollider }
func (*CapsuleCollider) Kind() ComponentKind { return KindCapsuleCollider }
func (*Rigidbody) Kind() ComponentKind       { return KindRigidbody }

// Components returns the node's components in attachment order.
func (n *Node) Components() []Component {
	return n.components
}

// Component returns the component of the given kind, or nil.
func (n *Node) Component(kind ComponentKind) Component {
	for _, c := range n.components {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// SetComponent attaches c, replacing any existing component of the same kind
// in place so attachment order is preserved.
func (n *Node) SetComponent(c Component) {
	for i, existing := range n.components {
		if existing.Kind() == c.Kind() {
			n.components[i] = c
			return
		}
	}
	n.components = append(n.components, c)
}

// RemoveComponent detaches the component of the given kind, if present.
func (n *Node) RemoveComponent(kind ComponentKind) {
	for i, c := range n.components {
		if c.Kind() == kind {
			n.components = append(n.components[:i], n.components[i+1:]...)
			return
		}
	}
}

// GetComponent returns the node's component of type T.
func GetComponent[T Component](n *Node) (T, bool) {
	for _, c := range n.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
