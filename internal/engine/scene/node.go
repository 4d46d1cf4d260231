// Package scene provides the node hierarchy that geometry is batched from.
// Nodes carry a local TRS transform, an active flag, children and components.
package scene

import (
	"errors"

	"github.com/Faultbox/meshbatch/pkg/math"
)

// ErrCycle is returned when reparenting would make a node its own ancestor.
var ErrCycle = errors.New("node cannot be parented to its own descendant")

// Node is one entry in the scene hierarchy.
type Node struct {
	Name string

	// Local transform relative to the parent.
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	active     bool
	parent     *Node
	children   []*Node
	components []Component
}

// NewNode creates an active node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		active:   true,
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in hierarchy order.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild reparents child under n, appending it after existing children.
// The child's local transform is kept as-is.
func (n *Node) AddChild(child *Node) error {
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// DetachChildren turns every direct child into a root node.
func (n *Node) DetachChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Active reports the node's own active flag.
func (n *Node) Active() bool {
	return n.active
}

// SetActive sets the node's own active flag.
func (n *Node) SetActive(active bool) {
	n.active = active
}

// ActiveInHierarchy reports whether the node and all its ancestors are active.
func (n *Node) ActiveInHierarchy() bool {
	for p := n; p != nil; p = p.parent {
		if !p.active {
			return false
		}
	}
	return true
}

// LocalMatrix returns Position * Rotation * Scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.TRS(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the local-to-world matrix: parent world * local.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Walk visits n and its descendants depth-first in hierarchy order.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node named name in n's subtree.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
