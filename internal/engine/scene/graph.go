package scene

import (
	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// Geometry is a node's renderable geometry: the shared mesh from its
// MeshFilter and the material list from its MeshRenderer.
type Geometry struct {
	Mesh      *model.Mesh
	Materials []*model.Material
}

// Graph is the in-memory scene collaborator used by the batcher and the
// post-processing steps. It keeps all engine state on the nodes themselves.
type Graph struct{}

// Descendants returns root and every node below it that is active in the
// hierarchy, depth-first in hierarchy order. Inactive subtrees are skipped.
func (Graph) Descendants(root *Node) []*Node {
	if root == nil || !root.ActiveInHierarchy() {
		return nil
	}
	var out []*Node
	root.Walk(func(n *Node) bool {
		if !n.active {
			return false
		}
		out = append(out, n)
		return true
	})
	return out
}

// Geometry returns the node's geometry when it carries a MeshRenderer.
// Mesh is nil when the node has no MeshFilter or the filter has no mesh.
func (Graph) Geometry(n *Node) (Geometry, bool) {
	r, ok := GetComponent[*MeshRenderer](n)
	if !ok {
		return Geometry{}, false
	}
	g := Geometry{Materials: r.Materials}
	if f, ok := GetComponent[*MeshFilter](n); ok {
		g.Mesh = f.Mesh
	}
	return g, true
}

// WorldTransform returns the node's local-to-world matrix.
func (Graph) WorldTransform(n *Node) math.Mat4 {
	return n.WorldMatrix()
}

// SetGeometry assigns mesh and materials, creating the MeshFilter and
// MeshRenderer if absent. Other components are left untouched.
func (Graph) SetGeometry(n *Node, g Geometry) {
	if f, ok := GetComponent[*MeshFilter](n); ok {
		f.Mesh = g.Mesh
	} else {
		n.SetComponent(&MeshFilter{Mesh: g.Mesh})
	}
	if r, ok := GetComponent[*MeshRenderer](n); ok {
		r.Materials = g.Materials
	} else {
		n.SetComponent(&MeshRenderer{Materials: g.Materials})
	}
}

// SetActive sets the node's active flag.
func (Graph) SetActive(n *Node, active bool) {
	n.SetActive(active)
}

// AddComponent attaches c to the node.
func (Graph) AddComponent(n *Node, c Component) {
	n.SetComponent(c)
}
