package batch

import (
	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// Instance is one source mesh found under the root, captured at collection time.
type Instance struct {
	Node      *scene.Node
	Mesh      *model.Mesh
	Materials []*model.Material
	World     math.Mat4
}

// Collect returns an instance for every node under root (root included)
// that has a geometry attachment with a non-nil mesh, in hierarchy order.
// Other nodes are skipped.
func Collect(graph SceneGraph, root *scene.Node) []Instance {
	var out []Instance
	for _, n := range graph.Descendants(root) {
		geo, ok := graph.Geometry(n)
		if !ok || geo.Mesh == nil {
			continue
		}
		out = append(out, Instance{
			Node:      n,
			Mesh:      geo.Mesh,
			Materials: geo.Materials,
			World:     graph.WorldTransform(n),
		})
	}
	return out
}

// CountVertices sums the vertex counts of all instances.
func CountVertices(instances []Instance) int {
	total := 0
	for _, inst := range instances {
		total += inst.Mesh.VertexCount()
	}
	return total
}
