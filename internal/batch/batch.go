// Package batch merges the renderable geometry under a scene node into a
// single mesh with one submesh per distinct material.
//
// A combine pass runs, in order: collect instances, validate limits,
// normalize transforms into the root's local space, accumulate vertex
// streams and partition triangles by material, then build and assign the
// combined mesh to the root. The root is written only in the last step.
package batch

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/internal/logger"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// SceneGraph is the part of the scene the combiner reads and writes.
type SceneGraph interface {
	// Descendants returns root and its active descendants in hierarchy order.
	Descendants(root *scene.Node) []*scene.Node
	// Geometry returns the node's renderable geometry, if it has any.
	Geometry(n *scene.Node) (scene.Geometry, bool)
	// WorldTransform returns the node's local-to-world matrix.
	WorldTransform(n *scene.Node) math.Mat4
	// SetGeometry assigns geometry to the node, creating attachments as needed.
	SetGeometry(n *scene.Node, g scene.Geometry)
}

// Combiner runs combine passes against a scene graph.
type Combiner struct {
	graph SceneGraph
	log   *zap.Logger
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Combiner) {
		c.log = l
	}
}

// New creates a Combiner. Diagnostics go to the global logger unless
// WithLogger is given.
func New(graph SceneGraph, opts ...Option) *Combiner {
	c := &Combiner{graph: graph, log: logger.Log}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Combine merges the geometry under root into one mesh assigned to root.
//
// It never returns an error: precondition failures are reported in
// Report.Abort and leave root untouched, and per-instance failures are
// listed in Report.Instances while the pass continues.
func (c *Combiner) Combine(root *scene.Node) Report {
	log := c.log.With(zap.String("root", root.Name))

	instances := Collect(c.graph, root)
	report := Report{
		Root:          root.Name,
		InstanceCount: len(instances),
		VertexCount:   CountVertices(instances),
	}

	if err := CheckLimits(root.Name, report.InstanceCount, report.VertexCount); err != nil {
		report.Abort = err
		log.Info(err.Error(),
			zap.Int("instances", report.InstanceCount),
			zap.Int("vertices", report.VertexCount))
		return report
	}

	rootWorld := c.graph.WorldTransform(root)
	if rootWorld.Determinant() == 0 {
		log.Warn("root transform is singular, merging in world space")
	}
	rootInverse := RootInverse(rootWorld)
	acc := newAccumulator(log)
	for i, inst := range instances {
		local := LocalTransform(rootInverse, inst.World)
		report.Instances = append(report.Instances, acc.add(i, inst, local))
	}

	mesh, materials := acc.build(root.Name)
	c.graph.SetGeometry(root, scene.Geometry{Mesh: mesh, Materials: materials})
	report.Mesh = mesh
	report.Materials = materials

	log.Info("combined meshes",
		zap.Int("instances", report.InstanceCount),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("submeshes", mesh.SubmeshCount()),
		zap.Int("failures", len(report.Failures())))
	return report
}
