package batch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// ErrNonFinitePosition is returned when a source position, or its
// transformed value, contains NaN or Inf.
var ErrNonFinitePosition = errors.New("non-finite vertex position")

// SubmeshGroup collects the offset-corrected triangles of one material.
type SubmeshGroup struct {
	Material *model.Material
	Indices  []uint32
}

// accumulator concatenates vertex streams and partitions triangles by
// material across instances.
type accumulator struct {
	log *zap.Logger

	positions []math.Vec3
	normals   []math.Vec3
	uv        []math.Vec2
	uv2       []math.Vec2

	// groups is in first-encounter order; byMaterial indexes into it.
	groups     []*SubmeshGroup
	byMaterial map[*model.Material]*SubmeshGroup
}

func newAccumulator(log *zap.Logger) *accumulator {
	return &accumulator{
		log:        log,
		byMaterial: make(map[*model.Material]*SubmeshGroup),
	}
}

// add merges one instance. A failed position transform drops only that
// instance's positions: its normals, UVs and triangles are still merged.
func (a *accumulator) add(index int, inst Instance, local math.Mat4) InstanceResult {
	mesh := inst.Mesh
	res := InstanceResult{
		Index:        index,
		Name:         inst.Node.Name,
		VertexOffset: len(a.positions),
	}

	positions, err := transformPositions(mesh.Positions, local)
	if err != nil {
		res.Err = err
		a.log.Warn("position transform failed, skipping instance positions",
			zap.String("instance", inst.Node.Name),
			zap.Int("index", index),
			zap.Error(err))
	} else {
		a.positions = append(a.positions, positions...)
		res.Vertices = len(positions)
	}

	if len(mesh.Normals) > 0 {
		rot := NormalRotation(local)
		for _, n := range mesh.Normals {
			a.normals = append(a.normals, rot.Rotate(n))
		}
	}
	a.uv = append(a.uv, mesh.UV...)
	a.uv2 = append(a.uv2, mesh.UV2...)

	// CheckLimits bounds the offset by model.MaxIndexedVertices.
	a.partition(inst, uint32(res.VertexOffset))
	return res
}

// partition appends the instance's triangles to their material groups.
// Submeshes past the end of the material list and submeshes with a nil
// material are dropped.
func (a *accumulator) partition(inst Instance, offset uint32) {
	n := min(len(inst.Materials), inst.Mesh.SubmeshCount())
	for i := 0; i < n; i++ {
		tris := inst.Mesh.Triangles(i)
		if len(tris) == 0 {
			continue
		}
		mat := inst.Materials[i]
		if mat == nil {
			continue
		}
		g, ok := a.byMaterial[mat]
		if !ok {
			g = &SubmeshGroup{Material: mat}
			a.byMaterial[mat] = g
			a.groups = append(a.groups, g)
		}
		for _, idx := range tris {
			g.Indices = append(g.Indices, idx+offset)
		}
	}
}

func transformPositions(src []math.Vec3, m math.Mat4) ([]math.Vec3, error) {
	out := make([]math.Vec3, len(src))
	for i, p := range src {
		if !p.IsFinite() {
			return nil, fmt.Errorf("vertex %d: %w", i, ErrNonFinitePosition)
		}
		out[i] = m.MulPoint(p)
		if !out[i].IsFinite() {
			return nil, fmt.Errorf("vertex %d after transform: %w", i, ErrNonFinitePosition)
		}
	}
	return out, nil
}
