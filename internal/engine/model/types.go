// Package model provides the geometry buffers merged by the batcher.
package model

import "github.com/Faultbox/meshbatch/pkg/math"

// Mesh is a renderable geometry resource: parallel vertex attribute streams
// plus one triangle index list per submesh.
//
// Normals, UV and UV2 are either empty or the same length as Positions.
// Submeshes holds triangle lists (stride 3) indexing into Positions.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3
	UV        []math.Vec2
	UV2       []math.Vec2
	Submeshes [][]uint32
}

// Material is the grouping key for submeshes. Identity is the pointer:
// two submeshes share a group only if they reference the same *Material.
type Material struct {
	Name    string
	Texture string
	Color   [4]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
