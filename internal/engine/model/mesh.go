package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshbatch/pkg/math"
)

// MaxIndexedVertices is the largest vertex count addressable with 16-bit indices.
const MaxIndexedVertices = 65535

var (
	// ErrAttributeLength is returned when an optional attribute stream
	// does not match the position count.
	ErrAttributeLength = errors.New("attribute length mismatch")
	// ErrIndexRange is returned when a triangle references a missing vertex.
	ErrIndexRange = errors.New("triangle index out of range")
	// ErrTriangleStride is returned when a submesh is not a whole number of triangles.
	ErrTriangleStride = errors.New("submesh length is not a multiple of 3")
)

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// SubmeshCount returns the number of submeshes.
func (m *Mesh) SubmeshCount() int {
	return len(m.Submeshes)
}

// Triangles returns the triangle index list of submesh i, or nil if i is out of range.
func (m *Mesh) Triangles(i int) []uint32 {
	if i < 0 || i >= len(m.Submeshes) {
		return nil
	}
	return m.Submeshes[i]
}

// TriangleCount returns the total number of triangles across all submeshes.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, s := range m.Submeshes {
		n += len(s) / 3
	}
	return n
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Bounds computes the axis-aligned bounding box of the positions.
// An empty mesh yields a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		updateBounds(&b, p)
	}
	return b
}

// Validate checks attribute stream lengths and triangle indices.
// The batcher does not require valid meshes; this is used by tooling.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	check := func(name string, l int) error {
		if l != 0 && l != n {
			return fmt.Errorf("%s: %d entries for %d positions: %w", name, l, n, ErrAttributeLength)
		}
		return nil
	}
	if err := check("normals", len(m.Normals)); err != nil {
		return err
	}
	if err := check("uv", len(m.UV)); err != nil {
		return err
	}
	if err := check("uv2", len(m.UV2)); err != nil {
		return err
	}

	for si, s := range m.Submeshes {
		if len(s)%3 != 0 {
			return fmt.Errorf("submesh %d: %w", si, ErrTriangleStride)
		}
		for _, idx := range s {
			if int(idx) >= n {
				return fmt.Errorf("submesh %d: index %d >= %d: %w", si, idx, n, ErrIndexRange)
			}
		}
	}
	return nil
}

func updateBounds(b *Bounds, p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}
