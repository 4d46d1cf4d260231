package model

import "github.com/Faultbox/meshbatch/pkg/math"

// cubeFaces lists the outward normal and the two in-plane axes of each cube face.
var cubeFaces = [6]struct {
	normal, u, v math.Vec3
}{
	{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
	{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
	{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
}

// Cube builds an axis-aligned cube centered at the origin with 24 vertices
// (4 per face, so each face has flat normals) and a single submesh.
func Cube(size float32) *Mesh {
	h := size / 2
	m := &Mesh{Name: "cube", Submeshes: make([][]uint32, 1)}

	for _, f := range cubeFaces {
		base := uint32(len(m.Positions))
		center := f.normal.Scale(h)
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := center.Add(f.u.Scale(c[0] * h)).Add(f.v.Scale(c[1] * h))
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, f.normal)
			m.UV = append(m.UV, math.Vec2{X: (c[0] + 1) / 2, Y: (c[1] + 1) / 2})
		}
		m.Submeshes[0] = append(m.Submeshes[0], base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Quad builds a unit quad in the XY plane facing +Z with 4 vertices.
func Quad(size float32) *Mesh {
	h := size / 2
	return &Mesh{
		Name: "quad",
		Positions: []math.Vec3{
			{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h},
		},
		Normals: []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}},
		UV:      []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Submeshes: [][]uint32{
			{0, 1, 2, 0, 2, 3},
		},
	}
}

// Grid builds a flat XZ grid of cols x rows cells with (cols+1)*(rows+1)
// vertices and a single submesh. Normals point +Y.
func Grid(cols, rows int, cellSize float32) *Mesh {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	m := &Mesh{Name: "grid", Submeshes: make([][]uint32, 1)}

	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			m.Positions = append(m.Positions, math.Vec3{X: float32(c) * cellSize, Z: float32(r) * cellSize})
			m.Normals = append(m.Normals, math.Vec3{Y: 1})
			m.UV = append(m.UV, math.Vec2{X: float32(c) / float32(cols), Y: float32(r) / float32(rows)})
		}
	}

	stride := uint32(cols + 1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := uint32(r)*stride + uint32(c)
			m.Submeshes[0] = append(m.Submeshes[0], i, i+stride, i+1, i+1, i+stride, i+stride+1)
		}
	}
	return m
}
