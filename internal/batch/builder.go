package batch

import "github.com/Faultbox/meshbatch/internal/engine/model"

// build assembles the combined mesh and its material list.
// Empty attribute streams are left nil rather than zero-filled.
func (a *accumulator) build(rootName string) (*model.Mesh, []*model.Material) {
	mesh := &model.Mesh{Name: rootName + "_combined"}
	if len(a.positions) > 0 {
		mesh.Positions = a.positions
	}
	if len(a.normals) > 0 {
		mesh.Normals = a.normals
	}
	if len(a.uv) > 0 {
		mesh.UV = a.uv
	}
	if len(a.uv2) > 0 {
		mesh.UV2 = a.uv2
	}

	mesh.Submeshes = make([][]uint32, len(a.groups))
	materials := make([]*model.Material, len(a.groups))
	for i, g := range a.groups {
		mesh.Submeshes[i] = g.Indices
		materials[i] = g.Material
	}
	return mesh, materials
}

// Groups returns the submesh groups of a combined result in output order.
func (r *Report) Groups() []SubmeshGroup {
	if r.Mesh == nil {
		return nil
	}
	out := make([]SubmeshGroup, len(r.Materials))
	for i := range r.Materials {
		out[i] = SubmeshGroup{Material: r.Materials[i], Indices: r.Mesh.Submeshes[i]}
	}
	return out
}
