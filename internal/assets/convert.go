package assets

import (
	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/pkg/formats"
	"github.com/Faultbox/meshbatch/pkg/math"
)

// MeshToAsset flattens a mesh into its stored form.
func MeshToAsset(m *model.Mesh) *formats.MeshAsset {
	a := &formats.MeshAsset{
		Version:   formats.MeshAssetVersion,
		Name:      m.Name,
		Positions: flatten3(m.Positions),
		Normals:   flatten3(m.Normals),
		UV:        flatten2(m.UV),
		UV2:       flatten2(m.UV2),
	}
	if len(m.Submeshes) > 0 {
		a.Submeshes = make([][]uint32, len(m.Submeshes))
		for i, s := range m.Submeshes {
			a.Submeshes[i] = append([]uint32(nil), s...)
		}
	}
	return a
}

// AssetToMesh rebuilds a mesh from its stored form. The result is not
// validated; combined meshes may carry mismatched streams.
func AssetToMesh(a *formats.MeshAsset) *model.Mesh {
	return &model.Mesh{
		Name:      a.Name,
		Positions: unflatten3(a.Positions),
		Normals:   unflatten3(a.Normals),
		UV:        unflatten2(a.UV),
		UV2:       unflatten2(a.UV2),
		Submeshes: a.Submeshes,
	}
}

func flatten3(v []math.Vec3) []float32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float32, 0, len(v)*3)
	for _, p := range v {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

func flatten2(v []math.Vec2) []float32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float32, 0, len(v)*2)
	for _, p := range v {
		out = append(out, p.X, p.Y)
	}
	return out
}

func unflatten3(f []float32) []math.Vec3 {
	if len(f) == 0 {
		return nil
	}
	out := make([]math.Vec3, len(f)/3)
	for i := range out {
		out[i] = math.Vec3{X: f[i*3], Y: f[i*3+1], Z: f[i*3+2]}
	}
	return out
}

func unflatten2(f []float32) []math.Vec2 {
	if len(f) == 0 {
		return nil
	}
	out := make([]math.Vec2, len(f)/2)
	for i := range out {
		out[i] = math.Vec2{X: f[i*2], Y: f[i*2+1]}
	}
	return out
}

// nodeToPrefab snapshots a node's local transform and components.
func nodeToPrefab(n *scene.Node, meshPath string) *formats.Prefab {
	p := &formats.Prefab{
		Version: formats.PrefabVersion,
		Name:    n.Name,
		Transform: formats.PrefabTransform{
			Position: n.Position.Array(),
			Rotation: [4]float32{n.Rotation.X, n.Rotation.Y, n.Rotation.Z, n.Rotation.W},
			Scale:    n.Scale.Array(),
		},
		Mesh: meshPath,
	}

	for _, c := range n.Components() {
		pc := formats.PrefabComponent{Kind: string(c.Kind())}
		switch c := c.(type) {
		case *scene.MeshRenderer:
			for _, mat := range c.Materials {
				name := ""
				if mat != nil {
					name = mat.Name
				}
				p.Materials = append(p.Materials, name)
			}
		case *scene.SphereCollider:
			center := c.Center.Array()
			pc.Center = &center
			pc.Radius = c.Radius
		case *scene.BoxCollider:
			center, size := c.Center.Array(), c.Size.Array()
			pc.Center = &center
			pc.Size = &size
		case *scene.CapsuleCollider:
			center := c.Center.Array()
			pc.Center = &center
			pc.Radius = c.Radius
			pc.Height = c.Height
			pc.Direction = c.Direction
		case *scene.Rigidbody:
			pc.Kinematic = c.Kinematic
		}
		p.Components = append(p.Components, pc)
	}
	return p
}
