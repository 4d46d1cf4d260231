package batch

import (
	"testing"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/pkg/math"
)

func TestCollect(t *testing.T) {
	mat := &model.Material{}

	rendererOnly := scene.NewNode("RendererOnly")
	rendererOnly.SetComponent(&scene.MeshRenderer{Materials: []*model.Material{mat}})

	filterOnly := scene.NewNode("FilterOnly")
	filterOnly.SetComponent(&scene.MeshFilter{Mesh: model.Quad(1)})

	parent := meshNode("Parent", model.Quad(1), mat)
	nested := meshNode("Nested", stripMesh(6, false), mat)
	nested.Position = math.Vec3{X: 3}
	if err := parent.AddChild(nested); err != nil {
		t.Fatal(err)
	}

	inactiveParent := scene.NewNode("InactiveParent")
	inactiveParent.SetActive(false)
	if err := inactiveParent.AddChild(meshNode("UnderInactive", model.Quad(1), mat)); err != nil {
		t.Fatal(err)
	}

	root := newRoot(t, rendererOnly, filterOnly, parent, inactiveParent)
	instances := Collect(scene.Graph{}, root)

	var names []string
	for _, inst := range instances {
		names = append(names, inst.Node.Name)
	}
	if len(names) != 2 || names[0] != "Parent" || names[1] != "Nested" {
		t.Fatalf("collected %v, want [Parent Nested]", names)
	}
	if got := instances[1].World.Translation(); got != (math.Vec3{X: 3}) {
		t.Errorf("Nested world translation = %+v", got)
	}
	if got := CountVertices(instances); got != 10 {
		t.Errorf("CountVertices() = %d, want 10", got)
	}
}

func TestCollectInactiveRoot(t *testing.T) {
	root := newRoot(t, meshNode("A", model.Quad(1), &model.Material{}))
	root.SetActive(false)
	if got := Collect(scene.Graph{}, root); len(got) != 0 {
		t.Errorf("Collect() on inactive root = %d instances, want 0", len(got))
	}
}
