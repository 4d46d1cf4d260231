package attach

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/pkg/math"
)

func rootWithCube(size float32) *scene.Node {
	root := scene.NewNode("root")
	scene.Graph{}.SetGeometry(root, scene.Geometry{Mesh: model.Cube(size)})
	return root
}

func TestAddColliderFitsBounds(t *testing.T) {
	tests := []struct {
		kind ColliderKind
		want scene.Component
	}{
		{ColliderBox, &scene.BoxCollider{Size: math.Vec3{X: 2, Y: 2, Z: 2}}},
		{ColliderSphere, &scene.SphereCollider{Radius: 1}},
		{ColliderCapsule, &scene.CapsuleCollider{Radius: 1, Height: 2, Direction: 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			root := rootWithCube(2)
			if err := AddCollider(scene.Graph{}, root, tt.kind); err != nil {
				t.Fatalf("AddCollider: %v", err)
			}
			got := root.Component(tt.want.Kind())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("collider mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddMeshCollider(t *testing.T) {
	root := rootWithCube(1)
	if err := AddCollider(scene.Graph{}, root, ColliderMesh); err != nil {
		t.Fatal(err)
	}
	mc, ok := scene.GetComponent[*scene.MeshCollider](root)
	f, _ := scene.GetComponent[*scene.MeshFilter](root)
	if !ok || mc.Mesh != f.Mesh {
		t.Error("mesh collider should reference the node's mesh")
	}
}

func TestAddColliderNone(t *testing.T) {
	root := rootWithCube(1)
	for _, kind := range []ColliderKind{ColliderNone, ""} {
		if err := AddCollider(scene.Graph{}, root, kind); err != nil {
			t.Fatalf("AddCollider(%q): %v", kind, err)
		}
	}
	if len(root.Components()) != 2 {
		t.Errorf("no component should be added, have %d", len(root.Components()))
	}
}

func TestAddColliderUnknown(t *testing.T) {
	if err := AddCollider(scene.Graph{}, rootWithCube(1), "cylinder"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestAddColliderWithoutGeometry(t *testing.T) {
	n := scene.NewNode("empty")
	if err := AddCollider(scene.Graph{}, n, ColliderBox); err != nil {
		t.Fatal(err)
	}
	box, ok := scene.GetComponent[*scene.BoxCollider](n)
	if !ok || box.Size != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("expected unit box, got %+v", box)
	}
}

func TestAddRigidbody(t *testing.T) {
	n := scene.NewNode("n")
	AddRigidbody(scene.Graph{}, n, false)
	if n.Component(scene.KindRigidbody) != nil {
		t.Error("disabled rigid body should not be attached")
	}
	AddRigidbody(scene.Graph{}, n, true)
	rb, ok := scene.GetComponent[*scene.Rigidbody](n)
	if !ok || !rb.Kinematic {
		t.Error("expected kinematic rigid body")
	}
}

func TestApply(t *testing.T) {
	root := rootWithCube(1)
	a := scene.NewNode("a")
	b := scene.NewNode("b")
	grandchild := scene.NewNode("c")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(grandchild)

	err := Apply(scene.Graph{}, root, Options{
		Collider:           ColliderSphere,
		Rigidbody:          true,
		DeactivateChildren: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if a.Active() || b.Active() {
		t.Error("direct children should be inactive")
	}
	if !grandchild.Active() {
		t.Error("only direct children are deactivated")
	}
	if !root.Active() {
		t.Error("root stays active")
	}

	var kinds []scene.ComponentKind
	for _, c := range root.Components() {
		kinds = append(kinds, c.Kind())
	}
	want := []scene.ComponentKind{
		scene.KindMeshFilter, scene.KindMeshRenderer, scene.KindSphereCollider, scene.KindRigidbody,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("components (-want +got):\n%s", diff)
	}
}

func TestColliderKindUnmarshalText(t *testing.T) {
	var k ColliderKind
	for _, name := range []string{"none", "mesh", "sphere", "box", "capsule"} {
		if err := k.UnmarshalText([]byte(name)); err != nil {
			t.Errorf("UnmarshalText(%q): %v", name, err)
		}
		if string(k) != name {
			t.Errorf("got %q, want %q", k, name)
		}
	}
	if err := k.UnmarshalText([]byte("cone")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
