package assets

import (
	"errors"
	"testing"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
)

type recordingStore struct {
	meshes    []string
	prefabs   []string
	err       error
	prefabErr error
}

func (s *recordingStore) WriteMeshAsset(_ *model.Mesh, name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.meshes = append(s.meshes, name)
	return MeshPath(DefaultFolder, name), nil
}

func (s *recordingStore) WritePrefabReplacing(_ *scene.Node, name string) (string, error) {
	if s.prefabErr != nil {
		return "", s.prefabErr
	}
	s.prefabs = append(s.prefabs, name)
	return PrefabPath(DefaultFolder, name), nil
}

func combinedRoot() *scene.Node {
	root := scene.NewNode("Root")
	root.SetComponent(&scene.MeshFilter{Mesh: model.Cube(1)})
	root.SetComponent(&scene.MeshRenderer{Materials: []*model.Material{{Name: "A"}}})
	child := scene.NewNode("Child")
	_ = root.AddChild(child)
	return root
}

func TestFinalizeMesh(t *testing.T) {
	store := &recordingStore{}
	f := NewFinalizer(scene.Graph{}, store, nil)
	root := combinedRoot()

	saved, err := f.Finalize(root, SaveMesh, "")
	if err != nil || !saved {
		t.Fatalf("Finalize() = %v, %v", saved, err)
	}
	if len(store.meshes) != 1 || store.meshes[0] != DefaultAssetName {
		t.Errorf("meshes = %v, want default asset name", store.meshes)
	}
	if len(store.prefabs) != 0 {
		t.Errorf("unexpected prefabs %v", store.prefabs)
	}
	if len(root.Children()) != 1 {
		t.Error("mesh action must not detach children")
	}
}

func TestFinalizePrefabDetachesChildren(t *testing.T) {
	store := &recordingStore{}
	f := NewFinalizer(scene.Graph{}, store, nil)
	root := combinedRoot()
	child := root.Children()[0]

	saved, err := f.Finalize(root, SavePrefab, "tower")
	if err != nil || !saved {
		t.Fatalf("Finalize() = %v, %v", saved, err)
	}
	if len(store.meshes) != 1 || len(store.prefabs) != 1 {
		t.Errorf("meshes = %v, prefabs = %v", store.meshes, store.prefabs)
	}
	if len(root.Children()) != 0 || child.Parent() != nil {
		t.Error("prefab action should detach the root's children")
	}
}

func TestFinalizeRunsOnce(t *testing.T) {
	store := &recordingStore{}
	f := NewFinalizer(scene.Graph{}, store, nil)
	root := combinedRoot()

	if saved, _ := f.Finalize(root, SaveMesh, "a"); !saved {
		t.Fatal("first Finalize should save")
	}
	saved, err := f.Finalize(root, SaveMesh, "b")
	if saved || err != nil {
		t.Errorf("second Finalize() = %v, %v, want false, nil", saved, err)
	}
	if len(store.meshes) != 1 {
		t.Errorf("meshes = %v, want a single write", store.meshes)
	}
}

func TestFinalizeNoneDoesNotConsume(t *testing.T) {
	store := &recordingStore{}
	f := NewFinalizer(scene.Graph{}, store, nil)
	root := combinedRoot()

	if saved, err := f.Finalize(root, SaveNone, ""); saved || err != nil {
		t.Errorf("Finalize(none) = %v, %v", saved, err)
	}
	if len(store.meshes) != 0 {
		t.Errorf("none wrote meshes %v", store.meshes)
	}
	if saved, err := f.Finalize(root, SaveMesh, ""); !saved || err != nil {
		t.Errorf("Finalize(mesh) after none = %v, %v, want true, nil", saved, err)
	}
}

func TestFinalizeErrors(t *testing.T) {
	t.Run("no geometry", func(t *testing.T) {
		f := NewFinalizer(scene.Graph{}, &recordingStore{}, nil)
		_, err := f.Finalize(scene.NewNode("Bare"), SaveMesh, "")
		if !errors.Is(err, ErrNoGeometry) {
			t.Errorf("error = %v, want ErrNoGeometry", err)
		}
	})

	t.Run("store failure keeps children", func(t *testing.T) {
		boom := errors.New("disk full")
		f := NewFinalizer(scene.Graph{}, &recordingStore{err: boom}, nil)
		root := combinedRoot()
		_, err := f.Finalize(root, SavePrefab, "")
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want %v", err, boom)
		}
		if len(root.Children()) != 1 {
			t.Error("children detached despite failed mesh write")
		}
	})
}

func TestFinalizePrefabWriteFailureLeavesChildrenDetached(t *testing.T) {
	boom := errors.New("prefab locked")
	store := &recordingStore{prefabErr: boom}
	f := NewFinalizer(scene.Graph{}, store, nil)
	root := combinedRoot()
	child := root.Children()[0]

	saved, err := f.Finalize(root, SavePrefab, "tower")
	if saved || !errors.Is(err, boom) {
		t.Fatalf("Finalize() = %v, %v, want false, %v", saved, err, boom)
	}
	if len(store.meshes) != 1 {
		t.Errorf("meshes = %v, want the mesh asset written first", store.meshes)
	}
	if len(root.Children()) != 0 || child.Parent() != nil {
		t.Error("children should already be detached when the prefab write fails")
	}

	// The failed call still consumes the finalizer.
	if saved, err := f.Finalize(root, SavePrefab, "tower"); saved || err != nil {
		t.Errorf("retry = %v, %v, want false, nil", saved, err)
	}
}

func TestFinalizeWithDatabase(t *testing.T) {
	db := openTestDB(t)
	f := NewFinalizer(scene.Graph{}, db, nil)

	if _, err := f.Finalize(combinedRoot(), SavePrefab, "tower"); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	list, err := db.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Path != "Assets/tower.asset" || list[1].Path != "Assets/tower.prefab" {
		t.Errorf("List() = %+v", list)
	}
}
