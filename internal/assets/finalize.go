package assets

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
)

// ErrNoGeometry is returned when the node being finalized has no geometry.
var ErrNoGeometry = errors.New("node has no geometry to save")

// Scene is the part of the scene graph Finalize needs.
type Scene interface {
	Geometry(n *scene.Node) (scene.Geometry, bool)
}

// Store is the persistence Finalize writes to.
type Store interface {
	WriteMeshAsset(mesh *model.Mesh, name string) (string, error)
	WritePrefabReplacing(root *scene.Node, name string) (string, error)
}

// Finalizer persists a combined node. It runs at most once.
type Finalizer struct {
	scene Scene
	store Store
	log   *zap.Logger
	done  bool
}

// NewFinalizer creates a finalizer writing to store.
func NewFinalizer(s Scene, store Store, log *zap.Logger) *Finalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Finalizer{scene: s, store: store, log: log}
}

// Finalize saves root according to action. It returns false without doing
// anything when called again. Any call, successful or not, consumes the
// finalizer unless action is SaveNone.
//
// SavePrefab detaches root's children before writing the prefab, so a failed
// prefab write leaves the mesh asset stored and the children detached.
func (f *Finalizer) Finalize(root *scene.Node, action SaveAction, name string) (bool, error) {
	if f.done {
		return false, nil
	}
	if action == "" || action == SaveNone {
		return false, nil
	}
	f.done = true

	if name == "" {
		name = DefaultAssetName
	}

	g, ok := f.scene.Geometry(root)
	if !ok || g.Mesh == nil {
		return false, fmt.Errorf("%w: %q", ErrNoGeometry, root.Name)
	}

	switch action {
	case SaveMesh:
		path, err := f.store.WriteMeshAsset(g.Mesh, name)
		if err != nil {
			return false, err
		}
		f.log.Info("saved mesh", zap.String("root", root.Name), zap.String("path", path))

	case SavePrefab:
		meshPath, err := f.store.WriteMeshAsset(g.Mesh, name)
		if err != nil {
			return false, err
		}
		root.DetachChildren()
		prefabPath, err := f.store.WritePrefabReplacing(root, name)
		if err != nil {
			return false, err
		}
		f.log.Info("saved prefab",
			zap.String("root", root.Name),
			zap.String("mesh", meshPath),
			zap.String("prefab", prefabPath))

	default:
		return false, fmt.Errorf("unknown save action %q", action)
	}
	return true, nil
}
