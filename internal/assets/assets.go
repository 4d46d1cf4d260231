// Package assets persists combined meshes and prefabs to a SQLite asset
// database and reads them back through an in-memory cache.
package assets

import (
	"fmt"
	"path"
)

// DefaultAssetName is the asset name used when none is configured.
const DefaultAssetName = "0123456789"

// DefaultFolder is the root folder of stored asset paths.
const DefaultFolder = "Assets"

// Asset file extensions.
const (
	MeshExt   = ".asset"
	PrefabExt = ".prefab"
)

// SaveAction selects what Finalize persists.
type SaveAction string

// Save actions.
const (
	SaveNone   SaveAction = "none"
	SaveMesh   SaveAction = "mesh"
	SavePrefab SaveAction = "prefab"
)

// String returns the action name.
func (a SaveAction) String() string {
	return string(a)
}

// MarshalText implements encoding.TextMarshaler.
func (a SaveAction) MarshalText() ([]byte, error) {
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown actions.
func (a *SaveAction) UnmarshalText(text []byte) error {
	switch action := SaveAction(text); action {
	case SaveNone, SaveMesh, SavePrefab:
		*a = action
		return nil
	}
	return fmt.Errorf("unknown save action %q", text)
}

// MeshPath returns the stored path of the mesh asset called name.
func MeshPath(folder, name string) string {
	return path.Join(folder, name+MeshExt)
}

// PrefabPath returns the stored path of the prefab called name.
func PrefabPath(folder, name string) string {
	return path.Join(folder, name+PrefabExt)
}
