package batch

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshbatch/internal/engine/model"
)

var (
	// ErrNoMeshes means no node under the root carries a mesh.
	ErrNoMeshes = errors.New("the combine is impossible, no meshes to combine")
	// ErrNotEnoughMeshes means only one mesh was found.
	ErrNotEnoughMeshes = errors.New("the combine is impossible, not enough meshes (minimum 2)")
)

// VertexLimitError means the combined mesh would exceed the 16-bit index range.
type VertexLimitError struct {
	Root  string
	Count int
	Limit int
}

func (e *VertexLimitError) Error() string {
	return fmt.Sprintf("there are too many vertices to combine into 1 mesh (%d), the maximum limit is %d: root %q",
		e.Count, e.Limit, e.Root)
}

// CheckLimits decides whether a combine pass may proceed.
func CheckLimits(root string, instances, vertices int) error {
	switch {
	case instances == 0:
		return fmt.Errorf("%w: root %q", ErrNoMeshes, root)
	case instances == 1:
		return fmt.Errorf("%w: root %q", ErrNotEnoughMeshes, root)
	case vertices > model.MaxIndexedVertices:
		return &VertexLimitError{Root: root, Count: vertices, Limit: model.MaxIndexedVertices}
	}
	return nil
}
