package batch

import "github.com/Faultbox/meshbatch/internal/engine/model"

// InstanceResult is the outcome of merging one instance.
type InstanceResult struct {
	Index        int
	Name         string
	VertexOffset int   // position count before this instance was merged
	Vertices     int   // positions appended; 0 when Err is set
	Err          error // position transform failure, if any
}

// Report describes a combine pass.
type Report struct {
	Root          string
	InstanceCount int
	VertexCount   int

	// Abort is set when a precondition failed and root was left unmodified.
	Abort error

	// Instances holds one result per merged instance, in collection order.
	Instances []InstanceResult

	// Mesh and Materials are what was assigned to root.
	Mesh      *model.Mesh
	Materials []*model.Material
}

// Combined reports whether the pass assigned a mesh to the root.
func (r *Report) Combined() bool {
	return r.Abort == nil && r.Mesh != nil
}

// Failures returns the instances whose positions could not be merged.
func (r *Report) Failures() []InstanceResult {
	var out []InstanceResult
	for _, res := range r.Instances {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
