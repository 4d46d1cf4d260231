package batch

import "github.com/Faultbox/meshbatch/pkg/math"

// RootInverse returns the world-to-local matrix of the root.
// A singular root transform yields identity, leaving instances in world space.
func RootInverse(rootWorld math.Mat4) math.Mat4 {
	return rootWorld.Inverse()
}

// LocalTransform re-expresses an instance's world transform in the root's
// local space: inverse(rootWorld) * instanceWorld.
func LocalTransform(rootInverse, instanceWorld math.Mat4) math.Mat4 {
	return rootInverse.Mul(instanceWorld)
}

// NormalRotation derives the rotation applied to normals from a local
// transform: it looks along the third basis column with the second as up.
// Scale and mirroring in the transform are ignored.
func NormalRotation(local math.Mat4) math.Quat {
	return math.QuatLookRotation(local.Column(2), local.Column(1))
}
