package kernel

import "errors"

// Sentinel errors for kernel package.
var (
	// ErrNotInScene is returned when an object does not belong to the scene
	// it is used with, or has been removed from it.
	ErrNotInScene = errors.New("kernel: object is not in the scene")

	// ErrNotMesh is returned by mesh-only operations called on a text object.
	ErrNotMesh = errors.New("kernel: object is not a mesh")

	// ErrNotCuboid is returned by BevelEdges for meshes other than boxes.
	ErrNotCuboid = errors.New("kernel: edge bevel needs an axis-aligned box")

	// ErrParentCycle is returned when parenting would create a loop.
	ErrParentCycle = errors.New("kernel: parenting would create a cycle")

	// ErrNilFont is returned when a text object is created without a font.
	ErrNilFont = errors.New("kernel: nil font")

	// ErrSelfOperand is returned when an object is its own boolean operand.
	ErrSelfOperand = errors.New("kernel: object cannot cut itself")
)
