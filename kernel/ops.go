package kernel

import (
	"fmt"

	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/glyph3d"
)

// DefaultBooleanResolution is the marching cubes step used when a boolean
// modifier is given a non-positive resolution.
const DefaultBooleanResolution = 0.02

// booleanSearchIters is the number of bisection steps marching cubes uses
// to place vertices on the surface.
const booleanSearchIters = 8

// modifier is a pending boolean difference.
type modifier struct {
	tool       *Object
	resolution float64
}

func (s *Scene) check(objs ...*Object) error {
	for _, o := range objs {
		if !s.Contains(o) {
			return fmt.Errorf("%s: %w", objectName(o), ErrNotInScene)
		}
	}
	return nil
}

// ApplyScale bakes the object's scale into its mesh and resets the scale
// to one.
func (s *Scene) ApplyScale(o *Object) error {
	if err := s.check(o); err != nil {
		return err
	}
	if o.kind != KindMesh {
		return fmt.Errorf("apply scale %s: %w", o.name, ErrNotMesh)
	}
	sc := o.Scale
	o.mesh = o.mesh.MapCoords(func(c model3d.Coord3D) model3d.Coord3D {
		return model3d.XYZ(c.X*sc.X, c.Y*sc.Y, c.Z*sc.Z)
	})
	o.Scale = model3d.XYZ(1, 1, 1)
	glyph3d.Logger().Debug("scale applied", "name", o.name, "scale", sc)
	return nil
}

// BevelEdges rounds every edge of a box mesh with the given offset and
// number of segments per rounded edge.
func (s *Scene) BevelEdges(o *Object, offset float64, segments int) error {
	if err := s.check(o); err != nil {
		return err
	}
	if o.kind != KindMesh {
		return fmt.Errorf("bevel %s: %w", o.name, ErrNotMesh)
	}
	if !o.cuboid {
		return fmt.Errorf("bevel %s: %w", o.name, ErrNotCuboid)
	}
	lo, hi := meshBounds(o.mesh)
	o.mesh = roundedBoxMesh(lo, hi, offset, segments)
	o.cuboid = false
	glyph3d.Logger().Debug("edges bevelled", "name", o.name, "offset", offset, "segments", segments)
	return nil
}

// SetParent makes parent the parent of child. The child's transform is
// kept as is, so it becomes relative to the parent.
func (s *Scene) SetParent(child, parent *Object) error {
	if err := s.check(child, parent); err != nil {
		return err
	}
	for cur := parent; cur != nil; cur = cur.parent {
		if cur == child {
			return fmt.Errorf("parent %s to %s: %w", child.name, parent.name, ErrParentCycle)
		}
	}
	child.parent = parent
	glyph3d.Logger().Debug("parent set", "child", child.name, "parent", parent.name)
	return nil
}

// ConvertToMesh turns a text object into a mesh object with the same
// evaluated geometry. Mesh objects are left unchanged.
func (s *Scene) ConvertToMesh(o *Object) error {
	if err := s.check(o); err != nil {
		return err
	}
	if o.kind == KindMesh {
		return nil
	}
	o.kind = KindMesh
	glyph3d.Logger().Debug("converted to mesh", "name", o.name, "triangles", len(o.mesh.TriangleSlice()))
	return nil
}

// BooleanDifference adds a modifier that subtracts tool from target when
// ApplyModifiers runs. The volume is sampled on a grid with the given
// resolution in scene units.
func (s *Scene) BooleanDifference(target, tool *Object, resolution float64) error {
	if err := s.check(target, tool); err != nil {
		return err
	}
	if target == tool {
		return fmt.Errorf("difference %s: %w", target.name, ErrSelfOperand)
	}
	if target.kind != KindMesh {
		return fmt.Errorf("difference %s: %w", target.name, ErrNotMesh)
	}
	if resolution <= 0 {
		resolution = DefaultBooleanResolution
	}
	target.modifiers = append(target.modifiers, modifier{tool: tool, resolution: resolution})
	return nil
}

// ApplyModifiers evaluates the object's boolean modifiers in order and
// bakes the result into its mesh. Operands are taken in world space.
func (s *Scene) ApplyModifiers(o *Object) error {
	if err := s.check(o); err != nil {
		return err
	}
	for _, mod := range o.modifiers {
		toolMesh := mod.tool.WorldMesh()
		if len(toolMesh.TriangleSlice()) == 0 || len(o.mesh.TriangleSlice()) == 0 {
			continue
		}
		positive := model3d.NewColliderSolid(model3d.MeshToCollider(o.WorldMesh()))
		negative := model3d.NewColliderSolid(model3d.MeshToCollider(toolMesh))
		carved := model3d.MarchingCubesSearch(&model3d.SubtractedSolid{Positive: positive, Negative: negative},
			mod.resolution, booleanSearchIters)
		o.mesh = carved.MapCoords(o.FromWorld)
		o.cuboid = false
		glyph3d.Logger().Debug("difference applied", "name", o.name, "tool", mod.tool.name,
			"triangles", len(o.mesh.TriangleSlice()))
	}
	o.modifiers = nil
	return nil
}

// Modifiers returns the number of pending modifiers on o.
func (o *Object) Modifiers() int {
	return len(o.modifiers)
}
