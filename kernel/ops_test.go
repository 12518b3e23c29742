package kernel

import (
	"errors"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestApplyScale(t *testing.T) {
	s := NewScene()
	o := s.AddCube(2, model3d.Coord3D{})
	o.Scale = model3d.XYZ(0.9, 0.05, 0.9)
	if err := s.ApplyScale(o); err != nil {
		t.Fatal(err)
	}
	if o.Scale != model3d.XYZ(1, 1, 1) {
		t.Errorf("Scale = %v, want reset to 1", o.Scale)
	}
	lo, hi := meshBounds(o.Mesh())
	if !nearCoord(lo, model3d.XYZ(-0.9, -0.05, -0.9), 1e-12) || !nearCoord(hi, model3d.XYZ(0.9, 0.05, 0.9), 1e-12) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}

	f := testFont(t)
	txt, err := s.AddText(f, 'A', TextParams{Size: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyScale(txt); !errors.Is(err, ErrNotMesh) {
		t.Errorf("ApplyScale(text) error = %v, want ErrNotMesh", err)
	}
}

func TestBevelEdges(t *testing.T) {
	s := NewScene()
	plate := s.AddCube(2, model3d.Coord3D{})
	plate.Scale = model3d.XYZ(0.9, 0.05, 0.9)
	if err := s.ApplyScale(plate); err != nil {
		t.Fatal(err)
	}
	if err := s.BevelEdges(plate, 0.02, 4); err != nil {
		t.Fatal(err)
	}
	lo, hi := meshBounds(plate.Mesh())
	if !nearCoord(lo, model3d.XYZ(-0.9, -0.05, -0.9), 1e-9) || !nearCoord(hi, model3d.XYZ(0.9, 0.05, 0.9), 1e-9) {
		t.Errorf("bevelled bounds = %v..%v", lo, hi)
	}
	if n := len(plate.Mesh().TriangleSlice()); n <= 12 {
		t.Errorf("bevelled triangles = %d, want more than a box", n)
	}

	// A bevelled box is no longer a plain box.
	if err := s.BevelEdges(plate, 0.02, 4); !errors.Is(err, ErrNotCuboid) {
		t.Errorf("second bevel error = %v, want ErrNotCuboid", err)
	}
	sphere := s.AddUVSphere(1, 8, 4, model3d.Coord3D{})
	if err := s.BevelEdges(sphere, 0.02, 4); !errors.Is(err, ErrNotCuboid) {
		t.Errorf("sphere bevel error = %v, want ErrNotCuboid", err)
	}
}

func TestSetParentCycle(t *testing.T) {
	s := NewScene()
	a := s.AddCube(1, model3d.Coord3D{})
	b := s.AddCube(1, model3d.Coord3D{})
	c := s.AddCube(1, model3d.Coord3D{})
	if err := s.SetParent(b, a); err != nil {
		t.Fatal(err)
	}
	if err := s.SetParent(c, b); err != nil {
		t.Fatal(err)
	}
	if err := s.SetParent(a, c); !errors.Is(err, ErrParentCycle) {
		t.Errorf("cycle error = %v, want ErrParentCycle", err)
	}
	if err := s.SetParent(a, a); !errors.Is(err, ErrParentCycle) {
		t.Errorf("self parent error = %v, want ErrParentCycle", err)
	}
	if c.Parent() != b || a.Parent() != nil {
		t.Error("failed SetParent changed the hierarchy")
	}
}

func TestOperationsRejectForeignObjects(t *testing.T) {
	s := NewScene()
	own := s.AddCube(1, model3d.Coord3D{})
	foreign := NewScene().AddCube(1, model3d.Coord3D{})

	tests := []struct {
		name string
		fn   func() error
	}{
		{"ApplyScale", func() error { return s.ApplyScale(foreign) }},
		{"BevelEdges", func() error { return s.BevelEdges(foreign, 0.1, 2) }},
		{"SetParent", func() error { return s.SetParent(own, foreign) }},
		{"ConvertToMesh", func() error { return s.ConvertToMesh(foreign) }},
		{"BooleanDifference", func() error { return s.BooleanDifference(own, foreign, 0.1) }},
		{"ApplyModifiers", func() error { return s.ApplyModifiers(foreign) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrNotInScene) {
				t.Errorf("error = %v, want ErrNotInScene", err)
			}
		})
	}
}

func TestConvertToMesh(t *testing.T) {
	f := testFont(t)
	s := NewScene()
	o, err := s.AddText(f, 'A', TextParams{Size: 1, Extrude: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	before := len(o.Mesh().TriangleSlice())
	if err := s.ConvertToMesh(o); err != nil {
		t.Fatal(err)
	}
	if o.Kind() != KindMesh {
		t.Errorf("Kind = %v, want Mesh", o.Kind())
	}
	if after := len(o.Mesh().TriangleSlice()); after != before {
		t.Errorf("triangles %d -> %d", before, after)
	}
	if err := s.ConvertToMesh(o); err != nil {
		t.Errorf("second ConvertToMesh: %v", err)
	}
}

func TestBooleanDifference(t *testing.T) {
	s := NewScene()
	block := s.AddCube(1, model3d.Coord3D{})
	// The tool overhangs the block's sides: coplanar faces are not handled.
	tool := s.AddCube(1.02, model3d.XYZ(0, 0, 0.5))

	if err := s.BooleanDifference(block, block, 0.1); !errors.Is(err, ErrSelfOperand) {
		t.Errorf("self difference error = %v, want ErrSelfOperand", err)
	}
	if err := s.BooleanDifference(block, tool, 0.05); err != nil {
		t.Fatal(err)
	}
	if block.Modifiers() != 1 {
		t.Fatalf("Modifiers() = %d, want 1", block.Modifiers())
	}
	if err := s.ApplyModifiers(block); err != nil {
		t.Fatal(err)
	}
	if block.Modifiers() != 0 {
		t.Error("modifiers kept after apply")
	}

	// The tool removes the upper half of the block.
	v := volume(block.Mesh())
	if v < 0.4 || v > 0.6 {
		t.Errorf("volume after difference = %v, want about 0.5", v)
	}
	_, hi := meshBounds(block.Mesh())
	if hi.Z > 0.05 {
		t.Errorf("max z = %v, want about 0", hi.Z)
	}

	// An empty tool leaves the mesh alone.
	empty := s.AddCube(1, model3d.Coord3D{})
	before := len(empty.Mesh().TriangleSlice())
	space := s.AddUVSphere(1, 8, 4, model3d.Coord3D{})
	space.mesh = model3d.NewMesh()
	if err := s.BooleanDifference(empty, space, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyModifiers(empty); err != nil {
		t.Fatal(err)
	}
	if n := len(empty.Mesh().TriangleSlice()); n != before {
		t.Errorf("triangles = %d after empty difference, want %d", n, before)
	}
}

func TestBooleanDifferenceNeedsMesh(t *testing.T) {
	f := testFont(t)
	s := NewScene()
	txt, err := s.AddText(f, 'A', TextParams{Size: 1, Extrude: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	cube := s.AddCube(1, model3d.Coord3D{})
	if err := s.BooleanDifference(txt, cube, 0.1); !errors.Is(err, ErrNotMesh) {
		t.Errorf("error = %v, want ErrNotMesh", err)
	}
	// A text tool is fine.
	if err := s.BooleanDifference(cube, txt, 0.1); err != nil {
		t.Errorf("text tool: %v", err)
	}
}

func TestMaterials(t *testing.T) {
	s := NewScene()
	o := s.AddCube(1, model3d.Coord3D{})
	if o.ActiveMaterial() != nil {
		t.Error("new object has an active material")
	}
	red := &Material{Name: "Red", Color: [4]float64{1, 0, 0, 1}}
	blue := &Material{Name: "Blue", Color: [4]float64{0, 0, 1, 1}}
	o.AddMaterial(red)
	o.AddMaterial(blue)
	if o.ActiveMaterial() != blue {
		t.Errorf("active = %v, want Blue", o.ActiveMaterial())
	}
	if got := o.Materials(); len(got) != 2 || got[0] != red {
		t.Errorf("Materials() = %v", got)
	}
}
