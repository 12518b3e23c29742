package kernel

import (
	"errors"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestAddText(t *testing.T) {
	f := testFont(t)
	tests := []struct {
		name   string
		params TextParams
		wantZ  float64
	}{
		{"extruded", TextParams{Size: 1, Extrude: 0.1, AlignCenter: true}, 0.1},
		{"bevelled", TextParams{Size: 1, Extrude: 0.1, BevelDepth: 0.02, BevelResolution: 2, AlignCenter: true}, 0.12},
		{"bevel only", TextParams{Size: 1, BevelDepth: 0.03, BevelResolution: 0, AlignCenter: true}, 0.03},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			o, err := s.AddText(f, 'O', tt.params)
			if err != nil {
				t.Fatal(err)
			}
			if o.Kind() != KindText || o.Name() != "Text" {
				t.Errorf("object = %v %q, want Text", o.Kind(), o.Name())
			}
			if r, ok := o.Glyph(); !ok || r != 'O' {
				t.Errorf("Glyph() = %q, %v", r, ok)
			}

			m := o.Mesh()
			if len(m.TriangleSlice()) == 0 {
				t.Fatal("empty mesh")
			}
			if v := volume(m); v <= 0 {
				t.Errorf("volume = %v, want positive", v)
			}
			lo, hi := meshBounds(m)
			if !near(lo.Z, -tt.wantZ, 1e-9) || !near(hi.Z, tt.wantZ, 1e-9) {
				t.Errorf("z range = %v..%v, want ±%v", lo.Z, hi.Z, tt.wantZ)
			}
			// Centering uses the unbevelled outline; the bevel grows it evenly.
			if !near(lo.X+hi.X, 0, 1e-3) || !near(lo.Y+hi.Y, 0, 1e-3) {
				t.Errorf("bounds %v..%v not centered", lo, hi)
			}
		})
	}
}

func TestAddTextBevelGrowsOutline(t *testing.T) {
	f := testFont(t)
	s := NewScene()
	plain, err := s.AddText(f, 'H', TextParams{Size: 1, Extrude: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	bevelled, err := s.AddText(f, 'H', TextParams{Size: 1, Extrude: 0.1, BevelDepth: 0.02, BevelResolution: 3})
	if err != nil {
		t.Fatal(err)
	}
	if bevelled.Name() != "Text.001" {
		t.Errorf("second text name = %q", bevelled.Name())
	}
	lo0, hi0 := meshBounds(plain.Mesh())
	lo1, hi1 := meshBounds(bevelled.Mesh())
	// H is made of straight edges, so the offset is exact.
	if !near(lo1.X, lo0.X-0.02, 1e-9) || !near(hi1.X, hi0.X+0.02, 1e-9) {
		t.Errorf("x range %v..%v, want %v..%v grown by 0.02", lo1.X, hi1.X, lo0.X, hi0.X)
	}
	if volume(bevelled.Mesh()) <= volume(plain.Mesh()) {
		t.Error("bevel did not add volume")
	}
}

func TestAddTextOrigin(t *testing.T) {
	f := testFont(t)
	s := NewScene()
	o, err := s.AddText(f, 'A', TextParams{Size: 2, Extrude: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := meshBounds(o.Mesh())
	// 'A' sits on the baseline with its left edge near the origin.
	if !near(lo.Y, 0, 1e-3) || lo.X < -0.01 || hi.Y < 1 || hi.Y > 2 {
		t.Errorf("bounds %v..%v, want glyph above the baseline", lo, hi)
	}
}

func TestAddTextFlat(t *testing.T) {
	f := testFont(t)
	s := NewScene()
	o, err := s.AddText(f, 'A', TextParams{Size: 1})
	if err != nil {
		t.Fatal(err)
	}
	tris := o.Mesh().TriangleSlice()
	if len(tris) == 0 {
		t.Fatal("empty mesh")
	}
	for _, tri := range tris {
		if tri[0].Z != 0 || tri[1].Z != 0 || tri[2].Z != 0 {
			t.Fatalf("flat glyph has vertex off the plane: %v", tri)
		}
		if n := tri.Normal(); n.Z <= 0 {
			t.Fatalf("flat glyph triangle faces %v", n)
		}
	}
}

func TestAddTextEdgeCases(t *testing.T) {
	f := testFont(t)
	s := NewScene()

	if _, err := s.AddText(nil, 'A', TextParams{Size: 1}); !errors.Is(err, ErrNilFont) {
		t.Errorf("nil font error = %v, want ErrNilFont", err)
	}

	space, err := s.AddText(f, ' ', TextParams{Size: 1, Extrude: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(space.Mesh().TriangleSlice()); n != 0 {
		t.Errorf("space triangles = %d, want 0", n)
	}

	missing, err := s.AddText(f, '', TextParams{Size: 1, Extrude: 0.1})
	if err != nil {
		t.Fatalf("unmapped rune: %v", err)
	}
	if r, _ := missing.Glyph(); r != '' {
		t.Errorf("Glyph() = %U, want U+F015", r)
	}

	located, err := s.AddText(f, 'A', TextParams{Size: 1, Location: model3d.XYZ(0, -0.8, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if located.Location != model3d.XYZ(0, -0.8, 0) {
		t.Errorf("Location = %v", located.Location)
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name       string
		extrude    float64
		depth      float64
		resolution int
		want       int
	}{
		{"no bevel", 0.1, 0, 4, 2},
		{"chamfer", 0.1, 0.02, 0, 4},
		{"rounded", 0.1, 0.02, 3, 10},
		{"bevel only", 0, 0.02, 3, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := profile(tt.extrude, tt.depth, tt.resolution)
			if len(steps) != tt.want {
				t.Fatalf("steps = %d, want %d", len(steps), tt.want)
			}
			first, last := steps[0], steps[len(steps)-1]
			if first.offset != 0 || last.offset != 0 {
				t.Errorf("profile does not start and end on the caps: %v %v", first, last)
			}
			if !near(first.z, tt.extrude+tt.depth, 1e-12) || !near(last.z, -(tt.extrude+tt.depth), 1e-12) {
				t.Errorf("z range %v..%v", first.z, last.z)
			}
		})
	}
}
