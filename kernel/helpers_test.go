package kernel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/image/font/gofont/goregular"
)

// testFont opens goregular in a fresh library.
func testFont(t *testing.T) *Font {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	lib := NewFontLibrary("")
	if err := lib.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if lib.Len() != 1 {
		t.Fatalf("Len() = %d after Open, want 1", lib.Len())
	}
	return lib.At(0)
}

// volume returns the signed volume enclosed by a mesh; positive when the
// triangles face outwards.
func volume(m *model3d.Mesh) float64 {
	var v float64
	for _, t := range m.TriangleSlice() {
		v += t[0].Dot(t[1].Cross(t[2])) / 6
	}
	return v
}

// openEdges counts edges not shared by exactly one opposite-facing edge.
func openEdges(m *model3d.Mesh) int {
	type edge [2]model3d.Coord3D
	count := map[edge]int{}
	for _, t := range m.TriangleSlice() {
		for i := 0; i < 3; i++ {
			count[edge{t[i], t[(i+1)%3]}]++
		}
	}
	open := 0
	for e, n := range count {
		if count[edge{e[1], e[0]}] != n {
			open++
		}
	}
	return open
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearCoord(a, b model3d.Coord3D, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}
