package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qmuntal/gltf"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/kernel"
)

// testScene returns a cube with a sphere parented to it, both final and
// both with materials.
func testScene(t *testing.T) (*kernel.Scene, *kernel.Object, *kernel.Object) {
	t.Helper()
	s := kernel.NewScene()
	cube := s.AddCube(2, model3d.Coord3D{})
	sphere := s.AddUVSphere(0.5, 8, 4, model3d.XYZ(0, -0.8, 0))
	if err := s.SetParent(sphere, cube); err != nil {
		t.Fatal(err)
	}
	cube.AddMaterial(&kernel.Material{Name: "IconCubeMat", Color: [4]float64{0, 0, 0, 1}})
	sphere.AddMaterial(&kernel.Material{Name: "IconTextMat", Color: [4]float64{0, 0.318546, 1, 1}})
	if err := s.SetFinal(sphere, cube); err != nil {
		t.Fatal(err)
	}
	return s, cube, sphere
}

func TestExportWritesArtifact(t *testing.T) {
	for _, f := range []Format{GLB, FBX} {
		t.Run(f.String(), func(t *testing.T) {
			_, cube, sphere := testScene(t)
			dir := t.TempDir()
			path := filepath.Join(dir, FileName(glyph3d.GlyphSpec{Name: "house"}, 1, f))

			a, err := NewExporter().Export([]*kernel.Object{sphere, cube}, path, f)
			if err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			sum := sha256.Sum256(data)
			if a.Path != path || a.Format != f || a.Size != int64(len(data)) || a.SHA256 != hex.EncodeToString(sum[:]) {
				t.Errorf("artifact = %+v", a)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("directory has %d entries, want only the model", len(entries))
			}
		})
	}
}

func TestExportDeterministic(t *testing.T) {
	for _, f := range []Format{GLB, FBX} {
		t.Run(f.String(), func(t *testing.T) {
			dir := t.TempDir()
			var outputs [][]byte
			for i := 0; i < 2; i++ {
				_, cube, sphere := testScene(t)
				path := filepath.Join(dir, "model."+f.Ext())
				if _, err := NewExporter().Export([]*kernel.Object{sphere, cube}, path, f); err != nil {
					t.Fatal(err)
				}
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatal(err)
				}
				outputs = append(outputs, data)
			}
			if !bytes.Equal(outputs[0], outputs[1]) {
				t.Error("repeated export produced different bytes")
			}
		})
	}
}

func TestExportOverwrites(t *testing.T) {
	_, cube, sphere := testScene(t)
	path := filepath.Join(t.TempDir(), "U0041.glb")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewExporter().Export([]*kernel.Object{cube, sphere}, path, GLB); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("glTF")) {
		t.Errorf("file not replaced: starts with %q", data[:min(len(data), 8)])
	}
}

func TestExportScopeErrors(t *testing.T) {
	s, cube, sphere := testScene(t)
	loose := s.AddCube(1, model3d.Coord3D{})
	dir := t.TempDir()

	tests := []struct {
		name    string
		objects []*kernel.Object
		format  Format
		want    error
	}{
		{"empty", nil, GLB, ErrNothingToExport},
		{"not final", []*kernel.Object{cube, loose}, GLB, ErrNotFinal},
		{"duplicate", []*kernel.Object{cube, cube}, FBX, ErrDuplicateObject},
		{"unknown format", []*kernel.Object{cube, sphere}, Format(7), ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".bin")
			_, err := NewExporter().Export(tt.objects, path, tt.format)
			if !errors.Is(err, glyph3d.ErrExport) || !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want ErrExport wrapping %v", err, tt.want)
			}
			var eerr *glyph3d.ExportError
			if !errors.As(err, &eerr) || eerr.Path != path {
				t.Errorf("error does not name %s: %v", path, err)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("file written for failed export")
			}
		})
	}
}

func TestExportMissingDirectory(t *testing.T) {
	_, cube, sphere := testScene(t)
	path := filepath.Join(t.TempDir(), "missing", "U0041.fbx")
	_, err := NewExporter().Export([]*kernel.Object{cube, sphere}, path, FBX)
	if !errors.Is(err, glyph3d.ErrExport) {
		t.Errorf("error = %v, want ErrExport", err)
	}
}

func TestExportGLBContents(t *testing.T) {
	_, cube, sphere := testScene(t)
	path := filepath.Join(t.TempDir(), "house_s1.glb")
	if _, err := NewExporter(WithGenerator("test")).Export([]*kernel.Object{sphere, cube}, path, GLB); err != nil {
		t.Fatal(err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Asset.Generator != "test" {
		t.Errorf("generator = %q", doc.Asset.Generator)
	}
	if len(doc.Nodes) != 2 || len(doc.Meshes) != 2 || len(doc.Materials) != 2 {
		t.Fatalf("nodes/meshes/materials = %d/%d/%d, want 2/2/2", len(doc.Nodes), len(doc.Meshes), len(doc.Materials))
	}
	// Input order: sphere is node 0, cube node 1 with the sphere as child.
	if doc.Nodes[0].Name != "Sphere" || doc.Nodes[1].Name != "Cube" {
		t.Errorf("node names = %q %q", doc.Nodes[0].Name, doc.Nodes[1].Name)
	}
	if diff := cmp.Diff([]int{0}, doc.Nodes[1].Children); diff != "" {
		t.Errorf("cube children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, doc.Scenes[0].Nodes); diff != "" {
		t.Errorf("scene roots mismatch (-want +got):\n%s", diff)
	}
	// Z-up (0,-0.8,0) is Y-up (0,0,0.8).
	if diff := cmp.Diff([3]float64{0, 0, 0.8}, doc.Nodes[0].Translation); diff != "" {
		t.Errorf("sphere translation mismatch (-want +got):\n%s", diff)
	}
	mat := doc.Materials[*doc.Meshes[*doc.Nodes[0].Mesh].Primitives[0].Material]
	if mat.Name != "IconTextMat" || *mat.PBRMetallicRoughness.BaseColorFactor != [4]float64{0, 0.318546, 1, 1} {
		t.Errorf("sphere material = %q %v", mat.Name, mat.PBRMetallicRoughness.BaseColorFactor)
	}

	cubePrim := doc.Meshes[*doc.Nodes[1].Mesh].Primitives[0]
	if n := doc.Accessors[*cubePrim.Indices].Count; n != 36 {
		t.Errorf("cube indices = %d, want 36", n)
	}
}

func TestExportParentOutsideScope(t *testing.T) {
	_, _, sphere := testScene(t)
	path := filepath.Join(t.TempDir(), "child.glb")
	if _, err := NewExporter().Export([]*kernel.Object{sphere}, path, GLB); err != nil {
		t.Fatal(err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Name != "Sphere" {
		t.Fatalf("nodes = %d", len(doc.Nodes))
	}
	if diff := cmp.Diff([]int{0}, doc.Scenes[0].Nodes); diff != "" {
		t.Errorf("child not exported as root (-want +got):\n%s", diff)
	}
}

func TestExportEmptyMesh(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	lib := kernel.NewFontLibrary("")
	if err := lib.Open(fontPath); err != nil {
		t.Fatal(err)
	}
	s := kernel.NewScene()
	space, err := s.AddText(lib.At(0), ' ', kernel.TextParams{Size: 1, Extrude: 0.02})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetFinal(space); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, f := range []Format{GLB, FBX} {
		path := filepath.Join(dir, "U0020."+f.Ext())
		if _, err := NewExporter().Export([]*kernel.Object{space}, path, f); err != nil {
			t.Fatalf("%v: %v", f, err)
		}
	}
	doc, err := gltf.Open(filepath.Join(dir, "U0020.glb"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Mesh != nil || len(doc.Meshes) != 0 {
		t.Errorf("empty glyph exported %d nodes, %d meshes", len(doc.Nodes), len(doc.Meshes))
	}
}
