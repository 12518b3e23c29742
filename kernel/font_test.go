package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFontLibrary(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "goregular.ttf")
	bad := filepath.Join(dir, "notafont.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("not a font at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, backend := range []string{"", "ximage", "gotext"} {
		t.Run("backend="+backend, func(t *testing.T) {
			lib := NewFontLibrary(backend)

			if err := lib.Open(bad); err != nil {
				t.Errorf("Open(bad) = %v, want nil", err)
			}
			if lib.Len() != 0 {
				t.Errorf("Len() = %d after bad font, want 0", lib.Len())
			}

			if err := lib.Open(filepath.Join(dir, "missing.ttf")); err == nil {
				t.Error("Open(missing) = nil, want error")
			}

			if err := lib.Open(good); err != nil {
				t.Fatal(err)
			}
			if lib.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", lib.Len())
			}
			f := lib.At(0)
			if f.Name() != "Go" || f.Path() != good || f.Source() == nil {
				t.Errorf("font = %q %q", f.Name(), f.Path())
			}
			if lib.At(1) != nil || lib.At(-1) != nil {
				t.Error("At out of range returned a font")
			}
		})
	}
}
