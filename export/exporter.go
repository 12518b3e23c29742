package export

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/kernel"
)

// DefaultGenerator is written into the asset metadata of every file.
const DefaultGenerator = "glyph3d " + glyph3d.Version

// Export scope errors, wrapped in *glyph3d.ExportError.
var (
	ErrNothingToExport = errors.New("export: no objects")
	ErrNotFinal        = errors.New("export: object is not marked final")
	ErrDuplicateObject = errors.New("export: object listed twice")
	ErrUnknownFormat   = errors.New("export: unknown format")
)

// Artifact describes a written model file.
type Artifact struct {
	Path   string
	Format Format
	Glyph  glyph3d.GlyphSpec
	Style  int
	Size   int64
	SHA256 string // hex
}

// Exporter writes kernel objects to model files.
type Exporter struct {
	generator string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithGenerator sets the generator name stored in the files.
func WithGenerator(name string) Option {
	return func(e *Exporter) {
		if name != "" {
			e.generator = name
		}
	}
}

// NewExporter returns an Exporter with the given options applied.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{generator: DefaultGenerator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes objects to path in format f, replacing any existing file.
// Only the listed objects are written and each must be marked final.
// Parent links to objects outside the list are dropped. The file is
// written to a temporary name in the same directory and renamed into
// place. Failures are returned as *glyph3d.ExportError.
func (e *Exporter) Export(objects []*kernel.Object, path string, f Format) (Artifact, error) {
	if err := checkScope(objects); err != nil {
		return Artifact{}, &glyph3d.ExportError{Path: path, Err: err}
	}

	g := buildGraph(objects)
	var (
		data []byte
		err  error
	)
	switch f {
	case GLB:
		data, err = encodeGLB(g, e.generator)
	case FBX:
		data, err = encodeFBX(g, e.generator)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	if err != nil {
		return Artifact{}, &glyph3d.ExportError{Path: path, Err: err}
	}

	if err := writeFileAtomic(path, data); err != nil {
		return Artifact{}, &glyph3d.ExportError{Path: path, Err: err}
	}

	sum := sha256.Sum256(data)
	a := Artifact{
		Path:   path,
		Format: f,
		Size:   int64(len(data)),
		SHA256: hex.EncodeToString(sum[:]),
	}
	glyph3d.Logger().Info("artifact written", "path", path, "format", f.String(),
		"objects", len(objects), "bytes", a.Size)
	return a, nil
}

func checkScope(objects []*kernel.Object) error {
	if len(objects) == 0 {
		return ErrNothingToExport
	}
	seen := make(map[*kernel.Object]bool, len(objects))
	for _, o := range objects {
		if o == nil {
			return ErrNothingToExport
		}
		if seen[o] {
			return fmt.Errorf("%w: %s", ErrDuplicateObject, o.Name())
		}
		seen[o] = true
		if !o.Final() {
			return fmt.Errorf("%w: %s", ErrNotFinal, o.Name())
		}
	}
	return nil
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory.
func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
