// Package fontload registers a font file with the geometry kernel and
// hands back the new font.
//
// The kernel reports only I/O problems as errors; a file that does not
// parse leaves its registry unchanged. Load detects that by comparing the
// registry size before and after opening. Font collections (.ttc, .otc)
// are not supported and fail to load.
package fontload

import (
	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/kernel"
)

// FontRegistry is the kernel capability Load needs.
// *kernel.FontLibrary implements it.
type FontRegistry interface {
	Len() int
	Open(path string) error
	At(i int) *kernel.Font
}

var _ FontRegistry = (*kernel.FontLibrary)(nil)

// Load opens the font at path in reg and returns it. Any failure is a
// *glyph3d.FontLoadError naming the path.
func Load(reg FontRegistry, path string) (*kernel.Font, error) {
	before := reg.Len()
	if err := reg.Open(path); err != nil {
		return nil, &glyph3d.FontLoadError{Path: path, Err: err}
	}
	after := reg.Len()
	if after <= before {
		return nil, &glyph3d.FontLoadError{Path: path}
	}

	font := reg.At(after - 1)
	if font == nil {
		return nil, &glyph3d.FontLoadError{Path: path}
	}
	glyph3d.Logger().Info("font loaded", "name", font.Name(), "path", path)
	return font, nil
}
