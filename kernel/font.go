package kernel

import (
	"fmt"
	"os"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/text"
)

// Font is a font registered in a FontLibrary.
type Font struct {
	name   string
	path   string
	source *text.FontSource
}

// Name returns the font family name.
func (f *Font) Name() string { return f.name }

// Path returns the file the font was opened from.
func (f *Font) Path() string { return f.path }

// Source returns the parsed font.
func (f *Font) Source() *text.FontSource { return f.source }

// FontLibrary is the registry of opened fonts. Fonts stay loaded for the
// lifetime of the library.
type FontLibrary struct {
	fonts   []*Font
	backend string
}

// NewFontLibrary returns an empty library that parses fonts with the named
// text backend ("ximage", "gotext"; empty selects the default).
func NewFontLibrary(backend string) *FontLibrary {
	return &FontLibrary{backend: backend}
}

// Open reads and registers the font at path. Only I/O failures are
// returned as errors. A file that does not parse as a font is logged and
// leaves the library unchanged, so callers detect failure by comparing
// Len before and after.
func (l *FontLibrary) Open(path string) error {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("kernel: open font: %w", err)
	}

	src, err := text.NewFontSource(data, text.WithParser(l.backend))
	if err != nil {
		glyph3d.Logger().Warn("font not loaded", "path", path, "err", err)
		return nil
	}

	f := &Font{name: src.Name(), path: path, source: src}
	l.fonts = append(l.fonts, f)
	glyph3d.Logger().Debug("font opened", "path", path, "name", f.name, "parser", src.ParserName())
	return nil
}

// Len returns the number of registered fonts.
func (l *FontLibrary) Len() int { return len(l.fonts) }

// At returns the i-th registered font, or nil when i is out of range.
func (l *FontLibrary) At(i int) *Font {
	if i < 0 || i >= len(l.fonts) {
		return nil
	}
	return l.fonts[i]
}
