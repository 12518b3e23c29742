package text

import "sort"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs go-text/typesetting).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// All measurements are in font units with the Y axis pointing up.
type ParsedFont interface {
	// Name returns the font family name.
	// Returns empty string if not available.
	Name() string

	// FullName returns the full font name.
	// Returns empty string if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune.
	// The boolean is false when the font does not map the rune.
	GlyphIndex(r rune) (GlyphID, bool)

	// GlyphAdvance returns the horizontal advance of a glyph.
	GlyphAdvance(gid GlyphID) float64

	// GlyphOutline returns the vector outline of a glyph.
	// Glyphs without contours (space) yield an empty outline.
	GlyphOutline(gid GlyphID) (*GlyphOutline, error)
}

// parserRegistry holds registered font parsers.
// The default parser is "ximage" (golang.org/x/image).
var parserRegistry = map[string]FontParser{
	"ximage": &ximageParser{},
	"gotext": &gotextParser{},
}

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserRegistry[name] = parser
}

// HasParser reports whether a parser is registered under name.
// The empty name refers to the default parser.
func HasParser(name string) bool {
	if name == "" {
		return true
	}
	_, ok := parserRegistry[name]
	return ok
}

// ParserNames returns the registered parser names in sorted order.
func ParserNames() []string {
	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getParser returns the parser by name.
func getParser(name string) (FontParser, error) {
	if name == "" {
		name = defaultParserName
	}
	p, ok := parserRegistry[name]
	if !ok {
		return nil, &UnknownParserError{Name: name}
	}
	return p, nil
}
