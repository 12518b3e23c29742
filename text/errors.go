package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrSourceClosed is returned when a closed FontSource is used.
	ErrSourceClosed = errors.New("text: font source is closed")

	// ErrNoOutline is returned when a glyph exists but carries no vector
	// outline (bitmap or color-only glyphs).
	ErrNoOutline = errors.New("text: glyph has no vector outline")
)

// UnknownParserError is returned when a parser name is not registered.
type UnknownParserError struct {
	Name string
}

func (e *UnknownParserError) Error() string {
	return "text: unknown font parser " + `"` + e.Name + `"`
}
