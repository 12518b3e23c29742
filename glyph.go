package glyph3d

import (
	"fmt"
	"unicode/utf8"
)

// GlyphSpec names one glyph to build.
// Name is the symbolic icon name and may be empty for plain glyphs.
type GlyphSpec struct {
	Name      string
	Codepoint rune
}

// Identifier returns the token used in output file names: the symbolic name
// when present, otherwise "U" followed by at least four uppercase hex digits.
func (g GlyphSpec) Identifier() string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("U%04X", g.Codepoint)
}

// Valid reports whether the codepoint is a Unicode scalar value.
func (g GlyphSpec) Valid() bool {
	return utf8.ValidRune(g.Codepoint)
}

// String returns a human readable form used in logs and error messages.
func (g GlyphSpec) String() string {
	if g.Name != "" {
		return fmt.Sprintf("%s (U+%04X)", g.Name, g.Codepoint)
	}
	return fmt.Sprintf("U+%04X", g.Codepoint)
}

// Dedupe returns specs with duplicate codepoints removed. The first
// occurrence of each codepoint wins and relative order is preserved.
func Dedupe(specs []GlyphSpec) []GlyphSpec {
	seen := make(map[rune]struct{}, len(specs))
	out := make([]GlyphSpec, 0, len(specs))
	for _, s := range specs {
		if _, ok := seen[s.Codepoint]; ok {
			continue
		}
		seen[s.Codepoint] = struct{}{}
		out = append(out, s)
	}
	return out
}
