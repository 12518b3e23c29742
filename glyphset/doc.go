// Package glyphset resolves the set of glyphs a batch builds.
//
// A glyph set comes from exactly one source: literal characters, a UTF-8
// charset file, an inclusive codepoint range or an icon metadata table.
// Without a source the printable ASCII range 33..126 is used.
//
// Icon metadata tables are JavaScript files of the form
//
//	var icons = {
//	  "house": [576, 512, [], "f015", "M575.8 255.5..."],
//	  ...
//	}
//
// where the fourth array element is the hexadecimal codepoint.
// [ExtractIcons] reads such a table in source order.
//
// [Resolve] collapses duplicate codepoints, keeping the first occurrence.
package glyphset
