// Package text provides the glyph outline capability used by glyph3d.
//
// The package separates font loading from outline consumption:
//
//   - FontSource: Heavyweight, shared font resource (parses TTF/OTF files)
//   - FontParser: Pluggable font parsing backend (default: golang.org/x/image)
//   - GlyphOutline: Vector outline of one glyph in font units, Y axis up
//
// Outlines are flattened into closed polygonal contours with
// GlyphOutline.Contours, which is what the geometry kernel extrudes.
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("fontawesome.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	outline, err := source.Outline('\uf015')
//	if err != nil {
//	    log.Fatal(err)
//	}
//	contours := outline.Contours(1.0)
//
// # Pluggable Parser Backend
//
// Two backends are registered:
//
//   - "ximage": golang.org/x/image/font/opentype (default)
//   - "gotext": github.com/go-text/typesetting/font
//
// Custom parsers can be registered for alternative implementations:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
//
// ReadInfo reports naming tables and per-glyph metrics for a font file;
// it backs the glyphinfo command.
package text
