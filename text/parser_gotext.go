package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// gotextParser implements FontParser using github.com/go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte) (ParsedFont, error) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	ft, err := font.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	numGlyphs := 0
	if raw, err := ld.RawTable(ot.MustNewTag("maxp")); err == nil {
		if maxp, _, err := tables.ParseMaxp(raw); err == nil {
			numGlyphs = int(maxp.NumGlyphs)
		}
	}

	return &gotextParsedFont{
		face:      font.NewFace(ft),
		numGlyphs: numGlyphs,
	}, nil
}

// gotextParsedFont implements ParsedFont using font.Face.
// The face has no ppem set, so every metric is reported in font units.
type gotextParsedFont struct {
	face      *font.Face
	numGlyphs int
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string {
	return f.face.Describe().Family
}

// FullName implements ParsedFont.FullName.
// go-text does not expose the full name record.
func (f *gotextParsedFont) FullName() string {
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *gotextParsedFont) NumGlyphs() int {
	return f.numGlyphs
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *gotextParsedFont) GlyphAdvance(gid GlyphID) float64 {
	return float64(f.face.HorizontalAdvance(font.GID(gid)))
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *gotextParsedFont) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	data := f.face.GlyphData(font.GID(gid))
	if data == nil {
		return nil, fmt.Errorf("text: load glyph %d: not found", gid)
	}
	src, ok := data.(font.GlyphOutline)
	if !ok {
		return nil, ErrNoOutline
	}

	outline := &GlyphOutline{
		Segments: make([]OutlineSegment, 0, len(src.Segments)),
		GID:      gid,
		Advance:  f.GlyphAdvance(gid),
	}
	for _, seg := range src.Segments {
		var out OutlineSegment
		n := 0
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			out.Op, n = OutlineOpMoveTo, 1
		case ot.SegmentOpLineTo:
			out.Op, n = OutlineOpLineTo, 1
		case ot.SegmentOpQuadTo:
			out.Op, n = OutlineOpQuadTo, 2
		case ot.SegmentOpCubeTo:
			out.Op, n = OutlineOpCubicTo, 3
		}
		for i := 0; i < n; i++ {
			out.Points[i] = Point{X: float64(seg.Args[i].X), Y: float64(seg.Args[i].Y)}
		}
		outline.Segments = append(outline.Segments, out)
	}
	outline.Bounds = outline.computeBounds()
	return outline, nil
}
