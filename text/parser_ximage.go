package text

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
//
// sfnt loads outlines in pixels at a given ppem with the Y axis pointing
// down. Loading at ppem == unitsPerEm yields font units; Y is negated on
// the way out.
type ximageParsedFont struct {
	font *opentype.Font

	// mu guards buf, which sfnt requires to be used by one caller at a time.
	mu  sync.Mutex
	buf sfnt.Buffer
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	return f.name(sfnt.NameIDFamily)
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	return f.name(sfnt.NameIDFull)
}

func (f *ximageParsedFont) name(id sfnt.NameID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, err := f.font.Name(&f.buf, id); err == nil {
		return s
	}
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) (GlyphID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// unitsPPEM returns the ppem at which sfnt reports font units.
func (f *ximageParsedFont) unitsPPEM() fixed.Int26_6 {
	return fixed.Int26_6(f.font.UnitsPerEm()) << 6
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	advance, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.unitsPPEM(), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(advance)
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ppem := f.unitsPPEM()
	segments, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, ErrNoOutline
		}
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	outline := &GlyphOutline{
		Segments: make([]OutlineSegment, 0, len(segments)),
		GID:      gid,
	}
	for _, seg := range segments {
		var out OutlineSegment
		n := 0
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op, n = OutlineOpMoveTo, 1
		case sfnt.SegmentOpLineTo:
			out.Op, n = OutlineOpLineTo, 1
		case sfnt.SegmentOpQuadTo:
			out.Op, n = OutlineOpQuadTo, 2
		case sfnt.SegmentOpCubeTo:
			out.Op, n = OutlineOpCubicTo, 3
		}
		for i := 0; i < n; i++ {
			out.Points[i] = Point{
				X: fixedToFloat64(seg.Args[i].X),
				Y: -fixedToFloat64(seg.Args[i].Y),
			}
		}
		outline.Segments = append(outline.Segments, out)
	}
	outline.Bounds = outline.computeBounds()

	advance, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), ppem, font.HintingNone)
	if err == nil {
		outline.Advance = fixedToFloat64(advance)
	}
	return outline, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
