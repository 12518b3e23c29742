package text

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-text/typesetting/font"
	"seehuhn.de/go/sfnt"
)

// Info describes a font file: naming, vertical metrics and one entry for
// every character the cmap maps. Metrics are in font units.
type Info struct {
	FontFamily    string      `json:"fontFamily"`
	FontSubfamily string      `json:"fontSubfamily"`
	FullName      string      `json:"fullName"`
	Version       string      `json:"version"`
	Copyright     string      `json:"copyright,omitempty"`
	Trademark     string      `json:"trademark,omitempty"`
	UnitsPerEm    int         `json:"unitsPerEm"`
	XMin          float64     `json:"xMin"`
	XMax          float64     `json:"xMax"`
	YMin          float64     `json:"yMin"`
	YMax          float64     `json:"yMax"`
	Ascender      float64     `json:"ascender"`
	Descender     float64     `json:"descender"`
	LineGap       float64     `json:"lineGap"`
	NumGlyphs     int         `json:"numGlyphs"`
	Glyphs        []GlyphInfo `json:"glyphs"`
}

// GlyphInfo holds the metrics of one mapped glyph.
type GlyphInfo struct {
	Unicode         rune    `json:"unicode"`
	AdvanceWidth    float64 `json:"advanceWidth"`
	LeftSideBearing float64 `json:"leftSideBearing"`
	XMin            float64 `json:"xMin"`
	XMax            float64 `json:"xMax"`
	YMin            float64 `json:"yMin"`
	YMax            float64 `json:"yMax"`
}

// ReadInfoFile reads a font file and returns its Info.
func ReadInfoFile(path string) (*Info, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return ReadInfo(data)
}

// ReadInfo returns the Info of a TTF or OTF font. Glyphs are sorted by
// code point. A glyph mapped from several code points is listed once per
// code point.
func ReadInfo(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	names, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	info := &Info{
		FontFamily:    names.FamilyName,
		FontSubfamily: names.Subfamily(),
		FullName:      names.FullName(),
		Version:       names.Version.String(),
		Copyright:     names.Copyright,
		Trademark:     names.Trademark,
		UnitsPerEm:    int(names.UnitsPerEm),
		Ascender:      float64(names.Ascent),
		Descender:     float64(names.Descent),
		LineGap:       float64(names.LineGap),
		NumGlyphs:     names.NumGlyphs(),
	}

	bounds := emptyRect()
	iter := face.Cmap.Iter()
	for iter.Next() {
		r, gid := iter.Char()
		g := GlyphInfo{
			Unicode:      r,
			AdvanceWidth: float64(face.HorizontalAdvance(gid)),
		}
		if ext, ok := face.GlyphExtents(gid); ok && ext.Width != 0 {
			// Height is negative: YBearing is the top edge.
			g.XMin = float64(ext.XBearing)
			g.XMax = float64(ext.XBearing + ext.Width)
			g.YMax = float64(ext.YBearing)
			g.YMin = float64(ext.YBearing + ext.Height)
			g.LeftSideBearing = g.XMin
			bounds = bounds.Extend(Point{X: g.XMin, Y: g.YMin}).Extend(Point{X: g.XMax, Y: g.YMax})
		}
		info.Glyphs = append(info.Glyphs, g)
	}
	sort.Slice(info.Glyphs, func(i, j int) bool {
		return info.Glyphs[i].Unicode < info.Glyphs[j].Unicode
	})
	if !math.IsInf(bounds.MinX, 1) {
		info.XMin, info.YMin = bounds.MinX, bounds.MinY
		info.XMax, info.YMax = bounds.MaxX, bounds.MaxY
	}
	return info, nil
}
