package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/text"
)

// flattenTolerance is the curve flattening tolerance as a fraction of the
// em square.
const flattenTolerance = 0.002

// TextParams configures a glyph outline object.
type TextParams struct {
	// Size is the em size in scene units.
	Size float64

	// Extrude is the half thickness: the glyph spans [-Extrude, Extrude]
	// along its local Z axis before bevelling.
	Extrude float64

	// BevelDepth grows the outline outwards with a rounded profile. The
	// front and back faces move out by the same amount.
	BevelDepth float64

	// BevelResolution is the number of extra profile segments of the
	// rounded bevel. Zero gives a straight chamfer.
	BevelResolution int

	// AlignCenter centers the glyph's bounding box on the origin.
	// Otherwise the glyph origin (left edge, baseline) is at the origin.
	AlignCenter bool

	// Location and Rotation become the object's transform.
	Location model3d.Coord3D
	Rotation model3d.Coord3D
}

type glyphData struct {
	font   *Font
	r      rune
	params TextParams
}

// AddText creates a glyph outline object for r. A rune the font does not
// map is drawn with the font's .notdef glyph and logged. Glyphs without
// contours (space) produce an empty mesh.
func (s *Scene) AddText(font *Font, r rune, p TextParams) (*Object, error) {
	if font == nil {
		return nil, ErrNilFont
	}

	src := font.Source()
	if !src.HasGlyph(r) {
		glyph3d.Logger().Warn("glyph missing from font, using .notdef",
			"rune", fmt.Sprintf("U+%04X", r), "font", font.Name())
	}

	mesh, err := textMesh(src, r, p)
	if err != nil {
		return nil, fmt.Errorf("kernel: add text U+%04X: %w", r, err)
	}
	if len(mesh.TriangleSlice()) == 0 {
		glyph3d.Logger().Warn("glyph has an empty outline", "rune", fmt.Sprintf("U+%04X", r))
	}

	o := s.add(&Object{
		kind:     KindText,
		glyph:    &glyphData{font: font, r: r, params: p},
		mesh:     mesh,
		Location: p.Location,
		Rotation: p.Rotation,
	}, "Text")
	glyph3d.Logger().Debug("text added", "name", o.name, "rune", fmt.Sprintf("U+%04X", r))
	return o, nil
}

// textMesh evaluates the outline of r into a closed mesh.
func textMesh(src *text.FontSource, r rune, p TextParams) (*model3d.Mesh, error) {
	outline, err := src.Outline(r)
	if errors.Is(err, text.ErrNoOutline) {
		glyph3d.Logger().Warn("glyph has no vector outline", "rune", fmt.Sprintf("U+%04X", r))
		return model3d.NewMesh(), nil
	}
	if err != nil {
		return nil, err
	}

	contours := glyphContours(outline, float64(src.UnitsPerEm()), p)
	return extrudePolygons(groupContours(contours), p), nil
}

// glyphContours flattens and scales an outline into scene units.
func glyphContours(outline *text.GlyphOutline, upem float64, p TextParams) [][]model2d.Coord {
	if upem <= 0 {
		return nil
	}
	scale := p.Size / upem
	raw := outline.Contours(upem * flattenTolerance)

	contours := make([][]model2d.Coord, 0, len(raw))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range raw {
		pts := make([]model2d.Coord, len(c))
		for i, pt := range c {
			q := model2d.XY(pt.X*scale, pt.Y*scale)
			pts[i] = q
			minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
			minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
		}
		contours = append(contours, pts)
	}

	if p.AlignCenter && len(contours) > 0 {
		center := model2d.XY((minX+maxX)/2, (minY+maxY)/2)
		for _, c := range contours {
			for i := range c {
				c[i] = c[i].Sub(center)
			}
		}
	}
	return contours
}

// profileStep is one ring of the extrusion profile: an outward offset of
// the outline and a height.
type profileStep struct {
	offset, z float64
}

// profile returns the rings from the front face edge to the back face
// edge.
func profile(extrude, depth float64, resolution int) []profileStep {
	if depth <= 0 {
		return []profileStep{{0, extrude}, {0, -extrude}}
	}
	segs := resolution + 1
	if segs < 1 {
		segs = 1
	}
	var steps []profileStep
	for k := 0; k <= segs; k++ {
		t := float64(k) / float64(segs) * math.Pi / 2
		steps = append(steps, profileStep{depth * math.Sin(t), extrude + depth*math.Cos(t)})
	}
	for k := segs; k >= 0; k-- {
		if k == segs && extrude == 0 {
			continue
		}
		t := float64(k) / float64(segs) * math.Pi / 2
		steps = append(steps, profileStep{depth * math.Sin(t), -(extrude + depth*math.Cos(t))})
	}
	return steps
}

// extrudePolygons builds a closed solid from filled polygons in the XY
// plane. With no extrusion and no bevel a single upward facing surface is
// produced instead.
func extrudePolygons(polys []polygon, p TextParams) *model3d.Mesh {
	m := model3d.NewMesh()
	flat := p.Extrude == 0 && p.BevelDepth <= 0
	top := p.Extrude + math.Max(p.BevelDepth, 0)
	steps := profile(p.Extrude, p.BevelDepth, p.BevelResolution)
	up := model3d.XYZ(0, 0, 1)
	down := model3d.XYZ(0, 0, -1)

	for _, poly := range polys {
		for _, t := range triangulate(poly) {
			if flat {
				addOriented(m, lift(t[0], 0), lift(t[1], 0), lift(t[2], 0), up)
				continue
			}
			addOriented(m, lift(t[0], top), lift(t[1], top), lift(t[2], top), up)
			addOriented(m, lift(t[0], -top), lift(t[1], -top), lift(t[2], -top), down)
		}
		if flat {
			continue
		}
		for _, c := range poly.contours() {
			addWalls(m, c, steps)
		}
	}
	return m
}

// addWalls connects the offset rings of one contour.
func addWalls(m *model3d.Mesh, c []model2d.Coord, steps []profileStep) {
	n := len(c)
	miters := make([]model2d.Coord, n)
	normals := make([]model2d.Coord, n)
	for i := range c {
		normals[i] = edgeNormal(c[i], c[(i+1)%n])
	}
	for i := range c {
		miters[i] = miter(normals[(i+n-1)%n], normals[i])
	}

	ring := func(s profileStep, i int) model3d.Coord3D {
		return lift(c[i].Add(miters[i].Scale(s.offset)), s.z)
	}
	for k := 0; k+1 < len(steps); k++ {
		s0, s1 := steps[k], steps[k+1]
		do, dz := s1.offset-s0.offset, s1.z-s0.z
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			nrm := normals[i]
			hint := model3d.XYZ(nrm.X*-dz, nrm.Y*-dz, do)
			a, b := ring(s0, i), ring(s0, j)
			cc, d := ring(s1, j), ring(s1, i)
			addOriented(m, a, b, cc, hint)
			addOriented(m, a, cc, d, hint)
		}
	}
}

// edgeNormal is the unit normal on the right of a→b, which points out of
// the filled region for contours with the fill on the left.
func edgeNormal(a, b model2d.Coord) model2d.Coord {
	d := b.Sub(a)
	n := model2d.XY(d.Y, -d.X)
	if l := n.Norm(); l > 0 {
		return n.Scale(1 / l)
	}
	return n
}

// miter returns the vertex offset direction between two edge normals,
// scaled so both edges move by one unit. Sharp corners are clamped.
func miter(n1, n2 model2d.Coord) model2d.Coord {
	sum := n1.Add(n2)
	l := sum.Norm()
	if l < 1e-9 {
		return n1
	}
	dir := sum.Scale(1 / l)
	return dir.Scale(1 / math.Max(dir.Dot(n1), 0.25))
}

func lift(c model2d.Coord, z float64) model3d.Coord3D {
	return model3d.XYZ(c.X, c.Y, z)
}
