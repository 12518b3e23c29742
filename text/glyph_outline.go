package text

import "math"

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	// Op is the segment operation type.
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]Point
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo moves to a new point without drawing.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// GlyphOutline represents the vector outline of a glyph in font units.
// The outline consists of zero or more closed contours.
type GlyphOutline struct {
	// Segments is the list of path segments that make up the outline.
	Segments []OutlineSegment

	// Bounds is the bounding box of all segment points.
	Bounds Rect

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// GID is the glyph ID this outline represents.
	GID GlyphID
}

// IsEmpty returns true if the outline has no segments.
func (o *GlyphOutline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// SegmentCount returns the number of segments in the outline.
func (o *GlyphOutline) SegmentCount() int {
	if o == nil {
		return 0
	}
	return len(o.Segments)
}

// Clone creates a deep copy of the outline.
func (o *GlyphOutline) Clone() *GlyphOutline {
	if o == nil {
		return nil
	}

	clone := *o
	clone.Segments = make([]OutlineSegment, len(o.Segments))
	copy(clone.Segments, o.Segments)
	return &clone
}

// Scale returns a new outline with all coordinates scaled by the given factor.
func (o *GlyphOutline) Scale(factor float64) *GlyphOutline {
	return o.mapPoints(func(p Point) Point {
		return Point{X: p.X * factor, Y: p.Y * factor}
	}, factor)
}

// Translate returns a new outline with all coordinates translated by (dx, dy).
func (o *GlyphOutline) Translate(dx, dy float64) *GlyphOutline {
	return o.mapPoints(func(p Point) Point {
		return Point{X: p.X + dx, Y: p.Y + dy}
	}, 1)
}

func (o *GlyphOutline) mapPoints(f func(Point) Point, advanceFactor float64) *GlyphOutline {
	if o == nil {
		return nil
	}
	out := &GlyphOutline{
		Segments: make([]OutlineSegment, len(o.Segments)),
		Advance:  o.Advance * advanceFactor,
		GID:      o.GID,
	}
	for i, seg := range o.Segments {
		out.Segments[i].Op = seg.Op
		for j := 0; j < seg.Op.pointCount(); j++ {
			out.Segments[i].Points[j] = f(seg.Points[j])
		}
	}
	out.Bounds = out.computeBounds()
	return out
}

// pointCount returns how many entries of OutlineSegment.Points op uses.
func (op OutlineOp) pointCount() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// computeBounds returns the bounding box of all segment points.
// An empty outline has a zero Rect.
func (o *GlyphOutline) computeBounds() Rect {
	if len(o.Segments) == 0 {
		return Rect{}
	}
	r := emptyRect()
	for _, seg := range o.Segments {
		for j := 0; j < seg.Op.pointCount(); j++ {
			r = r.Extend(seg.Points[j])
		}
	}
	return r
}

// Contour is a closed polygon. The closing edge from the last point back
// to the first is implicit.
type Contour []Point

// SignedArea returns the shoelace area of the contour. It is positive for
// counter-clockwise contours.
func (c Contour) SignedArea() float64 {
	var a float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Reverse reverses the contour in place.
func (c Contour) Reverse() {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// Contours flattens the outline into closed polygons. Curves are
// subdivided until every control point lies within tolerance of its chord.
// Repeated points are dropped, and contours with fewer than three distinct
// points are discarded.
func (o *GlyphOutline) Contours(tolerance float64) []Contour {
	if o.IsEmpty() {
		return nil
	}
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}

	var contours []Contour
	var cur Contour
	var pen Point

	flush := func() {
		cur = dedupeClosed(cur)
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, seg := range o.Segments {
		switch seg.Op {
		case OutlineOpMoveTo:
			flush()
			pen = seg.Points[0]
			cur = append(cur, pen)
		case OutlineOpLineTo:
			if cur == nil {
				cur = append(cur, pen)
			}
			pen = seg.Points[0]
			cur = append(cur, pen)
		case OutlineOpQuadTo:
			if cur == nil {
				cur = append(cur, pen)
			}
			pts := flattenQuadratic(pen, seg.Points[0], seg.Points[1], tolerance, 0)
			cur = append(cur, pts[1:]...)
			pen = seg.Points[1]
		case OutlineOpCubicTo:
			if cur == nil {
				cur = append(cur, pen)
			}
			pts := flattenCubic(pen, seg.Points[0], seg.Points[1], seg.Points[2], tolerance, 0)
			cur = append(cur, pts[1:]...)
			pen = seg.Points[2]
		}
	}
	flush()
	return contours
}

// dedupeClosed removes consecutive duplicate points and a trailing point
// equal to the first.
func dedupeClosed(c Contour) Contour {
	if len(c) == 0 {
		return c
	}
	out := c[:1]
	for _, p := range c[1:] {
		if !samePoint(p, out[len(out)-1]) {
			out = append(out, p)
		}
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(a, b Point) bool {
	return math.Abs(a.X-b.X) < pointEpsilon && math.Abs(a.Y-b.Y) < pointEpsilon
}
