package text

import "math"

const (
	// defaultTolerance is the flattening tolerance in font units used when
	// the caller passes a non-positive value.
	defaultTolerance = 1.0

	// maxFlattenDepth bounds de Casteljau recursion for degenerate curves.
	maxFlattenDepth = 16

	// pointEpsilon is the distance below which two points are equal.
	pointEpsilon = 1e-9
)

// flattenQuadratic flattens a quadratic Bezier curve to line segments.
// The result starts at p0 and ends at p2.
func flattenQuadratic(p0, p1, p2 Point, flatness float64, depth int) []Point {
	if depth >= maxFlattenDepth || pointToLineDistance(p1, p0, p2) <= flatness {
		return []Point{p0, p2}
	}

	// Subdivide using de Casteljau's algorithm
	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	r := midpoint(q0, q1)

	left := flattenQuadratic(p0, q0, r, flatness, depth+1)
	right := flattenQuadratic(r, q1, p2, flatness, depth+1)
	return append(left[:len(left)-1], right...)
}

// flattenCubic flattens a cubic Bezier curve to line segments.
// The result starts at p0 and ends at p3.
func flattenCubic(p0, p1, p2, p3 Point, flatness float64, depth int) []Point {
	d := math.Max(pointToLineDistance(p1, p0, p3), pointToLineDistance(p2, p0, p3))
	if depth >= maxFlattenDepth || d <= flatness {
		return []Point{p0, p3}
	}

	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	q2 := midpoint(p2, p3)
	r0 := midpoint(q0, q1)
	r1 := midpoint(q1, q2)
	s := midpoint(r0, r1)

	left := flattenCubic(p0, q0, r0, s, flatness, depth+1)
	right := flattenCubic(s, r1, q2, p3, flatness, depth+1)
	return append(left[:len(left)-1], right...)
}

// pointToLineDistance returns the distance from p to the line through a and b.
func pointToLineDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	lenSq := dx*dx + dy*dy
	if lenSq < pointEpsilon {
		// a and b are the same point, return distance to a
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	cross := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	return math.Abs(cross) / math.Sqrt(lenSq)
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
