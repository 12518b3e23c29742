package kernel

import (
	"math"
	"sort"

	"github.com/unixpickle/model3d/model2d"
)

// polygon is a filled region: a counter-clockwise outer boundary and the
// clockwise holes it directly contains.
type polygon struct {
	outer []model2d.Coord
	holes [][]model2d.Coord
}

// contours returns the outer boundary followed by the holes.
func (p polygon) contours() [][]model2d.Coord {
	out := make([][]model2d.Coord, 0, 1+len(p.holes))
	out = append(out, p.outer)
	return append(out, p.holes...)
}

// groupContours sorts closed contours into polygons by nesting depth:
// contours inside an even number of others are outer boundaries, the rest
// are holes of their innermost container. Contours are reoriented so the
// filled side is on the left.
func groupContours(contours [][]model2d.Coord) []polygon {
	n := len(contours)
	solids := make([]model2d.Solid, n)
	for i, c := range contours {
		solids[i] = model2d.NewColliderSolid(model2d.MeshToCollider(contourMesh(c)))
	}

	containers := make([][]int, n)
	for i, c := range contours {
		probe := c[0]
		for j := range contours {
			if i != j && solids[j].Contains(probe) {
				containers[i] = append(containers[i], j)
			}
		}
	}

	polyIndex := make([]int, n)
	var polys []polygon
	for i, c := range contours {
		if len(containers[i])%2 != 0 {
			continue
		}
		orient(c, true)
		polyIndex[i] = len(polys)
		polys = append(polys, polygon{outer: c})
	}
	for i, c := range contours {
		depth := len(containers[i])
		if depth%2 == 0 {
			continue
		}
		parent := -1
		for _, j := range containers[i] {
			if len(containers[j]) == depth-1 {
				parent = j
				break
			}
		}
		if parent < 0 {
			continue
		}
		orient(c, false)
		p := &polys[polyIndex[parent]]
		p.holes = append(p.holes, c)
	}
	return polys
}

// contourMesh builds the closed 2D segment mesh of a contour.
func contourMesh(c []model2d.Coord) *model2d.Mesh {
	m := model2d.NewMesh()
	for i := range c {
		m.Add(&model2d.Segment{c[i], c[(i+1)%len(c)]})
	}
	return m
}

// signedArea is positive for counter-clockwise contours.
func signedArea(c []model2d.Coord) float64 {
	var a float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// orient reverses c in place unless it already winds counter-clockwise
// (ccw true) or clockwise (ccw false).
func orient(c []model2d.Coord, ccw bool) {
	if (signedArea(c) > 0) == ccw {
		return
	}
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// cross2 is the z component of (a-o)×(b-o).
func cross2(o, a, b model2d.Coord) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// triangulate splits a polygon into counter-clockwise triangles using the
// polygon's own vertices. Holes are first bridged into the outer boundary,
// then ears are clipped.
func triangulate(p polygon) [][3]model2d.Coord {
	ring := append([]model2d.Coord(nil), p.outer...)

	holes := append([][]model2d.Coord(nil), p.holes...)
	sort.SliceStable(holes, func(i, j int) bool {
		return maxX(holes[i]) > maxX(holes[j])
	})
	for _, h := range holes {
		ring = bridgeHole(ring, h)
	}
	return earClip(ring)
}

func maxX(c []model2d.Coord) float64 {
	m := math.Inf(-1)
	for _, p := range c {
		m = math.Max(m, p.X)
	}
	return m
}

// bridgeHole joins hole into ring with a zero-width channel from the
// hole's rightmost vertex to a visible ring vertex.
func bridgeHole(ring, hole []model2d.Coord) []model2d.Coord {
	mi := 0
	for i, p := range hole {
		if p.X > hole[mi].X {
			mi = i
		}
	}
	m := hole[mi]

	// Cast a ray from m towards +X and find the nearest ring edge it hits.
	pi := -1
	bestX := math.Inf(1)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < m.X || x >= bestX {
			continue
		}
		bestX = x
		if a.X > b.X {
			pi = i
		} else {
			pi = (i + 1) % len(ring)
		}
	}
	if pi < 0 {
		pi = nearestVertex(ring, m)
	} else {
		pi = visibleVertex(ring, m, model2d.XY(bestX, m.Y), pi)
	}

	out := make([]model2d.Coord, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:pi+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(mi+k)%len(hole)])
	}
	out = append(out, ring[pi])
	out = append(out, ring[pi+1:]...)
	return out
}

// visibleVertex refines the bridge target: when ring vertices fall inside
// triangle (m, hit, ring[pi]) the one with the smallest angle to the ray
// is visible from m instead.
func visibleVertex(ring []model2d.Coord, m, hit model2d.Coord, pi int) int {
	p := ring[pi]
	best := pi
	bestTan := math.Inf(1)
	for i, v := range ring {
		if i == pi || v.X < m.X {
			continue
		}
		if !inTriangle(m, hit, p, v) && !inTriangle(m, p, hit, v) {
			continue
		}
		dx := v.X - m.X
		if dx <= 0 {
			continue
		}
		tan := math.Abs(v.Y-m.Y) / dx
		if tan < bestTan || (tan == bestTan && v.Sub(m).Norm() < ring[best].Sub(m).Norm()) {
			best, bestTan = i, tan
		}
	}
	return best
}

func nearestVertex(ring []model2d.Coord, m model2d.Coord) int {
	best := 0
	for i, v := range ring {
		if v.Sub(m).Norm() < ring[best].Sub(m).Norm() {
			best = i
		}
	}
	return best
}

// inTriangle reports whether p lies inside or on counter-clockwise
// triangle abc.
func inTriangle(a, b, c, p model2d.Coord) bool {
	return cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0
}

// earClip triangulates a counter-clockwise ring that may touch itself
// along bridge channels.
func earClip(ring []model2d.Coord) [][3]model2d.Coord {
	idx := make([]int, len(ring))
	for i := range idx {
		idx[i] = i
	}
	var tris [][3]model2d.Coord

	for len(idx) > 3 {
		clipped := false
		for k := 0; k < len(idx); k++ {
			n := len(idx)
			a, b, c := ring[idx[(k+n-1)%n]], ring[idx[k]], ring[idx[(k+1)%n]]
			cr := cross2(a, b, c)
			if math.Abs(cr) < degenerateArea {
				// Collinear or repeated vertex: drop it without a triangle.
				idx = append(idx[:k], idx[k+1:]...)
				clipped = true
				break
			}
			if cr < 0 || !isEar(ring, idx, k, a, b, c) {
				continue
			}
			tris = append(tris, [3]model2d.Coord{a, b, c})
			idx = append(idx[:k], idx[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Self-overlapping input: clip the most convex vertex so the
			// loop terminates.
			n := len(idx)
			best, bestCr := 0, math.Inf(-1)
			for k := 0; k < n; k++ {
				cr := cross2(ring[idx[(k+n-1)%n]], ring[idx[k]], ring[idx[(k+1)%n]])
				if cr > bestCr {
					best, bestCr = k, cr
				}
			}
			a, b, c := ring[idx[(best+n-1)%n]], ring[idx[best]], ring[idx[(best+1)%n]]
			if bestCr > 0 {
				tris = append(tris, [3]model2d.Coord{a, b, c})
			}
			idx = append(idx[:best], idx[best+1:]...)
		}
	}
	if len(idx) == 3 {
		a, b, c := ring[idx[0]], ring[idx[1]], ring[idx[2]]
		if cross2(a, b, c) > degenerateArea {
			tris = append(tris, [3]model2d.Coord{a, b, c})
		}
	}
	return tris
}

// isEar reports whether no other remaining vertex lies in triangle abc.
// Vertices coincident with a, b or c (bridge duplicates) are ignored.
func isEar(ring []model2d.Coord, idx []int, k int, a, b, c model2d.Coord) bool {
	n := len(idx)
	for j := 0; j < n; j++ {
		if j == k || j == (k+n-1)%n || j == (k+1)%n {
			continue
		}
		p := ring[idx[j]]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(a, b, c, p) {
			return false
		}
	}
	return true
}
