package kernel

import "github.com/unixpickle/model3d/model3d"

// degenerateArea is the doubled triangle area below which a triangle is
// dropped.
const degenerateArea = 1e-14

// addOriented adds triangle abc to m, flipped if needed so its normal
// points along hint. Degenerate triangles are skipped.
func addOriented(m *model3d.Mesh, a, b, c, hint model3d.Coord3D) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Norm() < degenerateArea {
		return
	}
	if n.Dot(hint) < 0 {
		b, c = c, b
	}
	m.Add(&model3d.Triangle{a, b, c})
}

// centroid returns the mean of three points.
func centroid(a, b, c model3d.Coord3D) model3d.Coord3D {
	return a.Add(b).Add(c).Scale(1.0 / 3)
}

// addOutward adds triangle abc facing away from center. It is correct for
// convex shapes around center.
func addOutward(m *model3d.Mesh, a, b, c, center model3d.Coord3D) {
	addOriented(m, a, b, c, centroid(a, b, c).Sub(center))
}

// meshBounds returns the mesh bounds, or two zero points for an empty mesh.
func meshBounds(m *model3d.Mesh) (model3d.Coord3D, model3d.Coord3D) {
	if m == nil || len(m.TriangleSlice()) == 0 {
		return model3d.Coord3D{}, model3d.Coord3D{}
	}
	return m.Min(), m.Max()
}
