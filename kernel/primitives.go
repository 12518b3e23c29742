package kernel

import (
	"math"

	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/glyph3d"
)

// AddCube creates an axis-aligned cube mesh with the given edge length,
// centered on its origin, placed at location.
func (s *Scene) AddCube(size float64, location model3d.Coord3D) *Object {
	h := size / 2
	o := s.add(&Object{
		kind:     KindMesh,
		mesh:     boxMesh(model3d.XYZ(-h, -h, -h), model3d.XYZ(h, h, h)),
		cuboid:   true,
		Location: location,
	}, "Cube")
	glyph3d.Logger().Debug("cube added", "name", o.name, "size", size)
	return o
}

// AddUVSphere creates a UV sphere mesh with the given number of
// longitudinal segments and latitudinal rings, placed at location.
func (s *Scene) AddUVSphere(radius float64, segments, rings int, location model3d.Coord3D) *Object {
	o := s.add(&Object{
		kind:     KindMesh,
		mesh:     uvSphereMesh(radius, max(segments, 3), max(rings, 2)),
		Location: location,
	}, "Sphere")
	glyph3d.Logger().Debug("sphere added", "name", o.name, "radius", radius,
		"segments", segments, "rings", rings)
	return o
}

// boxMesh returns the 12-triangle box spanning lo..hi.
func boxMesh(lo, hi model3d.Coord3D) *model3d.Mesh {
	m := model3d.NewMesh()
	center := lo.Add(hi).Scale(0.5)
	corner := func(x, y, z int) model3d.Coord3D {
		c := lo
		if x == 1 {
			c.X = hi.X
		}
		if y == 1 {
			c.Y = hi.Y
		}
		if z == 1 {
			c.Z = hi.Z
		}
		return c
	}
	for side := 0; side < 2; side++ {
		// One face per axis and side, corners listed around the face.
		faces := [3][4]model3d.Coord3D{
			{corner(side, 0, 0), corner(side, 1, 0), corner(side, 1, 1), corner(side, 0, 1)},
			{corner(0, side, 0), corner(1, side, 0), corner(1, side, 1), corner(0, side, 1)},
			{corner(0, 0, side), corner(1, 0, side), corner(1, 1, side), corner(0, 1, side)},
		}
		for _, f := range faces {
			addOutward(m, f[0], f[1], f[2], center)
			addOutward(m, f[0], f[2], f[3], center)
		}
	}
	return m
}

// roundedBoxMesh returns the box lo..hi with every edge and corner
// rounded by radius, using segments steps per quarter circle. The radius
// is clamped to the smallest half extent.
func roundedBoxMesh(lo, hi model3d.Coord3D, radius float64, segments int) *model3d.Mesh {
	center := lo.Add(hi).Scale(0.5)
	half := hi.Sub(lo).Scale(0.5)
	r := math.Max(0, math.Min(radius, math.Min(half.X, math.Min(half.Y, half.Z))))
	inner := half.Sub(model3d.XYZ(r, r, r))
	s := segments
	if s < 1 {
		s = 1
	}

	// Longitude runs through four quadrants and latitude through two
	// hemispheres. Each quarter repeats its boundary sample so the flat
	// faces between rounded edges come out as quads.
	quadX := [4]float64{1, -1, -1, 1}
	quadY := [4]float64{1, 1, -1, -1}
	cols := 4 * (s + 1)
	rows := 2 * (s + 1)
	grid := make([][]model3d.Coord3D, rows)
	for i := 0; i < rows; i++ {
		hemi := i / (s + 1)
		theta := (float64(hemi) + float64(i%(s+1))/float64(s)) * math.Pi / 2
		sz := 1.0
		if hemi == 1 {
			sz = -1
		}
		grid[i] = make([]model3d.Coord3D, cols)
		for j := 0; j < cols; j++ {
			q := j / (s + 1)
			phi := (float64(q) + float64(j%(s+1))/float64(s)) * math.Pi / 2
			base := center.Add(model3d.XYZ(quadX[q]*inner.X, quadY[q]*inner.Y, sz*inner.Z))
			dir := model3d.XYZ(math.Sin(theta)*math.Cos(phi), math.Sin(theta)*math.Sin(phi), math.Cos(theta))
			grid[i][j] = base.Add(dir.Scale(r))
		}
	}

	m := model3d.NewMesh()
	for i := 0; i+1 < rows; i++ {
		for j := 0; j < cols; j++ {
			k := (j + 1) % cols
			addOutward(m, grid[i][j], grid[i][k], grid[i+1][k], center)
			addOutward(m, grid[i][j], grid[i+1][k], grid[i+1][j], center)
		}
	}
	for _, i := range []int{0, rows - 1} {
		var face [4]model3d.Coord3D
		for q := 0; q < 4; q++ {
			face[q] = grid[i][q*(s+1)]
		}
		addOutward(m, face[0], face[1], face[2], center)
		addOutward(m, face[0], face[2], face[3], center)
	}
	return m
}

// uvSphereMesh returns a closed UV sphere around the origin.
func uvSphereMesh(radius float64, segments, rings int) *model3d.Mesh {
	m := model3d.NewMesh()
	var center model3d.Coord3D
	point := func(ring, seg int) model3d.Coord3D {
		theta := float64(ring) / float64(rings) * math.Pi
		phi := float64(seg%segments) / float64(segments) * 2 * math.Pi
		return model3d.XYZ(
			radius*math.Sin(theta)*math.Cos(phi),
			radius*math.Sin(theta)*math.Sin(phi),
			radius*math.Cos(theta),
		)
	}
	north := model3d.XYZ(0, 0, radius)
	south := model3d.XYZ(0, 0, -radius)
	for j := 0; j < segments; j++ {
		addOutward(m, north, point(1, j), point(1, j+1), center)
		addOutward(m, south, point(rings-1, j), point(rings-1, j+1), center)
		for i := 1; i+1 < rings; i++ {
			a, b := point(i, j), point(i, j+1)
			c, d := point(i+1, j+1), point(i+1, j)
			addOutward(m, a, b, c, center)
			addOutward(m, a, c, d, center)
		}
	}
	return m
}
