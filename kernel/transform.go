package kernel

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// RotationMatrix returns the rotation for XYZ Euler angles: Rz·Ry·Rx.
func RotationMatrix(r model3d.Coord3D) *model3d.Matrix3 {
	cx, sx := math.Cos(r.X), math.Sin(r.X)
	cy, sy := math.Cos(r.Y), math.Sin(r.Y)
	cz, sz := math.Cos(r.Z), math.Sin(r.Z)

	rx := &model3d.Matrix3{
		1, 0, 0,
		0, cx, -sx,
		0, sx, cx,
	}
	ry := &model3d.Matrix3{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	}
	rz := &model3d.Matrix3{
		cz, -sz, 0,
		sz, cz, 0,
		0, 0, 1,
	}
	return rz.Mul(ry).Mul(rx)
}

// Quaternion returns the unit quaternion (x, y, z, w) of the same XYZ
// Euler rotation as RotationMatrix.
func Quaternion(r model3d.Coord3D) [4]float64 {
	cx, sx := math.Cos(r.X/2), math.Sin(r.X/2)
	cy, sy := math.Cos(r.Y/2), math.Sin(r.Y/2)
	cz, sz := math.Cos(r.Z/2), math.Sin(r.Z/2)
	return [4]float64{
		cz*cy*sx - sz*sy*cx,
		cz*sy*cx + sz*cy*sx,
		sz*cy*cx - cz*sy*sx,
		cz*cy*cx + sz*sy*sx,
	}
}

// toParent maps a point from o's local space into its parent's space.
func (o *Object) toParent(p model3d.Coord3D) model3d.Coord3D {
	scaled := model3d.XYZ(p.X*o.Scale.X, p.Y*o.Scale.Y, p.Z*o.Scale.Z)
	return RotationMatrix(o.Rotation).MulColumn(scaled).Add(o.Location)
}

// fromParent is the inverse of toParent. Zero scale components map to 0.
func (o *Object) fromParent(p model3d.Coord3D) model3d.Coord3D {
	q := RotationMatrix(o.Rotation).Transpose().MulColumn(p.Sub(o.Location))
	return model3d.XYZ(safeDiv(q.X, o.Scale.X), safeDiv(q.Y, o.Scale.Y), safeDiv(q.Z, o.Scale.Z))
}

// ToWorld maps a point from o's local space into world space.
func (o *Object) ToWorld(p model3d.Coord3D) model3d.Coord3D {
	for cur := o; cur != nil; cur = cur.parent {
		p = cur.toParent(p)
	}
	return p
}

// FromWorld maps a world-space point into o's local space.
func (o *Object) FromWorld(p model3d.Coord3D) model3d.Coord3D {
	var chain []*Object
	for cur := o; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		p = chain[i].fromParent(p)
	}
	return p
}

// WorldMesh returns the object's geometry in world space.
func (o *Object) WorldMesh() *model3d.Mesh {
	if o.mesh == nil {
		return model3d.NewMesh()
	}
	return o.mesh.MapCoords(o.ToWorld)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
