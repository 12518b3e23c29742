package export

import (
	"sort"

	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/glyph3d/kernel"
)

// triangles returns the triangles of m in a canonical order. Each
// triangle starts at its smallest vertex with winding kept, and the list is
// sorted, so equal meshes encode to equal bytes.
func triangles(m *model3d.Mesh) []model3d.Triangle {
	if m == nil {
		return nil
	}
	src := m.TriangleSlice()
	out := make([]model3d.Triangle, 0, len(src))
	for _, t := range src {
		tri := *t
		first := 0
		for i := 1; i < 3; i++ {
			if coordLess(tri[i], tri[first]) {
				first = i
			}
		}
		out = append(out, model3d.Triangle{tri[first], tri[(first+1)%3], tri[(first+2)%3]})
	}
	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if out[i][k] != out[j][k] {
				return coordLess(out[i][k], out[j][k])
			}
		}
		return false
	})
	return out
}

func coordLess(a, b model3d.Coord3D) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// node is an object prepared for encoding.
type node struct {
	obj      *kernel.Object
	tris     []model3d.Triangle
	parent   int // index into the node list, -1 for roots
	children []int
	material int // index into the material list, -1 for none
}

// sceneGraph is the export scope: objects in input order, their
// hierarchy restricted to the scope and the materials they use.
type sceneGraph struct {
	nodes     []node
	roots     []int
	materials []*kernel.Material
}

func buildGraph(objects []*kernel.Object) *sceneGraph {
	g := &sceneGraph{}
	index := make(map[*kernel.Object]int, len(objects))
	for i, o := range objects {
		index[o] = i
	}
	matIndex := make(map[*kernel.Material]int)

	for _, o := range objects {
		n := node{obj: o, tris: triangles(o.Mesh()), parent: -1, material: -1}
		if p, ok := index[o.Parent()]; ok && o.Parent() != nil {
			n.parent = p
		}
		if m := o.ActiveMaterial(); m != nil {
			mi, ok := matIndex[m]
			if !ok {
				mi = len(g.materials)
				matIndex[m] = mi
				g.materials = append(g.materials, m)
			}
			n.material = mi
		}
		g.nodes = append(g.nodes, n)
	}
	for i, n := range g.nodes {
		if n.parent < 0 {
			g.roots = append(g.roots, i)
			continue
		}
		g.nodes[n.parent].children = append(g.nodes[n.parent].children, i)
	}
	return g
}

// faceNormal returns the unit normal of t, or zero for degenerate
// triangles.
func faceNormal(t model3d.Triangle) model3d.Coord3D {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	if l := n.Norm(); l > 0 {
		return n.Scale(1 / l)
	}
	return model3d.Coord3D{}
}
