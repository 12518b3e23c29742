package export

import (
	"bytes"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/unixpickle/model3d/model3d"

	"github.com/gogpu/glyph3d/kernel"
)

// yUp converts a Z-up scene coordinate to glTF's Y-up frame.
func yUp(c model3d.Coord3D) [3]float32 {
	return [3]float32{float32(c.X), float32(c.Z), float32(-c.Y)}
}

// encodeGLB writes the graph as binary glTF. Every object becomes a node
// with its local transform; objects with geometry get one mesh whose
// triangles carry flat normals.
func encodeGLB(g *sceneGraph, generator string) ([]byte, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	for _, m := range g.materials {
		c := m.Color
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: m.Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{c[0], c[1], c[2], c[3]},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(0.5),
			},
		})
	}

	for _, n := range g.nodes {
		gn := &gltf.Node{
			Name:        n.obj.Name(),
			Translation: [3]float64{n.obj.Location.X, n.obj.Location.Z, -n.obj.Location.Y},
			Rotation:    yUpQuaternion(kernel.Quaternion(n.obj.Rotation)),
			Scale:       [3]float64{n.obj.Scale.X, n.obj.Scale.Z, n.obj.Scale.Y},
			Children:    n.children,
		}
		if len(n.tris) > 0 {
			gn.Mesh = gltf.Index(len(doc.Meshes))
			doc.Meshes = append(doc.Meshes, glbMesh(doc, n))
		}
		doc.Nodes = append(doc.Nodes, gn)
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, g.roots...)
	if len(doc.Meshes) == 0 {
		// glTF forbids zero-length buffers.
		doc.Buffers = nil
	}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func glbMesh(doc *gltf.Document, n node) *gltf.Mesh {
	positions := make([][3]float32, 0, 3*len(n.tris))
	normals := make([][3]float32, 0, 3*len(n.tris))
	indices := make([]uint32, 0, 3*len(n.tris))
	for _, t := range n.tris {
		nrm := yUp(faceNormal(t))
		for _, c := range t {
			indices = append(indices, uint32(len(positions)))
			positions = append(positions, yUp(c))
			normals = append(normals, nrm)
		}
	}

	prim := &gltf.Primitive{
		Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
		Attributes: map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
		},
	}
	if n.material >= 0 {
		prim.Material = gltf.Index(n.material)
	}
	return &gltf.Mesh{Name: n.obj.Name(), Primitives: []*gltf.Primitive{prim}}
}

// yUpQuaternion changes the basis of an (x, y, z, w) rotation from Z-up
// to Y-up.
func yUpQuaternion(q [4]float64) [4]float64 {
	return [4]float64{q[0], q[2], -q[1], q[3]}
}
