package export

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Fixed header values. Real timestamps would make repeated exports differ.
var (
	fbxFileID       = []byte{0x28, 0xb3, 0x2a, 0xeb, 0xb6, 0x24, 0xcc, 0xc2, 0xbf, 0xc8, 0xb0, 0x2a, 0xa9, 0x2b, 0xfc, 0xf1}
	fbxCreationTime = "1970-01-01 10:00:00:000"
)

// fbxIDBase offsets object ids away from the root node id 0.
const fbxIDBase int64 = 1_000_000

// fbxName joins an object name and class the way FBX stores them.
func fbxName(name, class string) string {
	return name + "\x00\x01" + class
}

// fbxProp builds a Properties70 entry.
func fbxProp(name, typ, label, flags string, values ...any) *fbxNode {
	return newFBXNode("P", append([]any{name, typ, label, flags}, values...)...)
}

// encodeFBX writes the graph as FBX 7.4 binary. The scene keeps its Z-up
// axes and declares them in GlobalSettings.
func encodeFBX(g *sceneGraph, creator string) ([]byte, error) {
	nextID := fbxIDBase
	newID := func() int64 {
		nextID++
		return nextID
	}

	objects := newFBXNode("Objects")
	connections := newFBXNode("Connections")

	modelIDs := make([]int64, len(g.nodes))
	for i := range g.nodes {
		modelIDs[i] = newID()
	}
	materialIDs := make([]int64, len(g.materials))
	for i, m := range g.materials {
		materialIDs[i] = newID()
		objects.add(fbxMaterial(materialIDs[i], m.Name, m.Color))
	}

	geometries := 0
	for i, n := range g.nodes {
		objects.add(fbxModel(modelIDs[i], n))

		parent := int64(0)
		if n.parent >= 0 {
			parent = modelIDs[n.parent]
		}
		connections.add(newFBXNode("C", "OO", modelIDs[i], parent))

		if len(n.tris) > 0 {
			geomID := newID()
			objects.add(fbxGeometry(geomID, n))
			connections.add(newFBXNode("C", "OO", geomID, modelIDs[i]))
			geometries++
		}
		if n.material >= 0 {
			connections.add(newFBXNode("C", "OO", materialIDs[n.material], modelIDs[i]))
		}
	}

	docID := newID()
	roots := []*fbxNode{
		fbxHeaderExtension(creator),
		newFBXNode("FileId", fbxFileID),
		newFBXNode("CreationTime", fbxCreationTime),
		newFBXNode("Creator", creator),
		fbxGlobalSettings(),
		newFBXNode("Documents").add(
			newFBXNode("Count", int32(1)),
			newFBXNode("Document", docID, "", "Scene").add(
				newFBXNode("Properties70").add(
					fbxProp("SourceObject", "object", "", ""),
					fbxProp("ActiveAnimStackName", "KString", "", "", ""),
				),
				newFBXNode("RootNode", int64(0)),
			),
		),
		newFBXNode("References"),
		fbxDefinitions(len(g.nodes), geometries, len(g.materials)),
		objects,
		connections,
		newFBXNode("Takes").add(newFBXNode("Current", "")),
	}
	return encodeFBXBinary(roots)
}

func fbxHeaderExtension(creator string) *fbxNode {
	return newFBXNode("FBXHeaderExtension").add(
		newFBXNode("FBXHeaderVersion", int32(1003)),
		newFBXNode("FBXVersion", int32(fbxVersion)),
		newFBXNode("EncryptionType", int32(0)),
		newFBXNode("CreationTimeStamp").add(
			newFBXNode("Version", int32(1000)),
			newFBXNode("Year", int32(1970)),
			newFBXNode("Month", int32(1)),
			newFBXNode("Day", int32(1)),
			newFBXNode("Hour", int32(10)),
			newFBXNode("Minute", int32(0)),
			newFBXNode("Second", int32(0)),
			newFBXNode("Millisecond", int32(0)),
		),
		newFBXNode("Creator", creator),
	)
}

func fbxGlobalSettings() *fbxNode {
	return newFBXNode("GlobalSettings").add(
		newFBXNode("Version", int32(1000)),
		newFBXNode("Properties70").add(
			fbxProp("UpAxis", "int", "Integer", "", int32(2)),
			fbxProp("UpAxisSign", "int", "Integer", "", int32(1)),
			fbxProp("FrontAxis", "int", "Integer", "", int32(1)),
			fbxProp("FrontAxisSign", "int", "Integer", "", int32(-1)),
			fbxProp("CoordAxis", "int", "Integer", "", int32(0)),
			fbxProp("CoordAxisSign", "int", "Integer", "", int32(1)),
			fbxProp("OriginalUpAxis", "int", "Integer", "", int32(2)),
			fbxProp("OriginalUpAxisSign", "int", "Integer", "", int32(1)),
			fbxProp("UnitScaleFactor", "double", "Number", "", 1.0),
			fbxProp("OriginalUnitScaleFactor", "double", "Number", "", 1.0),
		),
	)
}

func fbxDefinitions(models, geometries, materials int) *fbxNode {
	def := newFBXNode("Definitions").add(
		newFBXNode("Version", int32(100)),
		newFBXNode("Count", int32(1+models+geometries+materials)),
		newFBXNode("ObjectType", "GlobalSettings").add(newFBXNode("Count", int32(1))),
	)
	for _, t := range []struct {
		name  string
		count int
	}{
		{"Model", models},
		{"Geometry", geometries},
		{"Material", materials},
	} {
		if t.count > 0 {
			def.add(newFBXNode("ObjectType", t.name).add(newFBXNode("Count", int32(t.count))))
		}
	}
	return def
}

func fbxModel(id int64, n node) *fbxNode {
	o := n.obj
	rot := o.Rotation.Scale(180 / math.Pi)
	return newFBXNode("Model", id, fbxName(o.Name(), "Model"), "Mesh").add(
		newFBXNode("Version", int32(232)),
		newFBXNode("Properties70").add(
			fbxProp("Lcl Translation", "Lcl Translation", "", "A", o.Location.X, o.Location.Y, o.Location.Z),
			fbxProp("Lcl Rotation", "Lcl Rotation", "", "A", rot.X, rot.Y, rot.Z),
			fbxProp("Lcl Scaling", "Lcl Scaling", "", "A", o.Scale.X, o.Scale.Y, o.Scale.Z),
			fbxProp("DefaultAttributeIndex", "int", "Integer", "", int32(0)),
		),
		newFBXNode("MultiLayer", int32(0)),
		newFBXNode("MultiTake", int32(0)),
		newFBXNode("Shading", true),
		newFBXNode("Culling", "CullingOff"),
	)
}

func fbxMaterial(id int64, name string, c [4]float64) *fbxNode {
	return newFBXNode("Material", id, fbxName(name, "Material"), "").add(
		newFBXNode("Version", int32(102)),
		newFBXNode("ShadingModel", "phong"),
		newFBXNode("MultiLayer", int32(0)),
		newFBXNode("Properties70").add(
			fbxProp("DiffuseColor", "Color", "", "A", c[0], c[1], c[2]),
			fbxProp("DiffuseFactor", "Number", "", "A", 1.0),
			fbxProp("TransparencyFactor", "Number", "", "A", 1-c[3]),
			fbxProp("Opacity", "double", "Number", "", c[3]),
		),
	)
}

// fbxGeometry shares control points between triangles and stores one
// flat normal per polygon vertex.
func fbxGeometry(id int64, n node) *fbxNode {
	index := make(map[model3d.Coord3D]int32)
	var (
		vertices []float64
		polygons = make([]int32, 0, 3*len(n.tris))
		normals  = make([]float64, 0, 9*len(n.tris))
	)
	for _, t := range n.tris {
		nrm := faceNormal(t)
		for k, c := range t {
			vi, ok := index[c]
			if !ok {
				vi = int32(len(vertices) / 3)
				index[c] = vi
				vertices = append(vertices, c.X, c.Y, c.Z)
			}
			if k == 2 {
				// The last index of a polygon is stored as its ones' complement.
				vi = ^vi
			}
			polygons = append(polygons, vi)
			normals = append(normals, nrm.X, nrm.Y, nrm.Z)
		}
	}

	return newFBXNode("Geometry", id, fbxName(n.obj.Name(), "Geometry"), "Mesh").add(
		newFBXNode("Properties70"),
		newFBXNode("GeometryVersion", int32(124)),
		newFBXNode("Vertices", vertices),
		newFBXNode("PolygonVertexIndex", polygons),
		newFBXNode("LayerElementNormal", int32(0)).add(
			newFBXNode("Version", int32(101)),
			newFBXNode("Name", ""),
			newFBXNode("MappingInformationType", "ByPolygonVertex"),
			newFBXNode("ReferenceInformationType", "Direct"),
			newFBXNode("Normals", normals),
		),
		newFBXNode("LayerElementMaterial", int32(0)).add(
			newFBXNode("Version", int32(101)),
			newFBXNode("Name", ""),
			newFBXNode("MappingInformationType", "AllSame"),
			newFBXNode("ReferenceInformationType", "IndexToDirect"),
			newFBXNode("Materials", []int32{0}),
		),
		newFBXNode("Layer", int32(0)).add(
			newFBXNode("Version", int32(100)),
			newFBXNode("LayerElement").add(
				newFBXNode("Type", "LayerElementNormal"),
				newFBXNode("TypedIndex", int32(0)),
			),
			newFBXNode("LayerElement").add(
				newFBXNode("Type", "LayerElementMaterial"),
				newFBXNode("TypedIndex", int32(0)),
			),
		),
	)
}
