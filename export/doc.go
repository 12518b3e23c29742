// Package export writes kernel objects to model files.
//
// Two formats are supported, each with a single encoding:
//
//   - [GLB]: binary glTF 2.0 encoded with github.com/qmuntal/gltf. The
//     Z-up scene is converted to glTF's Y-up frame. Each object is a node
//     with its local transform and, when it has geometry, one mesh with
//     flat normals and the object's active material.
//   - [FBX]: binary FBX 7.4. The scene keeps its Z-up axes, declared in
//     GlobalSettings. Large arrays are zlib compressed.
//
// Output is deterministic: triangles are written in a canonical order
// and FBX headers carry fixed timestamps, so exporting the same scene
// twice yields identical bytes.
package export
