// Package kernel is the geometry kernel behind glyph3d.
//
// It plays the role a host 3D application plays for a modelling script:
// a font registry, a Scene of objects with local transforms and parents,
// glyph outline (text) objects, cube and sphere primitives, scale baking,
// edge bevels, curve-to-mesh conversion, boolean difference and material
// slots. Meshes are github.com/unixpickle/model3d meshes; boolean
// difference samples the combined solid with marching cubes.
//
// A Scene is an ordinary value. Nothing in this package is global, and
// none of it is safe for concurrent use.
//
// Coordinates follow the usual modelling convention: Z up, object
// rotations are XYZ Euler angles in radians applied as Rz·Ry·Rx, and
// text is laid out in the XY plane facing +Z.
package kernel
