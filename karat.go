// Package karat provides the triangle mesh value shared by the measuring,
// weighing and scaling packages of this module.
//
// A Mesh is an indexed triangulated surface in millimetres. Meshes are
// immutable once built: operations across the module inspect them or
// derive fresh copies, never mutate them in place. Because of that, any
// Mesh may be shared between goroutines freely.
//
// Meshes come from three places: decoded model files (package meshio),
// welded triangle soups (FromTriangles) and explicit point/index data
// (NewMesh). Index validity is enforced at construction; watertightness,
// manifoldness and winding are not, since the measuring methods differ in
// what they tolerate.
package karat

// Unit conversion factors. Mesh coordinates are millimetres, material
// densities are g/cm³.
const (
	CubicMillimetresPerCubicCentimetre   = 1000.0
	SquareMillimetresPerSquareCentimetre = 100.0
)
