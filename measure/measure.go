// Package measure derives geometric properties from triangle meshes:
// bounding box dimensions, surface area and enclosed volume.
//
// No single volume estimator is robust to every mesh defect, so the
// package offers several independent estimators with different failure
// modes and a comparison runner, CompareVolumes, that evaluates all of
// them side by side. Estimators follow a common contract: they return a
// volume in mm³, they return 0 instead of failing, and they never modify
// the mesh they are given.
package measure

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/internal/d3"
)

var errNoFaces = errors.New("mesh has no faces")

// Dims are axis-aligned bounding box extents in millimetres.
type Dims struct {
	Width  float64 // extent along X
	Height float64 // extent along Y
	Depth  float64 // extent along Z
}

// Dimensions returns the bounding box extents of the mesh's points in
// millimetres. An absent mesh yields zero Dims.
func Dimensions(m *karat.Mesh) Dims {
	if m == nil || m.PointCount() == 0 {
		return Dims{}
	}
	size := d3.Box(m.Bounds()).Size()
	return Dims{Width: size.X, Height: size.Y, Depth: size.Z}
}

// Area is a surface area in square millimetres and square centimetres.
type Area struct {
	MM2 float64
	CM2 float64
}

// SurfaceArea sums the area of every triangle in the mesh. Degenerate
// triangles contribute zero. An absent or empty mesh yields a zero Area.
func SurfaceArea(m *karat.Mesh) Area {
	if m.IsEmpty() {
		return Area{}
	}
	var total float64
	for i := 0; i < m.TriangleCount(); i++ {
		total += m.Triangle(i).Area()
	}
	return Area{MM2: total, CM2: total / karat.SquareMillimetresPerSquareCentimetre}
}

// Props bundles the scalar properties of a mesh: dimensions, closed
// surface volume and surface area, each in display units.
type Props struct {
	Width  float64
	Height float64
	Depth  float64

	VolumeMM3 float64
	VolumeCM3 float64

	SurfaceAreaMM2 float64
	SurfaceAreaCM2 float64
}

// Properties measures m and returns all scalar properties at once. The
// volume is the closed surface volume and is 0 whenever that method
// fails; the other properties are best-effort and remain valid for open
// meshes.
func Properties(m *karat.Mesh) Props {
	dims := Dimensions(m)
	area := SurfaceArea(m)
	vol := Volume(m)
	return Props{
		Width:          dims.Width,
		Height:         dims.Height,
		Depth:          dims.Depth,
		VolumeMM3:      vol,
		VolumeCM3:      vol / karat.CubicMillimetresPerCubicCentimetre,
		SurfaceAreaMM2: area.MM2,
		SurfaceAreaCM2: area.CM2,
	}
}

// signedTetraVolume returns the signed volume of the tetrahedron spanned
// by triangle t and apex ref.
func signedTetraVolume(ref r3.Vec, t karat.Triangle) float64 {
	a := r3.Sub(t[0], ref)
	b := r3.Sub(t[1], ref)
	c := r3.Sub(t[2], ref)
	return r3.Dot(a, r3.Cross(b, c)) / 6
}
