package measure

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/internal/d3"
)

var errNotClosed = errors.New("mesh is not a closed surface with consistent winding")

// Volume returns the volume enclosed by a watertight, consistently wound
// mesh in mm³, integrated over the surface with the divergence theorem.
// It is the most accurate estimator when its preconditions hold and
// returns 0 for absent, empty, open or inconsistently wound meshes.
func Volume(m *karat.Mesh) float64 {
	v, err := closedSurfaceVolume(m)
	if err != nil {
		return 0
	}
	return v
}

func closedSurfaceVolume(m *karat.Mesh) (float64, error) {
	if m.IsEmpty() {
		return 0, errNoFaces
	}
	if err := closed(m); err != nil {
		return 0, err
	}
	var total float64
	for i := 0; i < m.TriangleCount(); i++ {
		total += signedTetraVolume(r3.Vec{}, m.Triangle(i))
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, errors.New("volume is not finite")
	}
	return math.Abs(total), nil
}

// closed returns nil if the mesh is a 2-manifold closed surface with
// consistent winding: every directed edge appears exactly once and so
// does its opposite.
func closed(m *karat.Mesh) error {
	type edge [2]int
	count := make(map[edge]int, 3*m.TriangleCount()/2)
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.TriangleIndex(i)
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a == b {
				return fmt.Errorf("triangle %d repeats point %d", i, a)
			}
			count[edge{a, b}]++
		}
	}
	for e, n := range count {
		if n != 1 || count[edge{e[1], e[0]}] != 1 {
			return errNotClosed
		}
	}
	return nil
}

// Watertight reports whether the mesh is a closed surface the Volume
// estimator accepts.
func Watertight(m *karat.Mesh) bool {
	return !m.IsEmpty() && closed(m) == nil
}

// Reference selects the apex used by VolumeTetrahedral.
type Reference struct {
	mode refMode
	at   r3.Vec
}

type refMode uint8

const (
	refOrigin refMode = iota
	refCentroid
	refCustom
)

// Origin sums tetrahedra from the coordinate origin.
var Origin = Reference{mode: refOrigin}

// Centroid sums tetrahedra from the center of the mesh's bounding box.
var Centroid = Reference{mode: refCentroid}

// RefAt sums tetrahedra from an explicit point.
func RefAt(p r3.Vec) Reference {
	return Reference{mode: refCustom, at: p}
}

func (r Reference) String() string {
	switch r.mode {
	case refCentroid:
		return "centroid"
	case refCustom:
		return fmt.Sprintf("(%g %g %g)", r.at.X, r.at.Y, r.at.Z)
	}
	return "origin"
}

func (r Reference) point(m *karat.Mesh) r3.Vec {
	switch r.mode {
	case refCentroid:
		return d3.Box(m.Bounds()).Center()
	case refCustom:
		return r.at
	}
	return r3.Vec{}
}

// VolumeTetrahedral sums the signed volumes of tetrahedra formed between
// each triangle and a reference apex and returns the absolute total. For
// a closed, consistently wound mesh the result is independent of the
// reference and matches Volume; for defective meshes the reference choice
// changes the answer, which makes disagreement between Origin and
// Centroid a useful mesh quality signal. Returns 0 for absent or empty
// meshes.
func VolumeTetrahedral(m *karat.Mesh, ref Reference) float64 {
	v, err := tetrahedralVolume(m, ref)
	if err != nil {
		return 0
	}
	return v
}

func tetrahedralVolume(m *karat.Mesh, ref Reference) (float64, error) {
	if m.IsEmpty() {
		return 0, errNoFaces
	}
	apex := ref.point(m)
	var total float64
	for i := 0; i < m.TriangleCount(); i++ {
		total += signedTetraVolume(apex, m.Triangle(i))
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, errors.New("volume is not finite")
	}
	return math.Abs(total), nil
}

// VolumeBoundingBox returns the volume of the mesh's axis-aligned
// bounding box. It always succeeds for meshes with points and upper
// bounds the true volume, making it a cheap sanity reference for the
// other estimators.
func VolumeBoundingBox(m *karat.Mesh) float64 {
	v, err := boundingBoxVolume(m)
	if err != nil {
		return 0
	}
	return v
}

func boundingBoxVolume(m *karat.Mesh) (float64, error) {
	if m == nil || m.PointCount() == 0 {
		return 0, errors.New("mesh has no points")
	}
	return d3.Box(m.Bounds()).Volume(), nil
}
