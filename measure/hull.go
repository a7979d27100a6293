package measure

import (
	"errors"
	"fmt"
	"log"
	"math"

	geo "github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/internal/d3"
)

// VolumeConvexHull returns the volume of the convex hull of the mesh's
// points. The hull is an upper bound on the enclosed volume and a good
// estimate for solids without deep concavities, and it works on open and
// badly wound meshes since only the points matter. When hull construction
// fails or degenerates the bounding box volume is returned instead, a
// coarser upper bound. Returns 0 for absent or empty meshes.
func VolumeConvexHull(m *karat.Mesh) float64 {
	v, err := convexHullVolume(m)
	if err != nil {
		return 0
	}
	return v
}

func convexHullVolume(m *karat.Mesh) (float64, error) {
	if m == nil || m.PointCount() == 0 {
		return 0, errors.New("mesh has no points")
	}
	v, err := hullVolume(m)
	if err != nil || v <= 0 {
		// Flat or degenerate point clouds have no hull volume. Fall back
		// to the bounding box so the comparison still gets an upper
		// bound, and log it: this is an approximation of an
		// approximation.
		log.Printf("measure: convex hull failed (%v), falling back to bounding box volume", err)
		return d3.Box(m.Bounds()).Volume(), nil
	}
	return v, nil
}

// hullVolume builds the convex hull of the mesh's points and sums signed
// tetrahedron volumes over its triangles. The hull library panics on some
// degenerate inputs, so panics are converted to errors here.
func hullVolume(m *karat.Mesh) (v float64, err error) {
	defer func() {
		if a := recover(); a != nil {
			v = 0
			err = fmt.Errorf("convex hull: %v", a)
		}
	}()
	if m.PointCount() < 4 {
		return 0, errors.New("convex hull needs at least 4 points")
	}
	cloud := make([]geo.Vector, m.PointCount())
	for i := range cloud {
		p := m.Point(i)
		cloud[i] = geo.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}
	hull := new(quickhull.QuickHull).ConvexHull(cloud, true, false, 0)
	indices := hull.Indices
	if len(indices) < 12 || len(indices)%3 != 0 {
		// The smallest closed hull is a tetrahedron with 4 faces.
		return 0, errors.New("convex hull has no cells")
	}
	var total float64
	for i := 0; i < len(indices); i += 3 {
		total += signedTetraVolume(r3.Vec{}, karat.Triangle{
			hullVec(hull.Vertices[indices[i]]),
			hullVec(hull.Vertices[indices[i+1]]),
			hullVec(hull.Vertices[indices[i+2]]),
		})
	}
	return math.Abs(total), nil
}

func hullVec(v geo.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
