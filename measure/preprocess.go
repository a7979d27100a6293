package measure

import (
	"fmt"

	"github.com/fogleman/simplify"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
)

// Preprocessing names a mesh conditioning step applied to a copy of the
// mesh before measuring its closed surface volume.
type Preprocessing uint8

const (
	// Triangulate drops faces that are not valid triangles, such as
	// faces repeating a point. Valid closed meshes measure identically
	// with and without it.
	Triangulate Preprocessing = iota
	// Smooth applies a fixed Laplacian relaxation. On noisy scans it can
	// close near-degenerate folds at the cost of slightly shrinking the
	// model.
	Smooth
	// Decimate collapses edges until roughly a tenth of the faces are
	// gone. It is exposed for manual use and not part of CompareVolumes:
	// collapsing edges on small meshes easily opens the surface.
	Decimate
)

const (
	smoothIterations  = 10
	smoothRelaxation  = 0.01
	decimateReduction = 0.1
)

func (p Preprocessing) String() string {
	switch p {
	case Triangulate:
		return "triangulate"
	case Smooth:
		return "smooth"
	case Decimate:
		return "decimate"
	}
	return fmt.Sprintf("Preprocessing(%d)", uint8(p))
}

// VolumePreprocessed conditions a copy of the mesh with prep and returns
// the closed surface volume of the result, 0 if the conditioned mesh
// still fails that measurement. The input mesh is never modified.
func VolumePreprocessed(m *karat.Mesh, prep Preprocessing) float64 {
	v, err := preprocessedVolume(m, prep)
	if err != nil {
		return 0
	}
	return v
}

func preprocessedVolume(m *karat.Mesh, prep Preprocessing) (float64, error) {
	if m.IsEmpty() {
		return 0, errNoFaces
	}
	var (
		processed *karat.Mesh
		err       error
	)
	switch prep {
	case Triangulate:
		processed, err = triangulated(m)
	case Smooth:
		processed, err = smoothed(m, smoothIterations, smoothRelaxation)
	case Decimate:
		processed, err = decimated(m, 1-decimateReduction)
	default:
		return 0, fmt.Errorf("unknown preprocessing %d", prep)
	}
	if err != nil {
		return 0, err
	}
	return closedSurfaceVolume(processed)
}

// triangulated drops faces that repeat a point.
func triangulated(m *karat.Mesh) (*karat.Mesh, error) {
	kept := make([][3]int, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.TriangleIndex(i)
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			continue
		}
		kept = append(kept, tri)
	}
	return karat.NewMesh(m.Points(), kept)
}

// smoothed moves every point toward the mean of its edge neighbours by
// the relaxation factor, iters times. Points without neighbours stay put.
func smoothed(m *karat.Mesh, iters int, relaxation float64) (*karat.Mesh, error) {
	neighbours := make([][]int, m.PointCount())
	seen := make(map[[2]int]bool, 3*m.TriangleCount())
	addEdge := func(a, b int) {
		if seen[[2]int{a, b}] {
			return
		}
		seen[[2]int{a, b}] = true
		neighbours[a] = append(neighbours[a], b)
	}
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.TriangleIndex(i)
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			addEdge(a, b)
			addEdge(b, a)
		}
	}
	points := m.Points()
	for it := 0; it < iters; it++ {
		moved := make([]r3.Vec, len(points))
		for i, p := range points {
			nb := neighbours[i]
			if len(nb) == 0 {
				moved[i] = p
				continue
			}
			mean := r3.Vec{}
			for _, j := range nb {
				mean = r3.Add(mean, points[j])
			}
			mean = r3.Scale(1/float64(len(nb)), mean)
			moved[i] = r3.Add(p, r3.Scale(relaxation, r3.Sub(mean, p)))
		}
		points = moved
	}
	return karat.NewMesh(points, m.TriangleIndices())
}

// decimated runs edge collapse simplification keeping the given fraction
// of triangles, then rewelds the result.
func decimated(m *karat.Mesh, keep float64) (*karat.Mesh, error) {
	src := make([]*simplify.Triangle, m.TriangleCount())
	for i := range src {
		t := m.Triangle(i)
		src[i] = simplify.NewTriangle(simplifyVec(t[0]), simplifyVec(t[1]), simplifyVec(t[2]))
	}
	out := simplify.NewMesh(src).Simplify(keep)
	tris := make([]karat.Triangle, 0, len(out.Triangles))
	for _, t := range out.Triangles {
		tris = append(tris, karat.Triangle{r3Vec(t.V1), r3Vec(t.V2), r3Vec(t.V3)})
	}
	return karat.FromTriangles(tris, 0)
}

func simplifyVec(v r3.Vec) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func r3Vec(v simplify.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
