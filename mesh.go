package karat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat/internal/d3"
)

// Mesh is an indexed triangulated surface: points in 3D space and
// triangles referencing those points by index. The zero value and the nil
// pointer are both valid empty meshes.
type Mesh struct {
	points    []r3.Vec
	triangles [][3]int
	// bb is the bounding box of the whole mesh.
	bb d3.Box
}

// NewMesh builds a Mesh from points and triangle index triples. The
// slices are copied. Every index must satisfy 0 <= index < len(points);
// topology beyond that (watertightness, winding) is not checked here.
func NewMesh(points []r3.Vec, triangles [][3]int) (*Mesh, error) {
	for ti, tri := range triangles {
		for _, vi := range tri {
			if vi < 0 || vi >= len(points) {
				return nil, fmt.Errorf("triangle %d references point %d of mesh with %d points", ti, vi, len(points))
			}
		}
	}
	m := &Mesh{
		points:    append([]r3.Vec(nil), points...),
		triangles: append([][3]int(nil), triangles...),
		bb:        pointBounds(points),
	}
	return m, nil
}

// FromTriangles welds a triangle soup into an indexed Mesh, merging
// vertices that coincide within tol. tol should be of the order of
// 1/1000th of the size of the smallest triangle in the model. If set to 0
// then it is inferred automatically. Triangles that collapse during
// welding are dropped since they cannot be part of a valid surface.
func FromTriangles(triangles []Triangle, tol float64) (*Mesh, error) {
	if len(triangles) == 0 {
		return &Mesh{}, nil
	}
	bb := d3.Empty()
	minDist2 := math.MaxFloat64
	maxDist2 := -math.MaxFloat64
	for i := range triangles {
		for j, vert := range triangles[i] {
			if !d3.Finite(vert) {
				return nil, fmt.Errorf("triangle %d has a non-finite vertex", i)
			}
			bb = bb.Include(vert)
			// Calculate minimum and maximum side lengths. Zero length
			// sides belong to degenerate triangles and would produce a
			// useless inferred tolerance.
			side2 := r3.Norm2(r3.Sub(triangles[i][(j+1)%3], vert))
			if side2 > 0 {
				minDist2 = math.Min(minDist2, side2)
			}
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	if minDist2 == math.MaxFloat64 {
		return nil, errors.New("all triangles are degenerate")
	}
	suggested := math.Sqrt(minDist2) / 256
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, fmt.Errorf("vertex tolerance too large to weld mesh, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	maxDim := d3.Max(bb.Size())
	div := int64(maxDim/tol + 1e-12)
	if div <= 0 {
		return nil, errors.New("vertex tolerance larger than model size")
	}
	if div > math.MaxInt64/2 {
		return nil, errors.New("vertex tolerance too small, overflowed int64")
	}
	m := &Mesh{
		points:    make([]r3.Vec, 0, len(triangles)/2),
		triangles: make([][3]int, 0, len(triangles)),
		bb:        bb,
	}
	// Vertex index cache in resolution-space.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for _, tri := range triangles {
		var idx [3]int
		for j, vert := range tri {
			// Scale vert to be integer in resolution-space.
			v := r3.Scale(ri, vert)
			vi := [3]int64{int64(v.X), int64(v.Y), int64(v.Z)}
			vertexIdx, ok := cache[vi]
			if !ok {
				vertexIdx = len(m.points)
				cache[vi] = vertexIdx
				m.points = append(m.points, vert)
			}
			idx[j] = vertexIdx
		}
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[2] == idx[0] {
			continue // collapsed during welding
		}
		m.triangles = append(m.triangles, idx)
	}
	return m, nil
}

// IsEmpty returns true if the mesh has no triangles. Nil meshes are empty.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.triangles) == 0
}

// PointCount returns the number of points in the mesh.
func (m *Mesh) PointCount() int {
	if m == nil {
		return 0
	}
	return len(m.points)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.triangles)
}

// Point returns the ith point of the mesh.
func (m *Mesh) Point(i int) r3.Vec {
	return m.points[i]
}

// Points returns a copy of the mesh's points.
func (m *Mesh) Points() []r3.Vec {
	if m == nil {
		return nil
	}
	return append([]r3.Vec(nil), m.points...)
}

// TriangleIndex returns the point indices of the ith triangle.
func (m *Mesh) TriangleIndex(i int) [3]int {
	return m.triangles[i]
}

// TriangleIndices returns a copy of the mesh's triangle index triples.
func (m *Mesh) TriangleIndices() [][3]int {
	if m == nil {
		return nil
	}
	return append([][3]int(nil), m.triangles...)
}

// Triangle returns the ith triangle with its vertices dereferenced.
func (m *Mesh) Triangle(i int) Triangle {
	tri := m.triangles[i]
	return Triangle{m.points[tri[0]], m.points[tri[1]], m.points[tri[2]]}
}

// Bounds returns the axis-aligned bounding box of the mesh's points.
// Meshes without points have a zero bounding box.
func (m *Mesh) Bounds() r3.Box {
	if m == nil || len(m.points) == 0 {
		return r3.Box{}
	}
	return r3.Box(m.bb)
}

func pointBounds(points []r3.Vec) d3.Box {
	if len(points) == 0 {
		return d3.Box{}
	}
	bb := d3.Empty()
	for _, p := range points {
		bb = bb.Include(p)
	}
	return bb
}
