package measure

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/internal/d3"
)

// VolumeRepaired closes small boundary holes on a copy of the mesh and
// returns the closed surface volume of the repaired copy. maxHoleSize
// caps the radius of the holes to close, measured as half the diagonal of
// the hole boundary's bounding box; pass 0 to use a tenth of the largest
// mesh dimension. Returns 0 when the repaired copy still fails the closed
// surface measurement. The input mesh is never modified.
func VolumeRepaired(m *karat.Mesh, maxHoleSize float64) float64 {
	v, err := repairedVolume(m, maxHoleSize)
	if err != nil {
		return 0
	}
	return v
}

func repairedVolume(m *karat.Mesh, maxHoleSize float64) (float64, error) {
	if m.IsEmpty() {
		return 0, errNoFaces
	}
	if maxHoleSize <= 0 {
		maxHoleSize = 0.1 * d3.Max(d3.Box(m.Bounds()).Size())
	}
	repaired, err := fillHoles(m, maxHoleSize)
	if err != nil {
		return 0, err
	}
	return closedSurfaceVolume(repaired)
}

// fillHoles returns a mesh with every boundary loop within the size limit
// closed by a triangle fan around the loop's centroid. The mesh is
// returned as is when it has no boundary.
func fillHoles(m *karat.Mesh, maxRadius float64) (*karat.Mesh, error) {
	loops, err := boundaryLoops(m)
	if err != nil {
		return nil, err
	}
	if len(loops) == 0 {
		return m, nil
	}
	points := m.Points()
	triangles := m.TriangleIndices()
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		bb := d3.Empty()
		centroid := r3.Vec{}
		for _, vi := range loop {
			bb = bb.Include(points[vi])
			centroid = r3.Add(centroid, points[vi])
		}
		if r3.Norm(bb.Size())/2 > maxRadius {
			continue
		}
		centroid = r3.Scale(1/float64(len(loop)), centroid)
		ci := len(points)
		points = append(points, centroid)
		// Boundary edges run along the loop. The fan must traverse them
		// in the opposite direction to keep the new triangles wound
		// consistently with the surrounding surface.
		for k := range loop {
			a, b := loop[k], loop[(k+1)%len(loop)]
			triangles = append(triangles, [3]int{b, a, ci})
		}
	}
	return karat.NewMesh(points, triangles)
}

// boundaryLoops finds closed chains of boundary edges, the directed edges
// whose opposite never occurs. Meshes where an edge occurs twice in the
// same direction or where boundary chains branch or dead-end cannot be
// repaired by fan filling and are rejected.
func boundaryLoops(m *karat.Mesh) ([][]int, error) {
	type edge [2]int
	count := make(map[edge]int, 3*m.TriangleCount()/2)
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.TriangleIndex(i)
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a == b {
				return nil, fmt.Errorf("triangle %d repeats point %d", i, a)
			}
			e := edge{a, b}
			count[e]++
			if count[e] > 1 {
				return nil, errors.New("mesh is not manifold")
			}
		}
	}
	next := make(map[int]int)
	for e := range count {
		if count[edge{e[1], e[0]}] > 0 {
			continue // interior edge
		}
		if _, ok := next[e[0]]; ok {
			return nil, errors.New("hole boundaries touch, cannot chain them")
		}
		next[e[0]] = e[1]
	}
	var loops [][]int
	visited := make(map[int]bool)
	for start, first := range next {
		if visited[start] {
			continue
		}
		loop := []int{start}
		visited[start] = true
		for v := first; v != start; {
			nxt, ok := next[v]
			if !ok {
				return nil, errors.New("boundary chain dead-ends")
			}
			loop = append(loop, v)
			visited[v] = true
			v = nxt
		}
		loops = append(loops, loop)
	}
	return loops, nil
}
