package measure_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/measure"
)

func cubePoints() []r3.Vec {
	return []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
}

// cubeTriangles is a unit cube with consistent outward winding. The first
// two triangles are the bottom face, the next two the top face.
func cubeTriangles() [][3]int {
	return [][3]int{
		{0, 3, 2}, {0, 2, 1},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{2, 3, 7}, {2, 7, 6},
		{0, 4, 7}, {0, 7, 3},
		{1, 2, 6}, {1, 6, 5},
	}
}

func cubeMesh(t *testing.T) *karat.Mesh {
	t.Helper()
	m, err := karat.NewMesh(cubePoints(), cubeTriangles())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// openCubeMesh is the unit cube with the top face removed. Its boundary
// is a single four vertex loop around the top rim.
func openCubeMesh(t *testing.T) *karat.Mesh {
	t.Helper()
	tris := append(cubeTriangles()[:2:2], cubeTriangles()[4:]...)
	m, err := karat.NewMesh(cubePoints(), tris)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// tetraMesh is a unit right tetrahedron with volume 1/6.
func tetraMesh(t *testing.T) *karat.Mesh {
	t.Helper()
	points := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	triangles := [][3]int{
		{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3},
	}
	m, err := karat.NewMesh(points, triangles)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestVolumeCube(t *testing.T) {
	m := cubeMesh(t)
	if got := measure.Volume(m); math.Abs(got-1) > 1e-12 {
		t.Errorf("cube volume: got %v. want 1", got)
	}
	if !measure.Watertight(m) {
		t.Error("cube not watertight")
	}
}

func TestVolumeTetrahedron(t *testing.T) {
	if got := measure.Volume(tetraMesh(t)); math.Abs(got-1.0/6.0) > 1e-12 {
		t.Errorf("tetrahedron volume: got %v. want 1/6", got)
	}
}

func TestVolumeTranslationInvariant(t *testing.T) {
	offset := r3.Vec{X: 10, Y: -5, Z: 3}
	points := cubePoints()
	for i := range points {
		points[i] = r3.Add(points[i], offset)
	}
	m, err := karat.NewMesh(points, cubeTriangles())
	if err != nil {
		t.Fatal(err)
	}
	if got := measure.Volume(m); math.Abs(got-1) > 1e-9 {
		t.Errorf("translated cube volume: got %v. want 1", got)
	}
}

func TestVolumeOpenMesh(t *testing.T) {
	m := openCubeMesh(t)
	if got := measure.Volume(m); got != 0 {
		t.Errorf("open mesh volume: got %v. want 0", got)
	}
	if measure.Watertight(m) {
		t.Error("open mesh reported watertight")
	}
}

func TestVolumeInconsistentWinding(t *testing.T) {
	tris := cubeTriangles()
	tris[0] = [3]int{tris[0][0], tris[0][2], tris[0][1]} // flip one face
	m, err := karat.NewMesh(cubePoints(), tris)
	if err != nil {
		t.Fatal(err)
	}
	if got := measure.Volume(m); got != 0 {
		t.Errorf("inconsistently wound mesh volume: got %v. want 0", got)
	}
	if measure.Watertight(m) {
		t.Error("inconsistently wound mesh reported watertight")
	}
}

func TestVolumeEmpty(t *testing.T) {
	if got := measure.Volume(nil); got != 0 {
		t.Errorf("nil mesh volume: got %v. want 0", got)
	}
	if measure.Watertight(nil) {
		t.Error("nil mesh reported watertight")
	}
	empty, err := karat.FromTriangles(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := measure.Volume(empty); got != 0 {
		t.Errorf("empty mesh volume: got %v. want 0", got)
	}
}

// On a closed mesh the tetrahedral estimator matches the closed surface
// volume for any reference. On an open mesh the references disagree,
// which is exactly what makes them worth comparing.
func TestVolumeTetrahedralReferences(t *testing.T) {
	closed := cubeMesh(t)
	for _, ref := range []measure.Reference{measure.Origin, measure.Centroid, measure.RefAt(r3.Vec{X: -3, Y: 7, Z: 0.5})} {
		if got := measure.VolumeTetrahedral(closed, ref); math.Abs(got-1) > 1e-9 {
			t.Errorf("closed cube from %v: got %v. want 1", ref, got)
		}
	}

	open := openCubeMesh(t)
	if got := measure.VolumeTetrahedral(open, measure.Origin); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("open cube from origin: got %v. want 2/3", got)
	}
	if got := measure.VolumeTetrahedral(open, measure.Centroid); math.Abs(got-5.0/6.0) > 1e-12 {
		t.Errorf("open cube from centroid: got %v. want 5/6", got)
	}
}

func TestReferenceString(t *testing.T) {
	cases := []struct {
		ref  measure.Reference
		want string
	}{
		{measure.Origin, "origin"},
		{measure.Centroid, "centroid"},
		{measure.RefAt(r3.Vec{X: 1, Y: 2.5, Z: -3}), "(1 2.5 -3)"},
	}
	for _, c := range cases {
		if got := c.ref.String(); got != c.want {
			t.Errorf("got %q. want %q", got, c.want)
		}
	}
}

func TestVolumeBoundingBox(t *testing.T) {
	if got := measure.VolumeBoundingBox(cubeMesh(t)); math.Abs(got-1) > 1e-12 {
		t.Errorf("cube bounding box volume: got %v. want 1", got)
	}
	// The open cube still references all eight corners.
	if got := measure.VolumeBoundingBox(openCubeMesh(t)); math.Abs(got-1) > 1e-12 {
		t.Errorf("open cube bounding box volume: got %v. want 1", got)
	}
	cloud, err := karat.NewMesh([]r3.Vec{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 6, Z: 8}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := measure.VolumeBoundingBox(cloud); math.Abs(got-60) > 1e-12 {
		t.Errorf("point cloud bounding box volume: got %v. want 60", got)
	}
	if got := measure.VolumeBoundingBox(nil); got != 0 {
		t.Errorf("nil mesh bounding box volume: got %v. want 0", got)
	}

	// The box volume upper bounds the enclosed volume.
	tetra := tetraMesh(t)
	if bb, vol := measure.VolumeBoundingBox(tetra), measure.Volume(tetra); bb < vol {
		t.Errorf("bounding box volume %v below enclosed volume %v", bb, vol)
	}
}
