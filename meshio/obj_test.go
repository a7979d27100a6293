package meshio_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/castmetal/karat/measure"
	"github.com/castmetal/karat/meshio"
)

const objTetra = `# unit right tetrahedron
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
# face repeating a vertex, dropped on load
f 1 1 2
`

func writeOBJ(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadOBJ(t *testing.T) {
	m, err := meshio.ReadOBJ(writeOBJ(t, "tetra.obj", objTetra))
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 4 || m.PointCount() != 4 {
		t.Errorf("got %d triangles, %d points. want 4, 4", m.TriangleCount(), m.PointCount())
	}
	if !measure.Watertight(m) {
		t.Error("loaded tetrahedron not watertight")
	}
	if got := measure.Volume(m); math.Abs(got-1.0/6.0) > 1e-6 {
		t.Errorf("loaded volume: got %v. want 1/6", got)
	}
}

func TestReadOBJViaDispatch(t *testing.T) {
	m, err := meshio.Read(writeOBJ(t, "tetra.obj", objTetra))
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 4 {
		t.Errorf("got %d triangles. want 4", m.TriangleCount())
	}
}

func TestReadOBJNoTriangles(t *testing.T) {
	_, err := meshio.ReadOBJ(writeOBJ(t, "points.obj", "v 0 0 0\nv 1 1 1\n"))
	if err == nil {
		t.Fatal("loading an OBJ without faces succeeded")
	}
}
