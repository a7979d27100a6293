package measure_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/measure"
)

func TestDimensions(t *testing.T) {
	got := measure.Dimensions(cubeMesh(t))
	want := measure.Dims{Width: 1, Height: 1, Depth: 1}
	if got != want {
		t.Errorf("got %+v. want %+v", got, want)
	}

	points := []r3.Vec{
		{X: -1, Y: 0, Z: 2}, {X: 3, Y: 5, Z: 4},
	}
	cloud, err := karat.NewMesh(points, nil)
	if err != nil {
		t.Fatal(err)
	}
	got = measure.Dimensions(cloud)
	want = measure.Dims{Width: 4, Height: 5, Depth: 2}
	if got != want {
		t.Errorf("point cloud: got %+v. want %+v", got, want)
	}

	if got := measure.Dimensions(nil); got != (measure.Dims{}) {
		t.Errorf("nil mesh: got %+v. want zero dims", got)
	}
}

func TestSurfaceArea(t *testing.T) {
	area := measure.SurfaceArea(cubeMesh(t))
	if math.Abs(area.MM2-6) > 1e-12 {
		t.Errorf("cube area: got %v mm². want 6", area.MM2)
	}
	if math.Abs(area.CM2-0.06) > 1e-12 {
		t.Errorf("cube area: got %v cm². want 0.06", area.CM2)
	}

	open := measure.SurfaceArea(openCubeMesh(t))
	if math.Abs(open.MM2-5) > 1e-12 {
		t.Errorf("open cube area: got %v mm². want 5", open.MM2)
	}

	if got := measure.SurfaceArea(nil); got != (measure.Area{}) {
		t.Errorf("nil mesh: got %+v. want zero area", got)
	}
}

func TestProperties(t *testing.T) {
	p := measure.Properties(cubeMesh(t))
	if p.Width != 1 || p.Height != 1 || p.Depth != 1 {
		t.Errorf("dims: got %v %v %v. want 1 1 1", p.Width, p.Height, p.Depth)
	}
	if math.Abs(p.VolumeMM3-1) > 1e-12 || math.Abs(p.VolumeCM3-0.001) > 1e-15 {
		t.Errorf("volume: got %v mm³, %v cm³", p.VolumeMM3, p.VolumeCM3)
	}
	if math.Abs(p.SurfaceAreaMM2-6) > 1e-12 || math.Abs(p.SurfaceAreaCM2-0.06) > 1e-12 {
		t.Errorf("area: got %v mm², %v cm²", p.SurfaceAreaMM2, p.SurfaceAreaCM2)
	}
}

// Open meshes keep their dimensions and area even though the closed
// surface volume is unavailable.
func TestPropertiesOpenMesh(t *testing.T) {
	p := measure.Properties(openCubeMesh(t))
	if p.VolumeMM3 != 0 || p.VolumeCM3 != 0 {
		t.Errorf("volume: got %v mm³, %v cm³. want 0", p.VolumeMM3, p.VolumeCM3)
	}
	if p.Width != 1 || p.Height != 1 || p.Depth != 1 {
		t.Errorf("dims: got %v %v %v. want 1 1 1", p.Width, p.Height, p.Depth)
	}
	if math.Abs(p.SurfaceAreaMM2-5) > 1e-12 {
		t.Errorf("area: got %v mm². want 5", p.SurfaceAreaMM2)
	}
}
