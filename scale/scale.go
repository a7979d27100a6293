// Package scale solves for the uniform scale factor that brings a model
// to a target weight and applies factors to dimensions, volumes and
// meshes. Under uniform scaling weight grows with the cube of the linear
// factor, so the factor for a weight ratio is its cube root.
package scale

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
	"github.com/castmetal/karat/measure"
)

// ErrInvalidWeights is reported when either weight handed to
// ForTargetWeight is not positive. UIs show its text verbatim.
var ErrInvalidWeights = errors.New("Invalid weight values")

// Result is the outcome of a scale solve. A Factor of 1 with Valid false
// means the solve did not run, not that the model already matches the
// target.
type Result struct {
	Factor float64
	Valid  bool
	Err    error
}

// ForTargetWeight returns the uniform scale factor that takes a model
// weighing currentGrams to targetGrams: cbrt(target/current).
func ForTargetWeight(currentGrams, targetGrams float64) Result {
	if currentGrams <= 0 || targetGrams <= 0 {
		return Result{Factor: 1, Err: ErrInvalidWeights}
	}
	return Result{Factor: math.Cbrt(targetGrams / currentGrams), Valid: true}
}

// Dimensions applies a uniform scale factor to bounding box extents.
func Dimensions(d measure.Dims, factor float64) measure.Dims {
	return measure.Dims{
		Width:  d.Width * factor,
		Height: d.Height * factor,
		Depth:  d.Depth * factor,
	}
}

// Volume applies the cube law to a volume in mm³ and returns the scaled
// volume in mm³ and cm³.
func Volume(volumeMM3, factor float64) (mm3, cm3 float64) {
	mm3 = volumeMM3 * factor * factor * factor
	return mm3, mm3 / karat.CubicMillimetresPerCubicCentimetre
}

// Mesh returns a copy of m with every point scaled by factor about the
// origin, so a scale can be previewed without touching the loaded model.
// Absent meshes and non-positive factors yield nil.
func Mesh(m *karat.Mesh, factor float64) *karat.Mesh {
	if m == nil || factor <= 0 {
		return nil
	}
	points := m.Points()
	for i := range points {
		points[i] = r3.Scale(factor, points[i])
	}
	scaled, err := karat.NewMesh(points, m.TriangleIndices())
	if err != nil {
		// Cannot happen: indices were validated when m was built.
		return nil
	}
	return scaled
}
