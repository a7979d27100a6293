package measure

import (
	"fmt"
	"math"
	"runtime/debug"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/castmetal/karat"
)

// Method keys used by CompareVolumes. Voxel rows use KeyVoxel.
const (
	KeyClosedSurface = "closed_surface"
	KeyConvexHull    = "convex_hull"
	KeyMeshRepair    = "mesh_repair"
	KeyTetraOrigin   = "manual_tetra_origin"
	KeyTetraCentroid = "manual_tetra_centroid"
	KeyBoundingBox   = "bounding_box"
	KeyTriangulate   = "triangulate"
	KeySmooth        = "smooth"
)

// KeyVoxel returns the comparison key of the voxel method at a density.
func KeyVoxel(density int) string {
	return fmt.Sprintf("voxel_d%d", density)
}

// VolumeResult is one row of a multi-method volume comparison.
type VolumeResult struct {
	// Key identifies the method invocation, e.g. "manual_tetra_origin".
	Key string
	// Method is the human readable method name.
	Method string
	// Volume in mm³. 0 means the method failed or is not implemented.
	Volume float64
	// DiffFromTarget is |Volume - target| when a target volume was given
	// and the method ran to completion, NaN otherwise. Rankings put NaN
	// rows last.
	DiffFromTarget float64
	// Err is why the method failed, nil for rows that ran to completion.
	Err error
}

// Failed reports whether the row is excluded from successful rankings.
func (r VolumeResult) Failed() bool {
	return r.Err != nil || r.Volume == 0
}

type methodErr struct {
	panicObj interface{}
	stack    string
}

func (e *methodErr) Error() string {
	return fmt.Sprintf("%s", e.panicObj)
}

type invocation struct {
	key    string
	method string
	fn     func() (float64, error)
}

// invocations lists every estimator variant in reporting order.
func invocations(m *karat.Mesh) []invocation {
	invs := []invocation{
		{KeyClosedSurface, "Closed Surface", func() (float64, error) { return closedSurfaceVolume(m) }},
		{KeyConvexHull, "Convex Hull", func() (float64, error) { return convexHullVolume(m) }},
	}
	for _, density := range voxelDensities {
		density := density
		invs = append(invs, invocation{
			KeyVoxel(density),
			fmt.Sprintf("Voxel (density=%d)", density),
			func() (float64, error) { return voxelVolume(m, density) },
		})
	}
	return append(invs,
		invocation{KeyMeshRepair, "Mesh Repair + Volume", func() (float64, error) { return repairedVolume(m, 0) }},
		invocation{KeyTetraOrigin, "Manual Tetrahedron (origin)", func() (float64, error) { return tetrahedralVolume(m, Origin) }},
		invocation{KeyTetraCentroid, "Manual Tetrahedron (centroid)", func() (float64, error) { return tetrahedralVolume(m, Centroid) }},
		invocation{KeyBoundingBox, "Bounding Box (upper bound)", func() (float64, error) { return boundingBoxVolume(m) }},
		invocation{KeyTriangulate, "Triangulate + Volume", func() (float64, error) { return preprocessedVolume(m, Triangulate) }},
		invocation{KeySmooth, "Smooth + Volume", func() (float64, error) { return preprocessedVolume(m, Smooth) }},
	)
}

// CompareVolumes runs every volume estimator against m and returns one
// VolumeResult per method invocation, keyed by method identifier. A panic
// or error in one method never disturbs the others. If targetVolume > 0,
// rows that ran to completion carry their absolute difference from it.
// A nil mesh yields an empty map; an empty mesh yields every key with a
// populated Err.
func CompareVolumes(m *karat.Mesh, targetVolume float64) map[string]VolumeResult {
	results := make(map[string]VolumeResult)
	if m == nil {
		return results
	}
	for _, inv := range invocations(m) {
		vol, err := run(inv.fn)
		r := VolumeResult{
			Key:            inv.key,
			Method:         inv.method,
			DiffFromTarget: math.NaN(),
			Err:            err,
		}
		if err == nil {
			r.Volume = vol
			if targetVolume > 0 {
				r.DiffFromTarget = math.Abs(vol - targetVolume)
			}
		}
		results[inv.key] = r
	}
	return results
}

// run executes one estimator, converting panics into errors so one bad
// method cannot abort the whole comparison.
func run(fn func() (float64, error)) (v float64, err error) {
	defer func() {
		if a := recover(); a != nil {
			v = 0
			err = &methodErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return fn()
}

// Rank orders comparison rows best first: by ascending difference from
// the target when one was supplied, rows without a difference last, ties
// and difference-less rows by ascending volume and then key.
func Rank(results map[string]VolumeResult) []VolumeResult {
	rows := make([]VolumeResult, 0, len(results))
	for _, r := range results {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].DiffFromTarget, rows[j].DiffFromTarget
		iNaN, jNaN := math.IsNaN(di), math.IsNaN(dj)
		switch {
		case iNaN != jNaN:
			return jNaN
		case !iNaN && di != dj:
			return di < dj
		case rows[i].Volume != rows[j].Volume:
			return rows[i].Volume < rows[j].Volume
		default:
			return rows[i].Key < rows[j].Key
		}
	})
	return rows
}

// Successful returns the rows that produced a usable volume, ranked.
func Successful(results map[string]VolumeResult) []VolumeResult {
	var rows []VolumeResult
	for _, r := range Rank(results) {
		if !r.Failed() {
			rows = append(rows, r)
		}
	}
	return rows
}

// Best returns the successful row closest to the comparison target. ok is
// false when no row has a difference from the target.
func Best(results map[string]VolumeResult) (best VolumeResult, ok bool) {
	ranked := Successful(results)
	if len(ranked) == 0 || math.IsNaN(ranked[0].DiffFromTarget) {
		return VolumeResult{}, false
	}
	return ranked[0], true
}

// Summary describes the spread of successful volume estimates.
type Summary struct {
	// Methods is the number of successful rows out of Total attempted.
	Methods int
	Total   int
	Mean    float64
	Min     float64
	Max     float64
	Range   float64
}

// Summarize computes summary statistics over the successful rows of a
// comparison.
func Summarize(results map[string]VolumeResult) Summary {
	ok := Successful(results)
	s := Summary{Methods: len(ok), Total: len(results)}
	if len(ok) == 0 {
		return s
	}
	vols := make([]float64, len(ok))
	for i, r := range ok {
		vols[i] = r.Volume
	}
	s.Mean = stat.Mean(vols, nil)
	s.Min = floats.Min(vols)
	s.Max = floats.Max(vols)
	s.Range = s.Max - s.Min
	return s
}
