package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// d3.Box is a 3d bounding box.
type Box r3.Box

// Empty returns a box that contains no points. Including any point in it
// yields the bounding box of that point.
func Empty() Box {
	return Box{
		Min: Elem(math.MaxFloat64),
		Max: Elem(-math.MaxFloat64),
	}
}

// IsEmpty returns true if the box contains no points.
func (a Box) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Add(a.Min, r3.Scale(0.5, a.Size()))
}

// Volume returns the volume of a 3d box. Empty and flat boxes have zero
// volume.
func (a Box) Volume() float64 {
	if a.IsEmpty() {
		return 0
	}
	s := a.Size()
	return s.X * s.Y * s.Z
}
