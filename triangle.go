package karat

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat/internal/d3"
)

// Triangle is a 3D triangle defined by its three vertices.
type Triangle [3]r3.Vec

// Normal returns the triangle's unit normal following the right hand rule
// on the vertex order. Zero-area triangles return the zero vector.
func (t Triangle) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if norm := r3.Norm(n); norm > 0 {
		return r3.Scale(1/norm, n)
	}
	return r3.Vec{}
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
}

// Centroid returns the mean of the triangle's vertices.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(t[0], r3.Add(t[1], t[2])))
}

// Degenerate returns true if two of the triangle's vertices coincide
// within tol on every axis.
func (t Triangle) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Bounds returns the triangle's bounding box.
func (t Triangle) Bounds() r3.Box {
	bb := d3.Empty()
	for _, v := range t {
		bb = bb.Include(v)
	}
	return r3.Box(bb)
}
