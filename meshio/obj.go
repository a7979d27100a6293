package meshio

import (
	"github.com/fogleman/fauxgl"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/castmetal/karat"
)

// ReadOBJ loads a Wavefront OBJ file, dropping degenerate triangles and
// welding shared vertices. Only the geometry is kept; materials, normals
// and texture coordinates are ignored.
func ReadOBJ(path string) (*karat.Mesh, error) {
	model, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, errors.Wrap(err, "read obj")
	}
	triangles := make([]karat.Triangle, 0, len(model.Triangles))
	for _, t := range model.Triangles {
		tri := karat.Triangle{objVec(t.V1), objVec(t.V2), objVec(t.V3)}
		if tri.Degenerate(vertexEpsilon) {
			continue
		}
		triangles = append(triangles, tri)
	}
	if len(triangles) == 0 {
		return nil, errors.New("obj: no triangles")
	}
	return karat.FromTriangles(triangles, 0)
}

func objVec(v fauxgl.Vertex) r3.Vec {
	return r3.Vec{X: v.Position.X, Y: v.Position.Y, Z: v.Position.Z}
}
