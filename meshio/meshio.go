// Package meshio loads triangle meshes from model files and writes them
// back. STL is supported in both binary and ASCII form for reading and
// binary form for writing; Wavefront OBJ is supported for reading. This
// package is the file boundary of the module: everything downstream works
// on karat.Mesh values and never touches the filesystem.
package meshio

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/castmetal/karat"
)

// Read loads a mesh file, choosing the decoder from the file extension.
func Read(path string) (*karat.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return ReadSTL(path)
	case ".obj":
		return ReadOBJ(path)
	default:
		return nil, errors.Errorf("unsupported mesh format %q", ext)
	}
}
