package measure

import "github.com/castmetal/karat"

// voxelDensities are the grid resolutions evaluated by CompareVolumes.
var voxelDensities = [...]int{50, 100, 200}

// VolumeVoxel estimates volume by voxelizing the mesh at the given grid
// density. The point-in-mesh containment test this needs is not
// implemented, so the method always returns 0 and its comparison rows
// rank as failed. The signature and the standard densities are kept
// stable so reports keep their shape once it is implemented.
func VolumeVoxel(m *karat.Mesh, density int) float64 {
	v, err := voxelVolume(m, density)
	if err != nil {
		return 0
	}
	return v
}

func voxelVolume(m *karat.Mesh, density int) (float64, error) {
	if m.IsEmpty() {
		return 0, errNoFaces
	}
	return 0, nil
}
