package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/castmetal/karat/matter"
	"github.com/castmetal/karat/measure"
	"github.com/castmetal/karat/meshio"
)

var (
	weighMaterial string
	weighDensity  float64
)

var weighCmd = &cobra.Command{
	Use:   "weigh [file]",
	Short: "Estimate the cast weight of a model",
	Long: `Estimate the model's weight from its closed surface volume and a material
density. Pick a material from 'karat materials' or give a density
directly.`,
	Args: cobra.ExactArgs(1),
	Run:  runWeigh,
}

func init() {
	rootCmd.AddCommand(weighCmd)

	weighCmd.Flags().StringVar(&weighMaterial, "material", matter.Silver925.Name, "material name from 'karat materials'")
	weighCmd.Flags().Float64Var(&weighDensity, "density", 0.0, "density in g/cm³, overrides --material")
}

func runWeigh(cmd *cobra.Command, args []string) {
	filename := args[0]

	material, err := resolveMaterial(weighMaterial, weighDensity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mesh, err := meshio.Read(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	volume := measure.Volume(mesh)
	weight := material.Estimate(volume)

	fmt.Println("Weight Estimate")
	fmt.Println("===============")
	fmt.Printf("File: %s\n\n", filename)
	fmt.Printf("Volume: %.2f mm³\n", volume)
	fmt.Printf("Material: %s\n", material.Name)
	fmt.Printf("Density: %g g/cm³\n", material.Density)
	fmt.Printf("Estimated weight: %s\n", weight.Display)

	if volume == 0 {
		fmt.Println("\nThe model is not a closed surface. Run 'karat volume' for estimates.")
	}
}

// resolveMaterial turns the --material/--density flag pair into a
// Material. An explicit density wins over the material name.
func resolveMaterial(name string, density float64) (matter.Material, error) {
	if density > 0 {
		return matter.Material{Name: fmt.Sprintf("custom (%g g/cm³)", density), Density: density}, nil
	}
	m, ok := matter.ByName(name)
	if !ok {
		return matter.Material{}, fmt.Errorf("unknown material %q, run 'karat materials' for the list", name)
	}
	return m, nil
}
