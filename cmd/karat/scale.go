package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/castmetal/karat/matter"
	"github.com/castmetal/karat/measure"
	"github.com/castmetal/karat/meshio"
	"github.com/castmetal/karat/scale"
)

var (
	scaleTargetWeight float64
	scaleMaterial     string
	scaleDensity      float64
	scaleOut          string
)

var scaleCmd = &cobra.Command{
	Use:   "scale [file]",
	Short: "Solve the scale factor for a target weight",
	Long: `Compute the uniform scale factor that brings the model to a target
weight, report the scaled dimensions and volume, and optionally write the
scaled model to a new STL file.`,
	Args: cobra.ExactArgs(1),
	Run:  runScale,
}

func init() {
	rootCmd.AddCommand(scaleCmd)

	scaleCmd.Flags().Float64Var(&scaleTargetWeight, "target-weight", 0.0, "target weight in grams (required)")
	scaleCmd.Flags().StringVar(&scaleMaterial, "material", matter.Silver925.Name, "material name from 'karat materials'")
	scaleCmd.Flags().Float64Var(&scaleDensity, "density", 0.0, "density in g/cm³, overrides --material")
	scaleCmd.Flags().StringVar(&scaleOut, "out", "", "write the scaled model to this STL file")
	scaleCmd.MarkFlagRequired("target-weight")
}

func runScale(cmd *cobra.Command, args []string) {
	filename := args[0]

	material, err := resolveMaterial(scaleMaterial, scaleDensity)
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
	current := material.Estimate(volume)

	result := scale.ForTargetWeight(current.Grams, scaleTargetWeight)
	if !result.Valid {
		fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		os.Exit(1)
	}

	dims := scale.Dimensions(measure.Dimensions(mesh), result.Factor)
	scaledMM3, scaledCM3 := scale.Volume(volume, result.Factor)

	fmt.Println("Scale to Target Weight")
	fmt.Println("======================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Material: %s (%g g/cm³)\n\n", material.Name, material.Density)

	fmt.Printf("Original weight: %s\n", current.Display)
	fmt.Printf("Target weight: %s\n", matter.Display(scaleTargetWeight))
	fmt.Printf("Scale factor: %.4f\n\n", result.Factor)

	fmt.Println("Scaled model:")
	fmt.Printf("  Width (X): %.2f mm\n", dims.Width)
	fmt.Printf("  Height (Y): %.2f mm\n", dims.Height)
	fmt.Printf("  Depth (Z): %.2f mm\n", dims.Depth)
	fmt.Printf("  Volume: %.4f cm³ (%.2f mm³)\n", scaledCM3, scaledMM3)
	fmt.Printf("  Weight: %s\n", matter.EstimateWeight(scaledMM3, material.Density).Display)

	if scaleOut != "" {
		scaled := scale.Mesh(mesh, result.Factor)
		if err := meshio.WriteSTL(scaleOut, scaled); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scaled model: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nScaled model written to %s\n", scaleOut)
	}
}
