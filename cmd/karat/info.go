package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/castmetal/karat/measure"
	"github.com/castmetal/karat/meshio"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display dimensions, surface area and volume of a model",
	Long: `Show the model's triangle statistics, bounding box dimensions, surface
area and closed surface volume.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh, err := meshio.Read(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	props := measure.Properties(mesh)

	fmt.Println("Model Information")
	fmt.Println("=================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Points: %d\n", mesh.PointCount())
	fmt.Printf("  Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("  Watertight: %v\n\n", measure.Watertight(mesh))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.2f mm\n", props.Width)
	fmt.Printf("  Height (Y): %.2f mm\n", props.Height)
	fmt.Printf("  Depth (Z): %.2f mm\n\n", props.Depth)

	fmt.Println("Surface Area:")
	fmt.Printf("  %.2f mm² (%.2f cm²)\n\n", props.SurfaceAreaMM2, props.SurfaceAreaCM2)

	fmt.Println("Volume (closed surface):")
	if props.VolumeMM3 > 0 {
		fmt.Printf("  %.2f mm³ (%.4f cm³)\n", props.VolumeMM3, props.VolumeCM3)
	} else {
		fmt.Println("  not computable, run 'karat volume' for estimates")
	}
}
