package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "karat",
	Short: "Measure, weigh and rescale 3D models for casting",
	Long: `karat analyzes triangulated 3D models (STL and OBJ): bounding box
dimensions, surface area, enclosed volume estimated by several
independent methods, estimated cast weight by material density, and the
uniform scale factor required to reach a target weight.`,
	Version: "1.0.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
