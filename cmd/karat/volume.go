package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/castmetal/karat/measure"
	"github.com/castmetal/karat/meshio"
)

var volumeTarget float64

var volumeCmd = &cobra.Command{
	Use:   "volume [file]",
	Short: "Estimate volume with every available method",
	Long: `Run every volume estimation method against the model and report the
results side by side, best first. The methods disagree on defective
meshes, so the spread doubles as a mesh quality report.`,
	Args: cobra.ExactArgs(1),
	Run:  runVolume,
}

func init() {
	rootCmd.AddCommand(volumeCmd)

	volumeCmd.Flags().Float64Var(&volumeTarget, "target", 0.0, "known volume in mm³ to rank methods against")
}

func runVolume(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh, err := meshio.Read(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	results := measure.CompareVolumes(mesh, volumeTarget)

	fmt.Println("Volume Estimates")
	fmt.Println("================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Triangles: %d, watertight: %v\n", mesh.TriangleCount(), measure.Watertight(mesh))
	if volumeTarget > 0 {
		fmt.Printf("Target volume: %.2f mm³\n", volumeTarget)
	}
	fmt.Println()

	fmt.Printf("%-30s | %15s | %12s | %s\n", "Method", "Volume (mm³)", "Diff (mm³)", "Status")
	fmt.Println(strings.Repeat("-", 78))
	for _, row := range measure.Rank(results) {
		fmt.Printf("%-30s | %15s | %12s | %s\n",
			row.Method, formatVolume(row.Volume), formatDiff(row.DiffFromTarget), formatStatus(row))
	}

	if best, ok := measure.Best(results); ok {
		fmt.Printf("\nBest match: %s (off by %.2f mm³)\n", best.Method, best.DiffFromTarget)
	}

	s := measure.Summarize(results)
	if s.Methods == 0 {
		fmt.Println("\nNo method produced a usable volume.")
		return
	}
	fmt.Printf("\nMethods succeeded: %d/%d\n", s.Methods, s.Total)
	fmt.Printf("Mean volume: %.2f mm³\n", s.Mean)
	fmt.Printf("Volume range: %.2f to %.2f mm³ (spread %.2f)\n", s.Min, s.Max, s.Range)
}

func formatVolume(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatDiff(d float64) string {
	if math.IsNaN(d) {
		return ""
	}
	return fmt.Sprintf("%.2f", d)
}

func formatStatus(r measure.VolumeResult) string {
	switch {
	case r.Err != nil:
		return "failed: " + r.Err.Error()
	case r.Volume == 0:
		return "no volume"
	}
	return "ok"
}
