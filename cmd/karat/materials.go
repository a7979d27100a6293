package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castmetal/karat/matter"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the built-in material densities",
	Run:   runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) {
	fmt.Println("Materials")
	fmt.Println("=========")
	for _, m := range matter.Materials() {
		fmt.Printf("%-25s %6.2f g/cm³\n", m.Name, m.Density)
	}
}
