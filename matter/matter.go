// Package matter holds the casting material table and converts measured
// volume into estimated weight. Densities are bulk values for the common
// jewellery alloys; actual castings vary with alloy batch and porosity.
package matter

import (
	"fmt"

	"github.com/castmetal/karat"
)

// Material is a castable or printable material with its density.
type Material struct {
	Name    string
	Density float64 // g/cm³
}

// Estimate converts a volume in mm³ into a weight estimate for this
// material.
func (m Material) Estimate(volumeMM3 float64) Weight {
	return EstimateWeight(volumeMM3, m.Density)
}

var (
	// Gold24K is fine gold (999 hallmark) used for investment casting.
	Gold24K = Material{Name: "24 carat gold (999)", Density: 19.32}
	// Silver925 is sterling silver, the default bench alloy.
	Silver925 = Material{Name: "Sterling Silver 925", Density: 10.36}
	// Platinum950 is the common platinum jewellery alloy.
	Platinum950 = Material{Name: "Platinum 950", Density: 20.64}
	// Resin is standard castable printer resin, useful to weigh prints.
	Resin = Material{Name: "Standard Resin", Density: 1.2}
)

// materials in display order: golds, platinum group, silvers, base
// metals, resin, gemstones.
var materials = []Material{
	Gold24K,
	{Name: "22 carat gold (916)", Density: 17.7},
	{Name: "18K yellow gold 3N", Density: 15.5},
	{Name: "18K rose gold", Density: 15.0},
	{Name: "18K white gold (Pd)", Density: 15.0},
	{Name: "18K white gold (Ag)", Density: 14.7},
	{Name: "14K yellow gold N2", Density: 13.58},
	{Name: "14K rose gold", Density: 13.2},
	{Name: "14K white gold", Density: 13.0},
	{Name: "10K gold", Density: 11.6},
	{Name: "9K gold", Density: 10.8},
	{Name: "Pure platinum (999)", Density: 21.45},
	Platinum950,
	{Name: "Platinum 900", Density: 20.0},
	{Name: "Pure palladium (999)", Density: 12.02},
	{Name: "Palladium 950", Density: 11.5},
	{Name: "Pure silver (999)", Density: 10.49},
	Silver925,
	{Name: "Copper Cu", Density: 8.96},
	{Name: "Brass UZ36", Density: 8.5},
	{Name: "Bronze", Density: 8.8},
	{Name: "316L Stainless Steel", Density: 8.0},
	{Name: "Grade 2 Titanium", Density: 4.51},
	{Name: "Aluminium", Density: 2.7},
	Resin,
	{Name: "Diamond", Density: 3.52},
	{Name: "Sapphire / Ruby", Density: 4.0},
	{Name: "Emerald", Density: 2.75},
	{Name: "Quartz", Density: 2.65},
}

// Materials returns the material table in display order.
func Materials() []Material {
	return append([]Material(nil), materials...)
}

// ByName returns the material with the given display name.
func ByName(name string) (Material, bool) {
	for _, m := range materials {
		if m.Name == name {
			return m, true
		}
	}
	return Material{}, false
}

// NotComputable is the display placeholder shown when a weight cannot be
// estimated.
const NotComputable = "--"

// Weight is an estimated mass with its ready-to-show display form.
type Weight struct {
	Grams   float64
	Display string
}

// EstimateWeight converts a volume in mm³ and a density in g/cm³ into an
// estimated weight. Both inputs must be positive, otherwise Grams is 0
// and Display is the "--" placeholder.
func EstimateWeight(volumeMM3, densityGPerCM3 float64) Weight {
	if volumeMM3 <= 0 || densityGPerCM3 <= 0 {
		return Weight{Display: NotComputable}
	}
	grams := volumeMM3 / karat.CubicMillimetresPerCubicCentimetre * densityGPerCM3
	return Weight{Grams: grams, Display: Display(grams)}
}

// Display formats a weight in grams for showing to users. Weights of a
// kilogram and above display in kilograms with three decimals, lighter
// ones in grams with two. Non-positive weights display as the "--"
// placeholder.
func Display(grams float64) string {
	switch {
	case grams <= 0:
		return NotComputable
	case grams >= 1000:
		return fmt.Sprintf("%.3f kg", grams/1000)
	}
	return fmt.Sprintf("%.2f g", grams)
}
