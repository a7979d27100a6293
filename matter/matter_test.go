package matter_test

import (
	"math"
	"testing"

	"github.com/castmetal/karat/matter"
)

func TestEstimateWeight(t *testing.T) {
	cases := []struct {
		name      string
		volumeMM3 float64
		density   float64
		grams     float64
		display   string
	}{
		{"silver cube", 1000, 10.36, 10.36, "10.36 g"},
		{"gold cube", 1000, 19.32, 19.32, "19.32 g"},
		{"small resin print", 250, 1.2, 0.3, "0.30 g"},
		{"kilogram boundary", 100000, 10, 1000, "1.000 kg"},
		{"above a kilogram", 250000, 10.36, 2590, "2.590 kg"},
		{"zero volume", 0, 10.36, 0, "--"},
		{"negative volume", -5, 10.36, 0, "--"},
		{"zero density", 1000, 0, 0, "--"},
	}
	for _, c := range cases {
		got := matter.EstimateWeight(c.volumeMM3, c.density)
		if math.Abs(got.Grams-c.grams) > 1e-9 {
			t.Errorf("%s: got %v g. want %v g", c.name, got.Grams, c.grams)
		}
		if got.Display != c.display {
			t.Errorf("%s: got %q. want %q", c.name, got.Display, c.display)
		}
	}
}

func TestMaterialEstimate(t *testing.T) {
	w := matter.Silver925.Estimate(1000)
	if math.Abs(w.Grams-10.36) > 1e-9 {
		t.Errorf("got %v g. want 10.36 g", w.Grams)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		grams float64
		want  string
	}{
		{0, "--"},
		{-1, "--"},
		{0.5, "0.50 g"},
		{10.361, "10.36 g"},
		{999.994, "999.99 g"},
		{1000, "1.000 kg"},
		{2590.4, "2.590 kg"},
	}
	for _, c := range cases {
		if got := matter.Display(c.grams); got != c.want {
			t.Errorf("Display(%v): got %q. want %q", c.grams, got, c.want)
		}
	}
}

func TestMaterials(t *testing.T) {
	all := matter.Materials()
	if len(all) != 29 {
		t.Fatalf("got %d materials. want 29", len(all))
	}
	if all[0] != matter.Gold24K {
		t.Errorf("first material: got %+v. want %+v", all[0], matter.Gold24K)
	}
	seen := make(map[string]bool, len(all))
	for _, m := range all {
		if m.Name == "" || m.Density <= 0 {
			t.Errorf("bad material entry %+v", m)
		}
		if seen[m.Name] {
			t.Errorf("duplicate material %q", m.Name)
		}
		seen[m.Name] = true
	}

	// The returned slice is a copy.
	all[0] = matter.Material{Name: "mangled"}
	if matter.Materials()[0] != matter.Gold24K {
		t.Error("mutating Materials() result changed the table")
	}
}

func TestByName(t *testing.T) {
	m, ok := matter.ByName("Sterling Silver 925")
	if !ok || m != matter.Silver925 {
		t.Errorf("got %+v, %v. want %+v", m, ok, matter.Silver925)
	}
	if _, ok := matter.ByName("unobtainium"); ok {
		t.Error("found a material that does not exist")
	}
}
