package renderer

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
)

func init() {
	pterm.DisableStyling()
}

func TestBuildResultStringFormatting(t *testing.T) {
	in := models.DefaultInput()
	out, err := calc.Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	got := BuildResultString(in, out)

	for _, want := range []string{
		"Target AFR:             11.76",
		"Base Pulse Width:       8.60 ms",
		"Dead Time:              0.64 ms",
		"Actual Pulse Width:     9.24 ms",
		"Injector Duty Cycle:    46.22 %",
		"Theoretical HP:         396 hp",
		"BSFC HP:                487 hp (BSFC 0.45)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if n := strings.Count(got, "\n"); n != 9 {
		t.Errorf("want 10 lines, got %d", n+1)
	}
}

func TestFuelCaption(t *testing.T) {
	cases := map[models.FuelType]string{
		models.Gasoline95: "95 Octane: stoich AFR 14.7:1, density 0.74 g/cc",
		models.Methanol:   "Methanol: stoich AFR 6.4:1, density 0.791 g/cc",
		models.E85:        "E85: stoich AFR 9.765:1, density 0.79 g/cc",
	}
	for fuel, want := range cases {
		if got := FuelCaption(fuel); got != want {
			t.Errorf("FuelCaption(%s) = %q, want %q", fuel, got, want)
		}
	}
	if got := FuelCaption(models.FuelType(-1)); got != "" {
		t.Errorf("invalid fuel caption = %q", got)
	}
}

func TestBuildMapString(t *testing.T) {
	m := &models.FuelMap{
		Config: models.MapConfig{
			Name:    "Duty Cycle",
			Unit:    "%",
			RPMAxis: []float64{1000, 2000},
			MAPAxis: []float64{100, 200},
		},
		Data: [][]float64{{10, 20}, {30, 40}},
	}
	min, max := MinMax(m.Data)
	if min != 10 || max != 40 {
		t.Fatalf("MinMax = %.0f, %.0f", min, max)
	}

	got := BuildMapString(m, ModeValues, min, max)
	for _, want := range []string{"   1000   2000", "    100 ↓ |  10.00  20.00", "    200 ↓ |  30.00  40.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if sym := BuildMapString(m, ModeSymbols, min, max); !strings.Contains(sym, "Legend:") {
		t.Errorf("symbols mode should print a legend")
	}
}

func TestMinMaxEmpty(t *testing.T) {
	if min, max := MinMax(nil); min != 0 || max != 0 {
		t.Errorf("empty map = %.0f, %.0f", min, max)
	}
}
