package compare

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
)

// FieldDiff is one output quantity evaluated for two inputs
type FieldDiff struct {
	Name    string
	Unit    string
	A, B    float64
	Delta   float64 // B - A
	Percent float64 // Delta relative to A, NaN when A is 0
}

// CompareInputs computes both inputs and diffs every output field
func CompareInputs(a, b models.EngineInput, opts calc.Options) ([]FieldDiff, error) {
	outA, err := calc.ComputeWith(a, opts)
	if err != nil {
		return nil, fmt.Errorf("setup A: %w", err)
	}
	outB, err := calc.ComputeWith(b, opts)
	if err != nil {
		return nil, fmt.Errorf("setup B: %w", err)
	}

	fields := []struct {
		name, unit string
		get        func(models.EngineOutput) float64
	}{
		{"Target AFR", "", func(o models.EngineOutput) float64 { return o.TargetAFR }},
		{"Air Density", "g/L", func(o models.EngineOutput) float64 { return o.AirDensity }},
		{"Base Pulse Width", "ms", func(o models.EngineOutput) float64 { return o.BasePulseWidth }},
		{"Dead Time", "ms", func(o models.EngineOutput) float64 { return o.DeadTime }},
		{"Actual Pulse Width", "ms", func(o models.EngineOutput) float64 { return o.ActualPulseWidth }},
		{"Duty Cycle", "%", func(o models.EngineOutput) float64 { return o.DutyCycle }},
		{"Total Fuel Flow", "cc/min", func(o models.EngineOutput) float64 { return o.TotalFuelFlow }},
		{"Fuel Flow per Injector", "cc/min", func(o models.EngineOutput) float64 { return o.FuelFlowPerInj }},
		{"Theoretical HP", "hp", func(o models.EngineOutput) float64 { return o.HPTheoretical }},
		{"BSFC HP", "hp", func(o models.EngineOutput) float64 { return o.HPBSFC }},
	}

	diffs := make([]FieldDiff, 0, len(fields))
	for _, f := range fields {
		va, vb := f.get(outA), f.get(outB)
		d := FieldDiff{Name: f.name, Unit: f.unit, A: va, B: vb, Delta: vb - va, Percent: math.NaN()}
		if va != 0 {
			d.Percent = d.Delta / va * 100
		}
		diffs = append(diffs, d)
	}
	return diffs, nil
}

// DisplayComparison prints a field-by-field table
func DisplayComparison(labelA, labelB string, diffs []FieldDiff) {
	pterm.DefaultHeader.WithFullWidth().Println("Setup Comparison")

	data := pterm.TableData{
		{"Output", labelA, labelB, "Change", ""},
	}
	for _, d := range diffs {
		pct := "n/a"
		if !math.IsNaN(d.Percent) {
			pct = fmt.Sprintf("%+.1f%%", d.Percent)
		}
		data = append(data, []string{
			d.Name,
			fmt.Sprintf("%.2f %s", d.A, d.Unit),
			fmt.Sprintf("%.2f %s", d.B, d.Unit),
			pct,
			getDiffSymbol(d.Percent/100, 1),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// CompareMaps returns m2 - m1 cell by cell
func CompareMaps(m1, m2 *models.FuelMap) ([][]float64, error) {
	if m1.Config.Rows() != m2.Config.Rows() || m1.Config.Cols() != m2.Config.Cols() {
		return nil, fmt.Errorf("map sizes differ: %dx%d vs %dx%d",
			m1.Config.Rows(), m1.Config.Cols(), m2.Config.Rows(), m2.Config.Cols())
	}
	return compareMapData(m1.Data, m2.Data), nil
}

func compareMapData(data1, data2 [][]float64) [][]float64 {
	diff := make([][]float64, len(data1))
	for i := range data1 {
		diff[i] = make([]float64, len(data1[i]))
		for j := range data1[i] {
			diff[i][j] = data2[i][j] - data1[i][j]
		}
	}
	return diff
}

// DisplayMapComparison prints change statistics and a difference grid
func DisplayMapComparison(m1, m2 *models.FuelMap) error {
	diff, err := CompareMaps(m1, m2)
	if err != nil {
		return err
	}
	cfg := m1.Config

	pterm.DefaultSection.Printf("Comparing: %s vs %s\n", m1.Config.Name, m2.Config.Name)

	var totalDiff, maxDiff, minDiff float64
	changedCells := 0
	for _, row := range diff {
		for _, d := range row {
			if d == 0 {
				continue
			}
			changedCells++
			totalDiff += d
			if d > maxDiff {
				maxDiff = d
			}
			if d < minDiff {
				minDiff = d
			}
		}
	}

	cells := cfg.Rows() * cfg.Cols()
	avgDiff := 0.0
	if changedCells > 0 {
		avgDiff = totalDiff / float64(changedCells)
	}

	pterm.Info.Printf("Changed cells: %d / %d (%.1f%%)\n",
		changedCells, cells, float64(changedCells)/float64(cells)*100)
	pterm.Info.Printf("Average change: %.2f %s\n", avgDiff, cfg.Unit)
	pterm.Info.Printf("Max increase: %.2f %s\n", maxDiff, cfg.Unit)
	pterm.Info.Printf("Max decrease: %.2f %s\n", minDiff, cfg.Unit)

	pterm.Println("\nDifference Map (second - first):")
	pterm.DefaultBox.Println(BuildDiffString(diff, cfg))
	return nil
}

// BuildDiffString renders a difference grid with increase/decrease symbols
func BuildDiffString(diff [][]float64, cfg models.MapConfig) string {
	var result strings.Builder

	maxAbs := 0.0
	for _, row := range diff {
		for _, d := range row {
			maxAbs = math.Max(maxAbs, math.Abs(d))
		}
	}

	result.WriteString("    RPM → |")
	for _, rpm := range cfg.RPMAxis {
		result.WriteString(fmt.Sprintf("%-6.0f", rpm))
	}
	result.WriteString("\n")
	result.WriteString("  MAP kPa |" + strings.Repeat("-", cfg.Cols()*6) + "\n")

	for i, kpa := range cfg.MAPAxis {
		result.WriteString(fmt.Sprintf("   %4.0f ↓ |", kpa))
		for j := range cfg.RPMAxis {
			result.WriteString(getDiffSymbol(diff[i][j], maxAbs) + "   ")
		}
		result.WriteString("\n")
	}

	result.WriteString("\nLegend: ")
	result.WriteString(pterm.FgBlue.Sprint("▼▼") + " Large Decrease  ")
	result.WriteString(pterm.FgCyan.Sprint("▼ ") + " Small Decrease  ")
	result.WriteString(pterm.FgGray.Sprint("··") + " No Change  ")
	result.WriteString(pterm.FgYellow.Sprint("▲ ") + " Small Increase  ")
	result.WriteString(pterm.FgRed.Sprint("▲▲") + " Large Increase")

	return result.String()
}

func getDiffSymbol(val, maxAbs float64) string {
	if val == 0 || maxAbs == 0 || math.IsNaN(val) {
		return pterm.FgGray.Sprint("···")
	}

	normalized := val / maxAbs

	switch {
	case normalized < -0.5:
		return pterm.FgBlue.Sprint("▼▼ ")
	case normalized < -0.1:
		return pterm.FgCyan.Sprint("▼  ")
	case normalized > 0.5:
		return pterm.FgRed.Sprint("▲▲ ")
	case normalized > 0.1:
		return pterm.FgYellow.Sprint("▲  ")
	}
	return pterm.FgGray.Sprint("·  ")
}
