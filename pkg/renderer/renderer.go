package renderer

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/models"
)

// Display modes for fuel maps
const (
	ModeValues  = "values"
	ModeHeatmap = "heatmap"
	ModeSymbols = "symbols"
)

// FuelCaption summarises the stoichiometric AFR and density of a fuel
func FuelCaption(f models.FuelType) string {
	p, ok := f.Properties()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s: stoich AFR %g:1, density %g g/cc", p.Label, p.StoichAFR, p.Density)
}

// RenderResult prints the inputs caption and every output field
func RenderResult(in models.EngineInput, out models.EngineOutput) {
	pterm.Info.Println(FuelCaption(in.Fuel))
	if out.DeadTimeClamped {
		lo, hi := models.DefaultDeadTimeCurve.Range()
		pterm.Warning.Printf("Battery voltage %.1f V is outside %.0f-%.0f V, dead time held at %.2f ms\n",
			in.BatteryVoltage, lo, hi, out.DeadTime)
	}
	if out.DutyCycle > 100 {
		pterm.Warning.Printf("Duty cycle %.2f%% exceeds 100%%: injectors are too small\n", out.DutyCycle)
	}

	title := fmt.Sprintf("%s | %d cyl | %.0f cc | %.0f RPM | %s",
		in.Fuel, in.Cylinders, in.DisplacementCC, in.RPM, in.Engine)
	pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(BuildResultString(in, out))
}

// BuildResultString formats outputs with two decimals, horsepower as whole numbers
func BuildResultString(in models.EngineInput, out models.EngineOutput) string {
	rows := [][2]string{
		{"Target AFR", fmt.Sprintf("%.2f", out.TargetAFR)},
		{"Air Density", fmt.Sprintf("%.2f g/L", out.AirDensity)},
		{"Base Pulse Width", fmt.Sprintf("%.2f ms", out.BasePulseWidth)},
		{"Dead Time", fmt.Sprintf("%.2f ms", out.DeadTime)},
		{"Actual Pulse Width", fmt.Sprintf("%.2f ms", out.ActualPulseWidth)},
		{"Injector Duty Cycle", fmt.Sprintf("%.2f %%", out.DutyCycle)},
		{"Total Fuel Flow", fmt.Sprintf("%.2f cc/min", out.TotalFuelFlow)},
		{"Fuel Flow per Injector", fmt.Sprintf("%.2f cc/min", out.FuelFlowPerInj)},
		{"Theoretical HP", fmt.Sprintf("%.0f hp", out.HPTheoretical)},
		{"BSFC HP", fmt.Sprintf("%.0f hp (BSFC %.2f)", out.HPBSFC, in.Engine.BSFC())},
	}

	var result strings.Builder
	for i, row := range rows {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(fmt.Sprintf("%-24s%s", row[0]+":", row[1]))
	}
	return result.String()
}

// ListFuels displays the fuel property table
func ListFuels() {
	pterm.DefaultHeader.WithFullWidth().Println("Fuel Properties")

	data := pterm.TableData{
		{"Fuel", "Stoich AFR", "Density (g/cc)", "Energy (BTU/lb)"},
	}
	for _, f := range models.AllFuels {
		p, _ := f.Properties()
		data = append(data, []string{
			p.Label,
			fmt.Sprintf("%.3f", p.StoichAFR),
			fmt.Sprintf("%.3f", p.Density),
			fmt.Sprintf("%.0f", p.Energy),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// ListInputs displays the numeric inputs with their ranges and defaults
func ListInputs() {
	data := pterm.TableData{
		{"Key", "Name", "Unit", "Min", "Max", "Default", "Description"},
	}
	for _, p := range models.InputParams {
		data = append(data, []string{
			p.Key,
			p.Name,
			p.Unit,
			fmt.Sprintf("%g", p.MinValue),
			fmt.Sprintf("%g", p.MaxValue),
			fmt.Sprintf("%g", p.Default),
			p.Description,
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// RenderFuelMap displays a computed map in the given display mode
func RenderFuelMap(m *models.FuelMap, displayMode string) {
	min, max := MinMax(m.Data)
	title := fmt.Sprintf("%s | %dx%d | Range: %.2f-%.2f %s",
		m.Config.Name, m.Config.Rows(), m.Config.Cols(), min, max, m.Config.Unit)

	pterm.Info.Println(m.Config.Description)
	pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(BuildMapString(m, displayMode, min, max))
}

// BuildMapString creates a formatted string representation of the map
func BuildMapString(m *models.FuelMap, displayMode string, min, max float64) string {
	var result strings.Builder

	result.WriteString("    RPM → |")
	for _, rpm := range m.Config.RPMAxis {
		if displayMode == ModeValues {
			result.WriteString(fmt.Sprintf("%7.0f", rpm))
		} else {
			result.WriteString(fmt.Sprintf("%-6.0f", rpm))
		}
	}
	result.WriteString("\n")

	sep := 7
	if displayMode != ModeValues {
		sep = 6
	}
	result.WriteString("  MAP kPa |" + strings.Repeat("-", m.Config.Cols()*sep) + "\n")

	for i, kpa := range m.Config.MAPAxis {
		result.WriteString(fmt.Sprintf("   %4.0f ↓ |", kpa))
		for j := range m.Config.RPMAxis {
			value := m.Data[i][j]
			switch displayMode {
			case ModeValues:
				result.WriteString(getColorStyle(value, min, max).Sprintf("%7.2f", value))
			case ModeHeatmap:
				block := getHeatmapBlock(value, min, max)
				result.WriteString(block + block + block)
			default:
				symbol := getSymbolForValue(value, min, max)
				result.WriteString(strings.Repeat(symbol, 6))
			}
		}
		result.WriteString("\n")
	}

	switch displayMode {
	case ModeHeatmap:
		result.WriteString("\n" + getHeatmapLegend())
	case ModeSymbols:
		result.WriteString("\nLegend: ")
		result.WriteString(pterm.FgCyan.Sprint("░") + " Low  ")
		result.WriteString(pterm.FgGreen.Sprint("▒") + " Med  ")
		result.WriteString(pterm.FgYellow.Sprint("▓") + " High  ")
		result.WriteString(pterm.FgRed.Sprint("█") + " Max")
	}

	return result.String()
}

func getHeatmapBlock(value, min, max float64) string {
	if max == min {
		return pterm.BgGray.Sprint("  ")
	}

	normalized := (value - min) / (max - min)

	switch {
	case normalized < 0.2:
		return pterm.NewStyle(pterm.BgBlue, pterm.FgWhite).Sprint("▄▄")
	case normalized < 0.4:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack).Sprint("▄▄")
	case normalized < 0.6:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack).Sprint("▄▄")
	case normalized < 0.8:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack).Sprint("▄▄")
	default:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite).Sprint("▄▄")
	}
}

func getHeatmapLegend() string {
	var result strings.Builder
	result.WriteString("Heatmap: ")
	result.WriteString(pterm.NewStyle(pterm.BgBlue, pterm.FgWhite).Sprint("▄▄") + " Very Low  ")
	result.WriteString(pterm.NewStyle(pterm.BgCyan, pterm.FgBlack).Sprint("▄▄") + " Low  ")
	result.WriteString(pterm.NewStyle(pterm.BgGreen, pterm.FgBlack).Sprint("▄▄") + " Medium  ")
	result.WriteString(pterm.NewStyle(pterm.BgYellow, pterm.FgBlack).Sprint("▄▄") + " High  ")
	result.WriteString(pterm.NewStyle(pterm.BgRed, pterm.FgWhite).Sprint("▄▄") + " Very High")
	return result.String()
}

func getSymbolForValue(value, min, max float64) string {
	if max == min {
		return pterm.FgGray.Sprint("·")
	}

	normalized := (value - min) / (max - min)

	switch {
	case normalized < 0.25:
		return pterm.FgCyan.Sprint("░")
	case normalized < 0.5:
		return pterm.FgGreen.Sprint("▒")
	case normalized < 0.75:
		return pterm.FgYellow.Sprint("▓")
	default:
		return pterm.FgRed.Sprint("█")
	}
}

func getColorStyle(value, min, max float64) *pterm.Style {
	if max == min {
		return pterm.NewStyle(pterm.FgGray)
	}

	normalized := (value - min) / (max - min)

	switch {
	case normalized < 0.25:
		return pterm.NewStyle(pterm.FgCyan)
	case normalized < 0.5:
		return pterm.NewStyle(pterm.FgGreen)
	case normalized < 0.75:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgRed)
	}
}

// MinMax finds the minimum and maximum values in map data
func MinMax(data [][]float64) (float64, float64) {
	if len(data) == 0 || len(data[0]) == 0 {
		return 0, 0
	}
	min := data[0][0]
	max := data[0][0]

	for _, row := range data {
		for _, val := range row {
			if val < min {
				min = val
			}
			if val > max {
				max = val
			}
		}
	}

	return min, max
}
