// Package sweep evaluates the calculator over a MAP x RPM grid, producing
// fuel maps in the same shape as an ECU's load/RPM tables.
package sweep

import (
	"fmt"
	"math"
	"sort"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
)

// Quantity selects which output a map holds
type Quantity string

const (
	PulseWidth Quantity = "pulse"
	DutyCycle  Quantity = "duty"
	Horsepower Quantity = "hp"
)

// DefaultDutyLimit is the duty cycle above which injectors run out of headroom
const DefaultDutyLimit = 85.0

var quantities = map[Quantity]struct {
	name, unit, description string
	value                   func(models.EngineOutput) float64
}{
	PulseWidth: {"Injector Pulse Width", "ms", "Actual pulse width including dead time",
		func(o models.EngineOutput) float64 { return o.ActualPulseWidth }},
	DutyCycle: {"Injector Duty Cycle", "%", "Share of each cycle the injector is open",
		func(o models.EngineOutput) float64 { return o.DutyCycle }},
	Horsepower: {"BSFC Horsepower", "hp", "Power supported by the fuel flow at the engine's BSFC",
		func(o models.EngineOutput) float64 { return o.HPBSFC }},
}

// ParseQuantity accepts pulse, duty or hp
func ParseQuantity(s string) (Quantity, error) {
	q := Quantity(s)
	if _, ok := quantities[q]; !ok {
		return "", fmt.Errorf("unknown map quantity %q (want pulse, duty or hp)", s)
	}
	return q, nil
}

// Axis returns start, start+step, ... up to and including stop
func Axis(start, stop, step float64) []float64 {
	if step <= 0 || stop < start {
		return nil
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = start + float64(i)*step
	}
	return axis
}

// DefaultRPMAxis spans 500-8000 RPM in 16 columns
func DefaultRPMAxis() []float64 { return Axis(500, 8000, 500) }

// DefaultMAPAxis spans 80-400 kPa in 9 rows
func DefaultMAPAxis() []float64 { return Axis(80, 400, 40) }

// BuildMap evaluates base at every (MAP, RPM) point. The first invalid
// point aborts the whole map.
func BuildMap(base models.EngineInput, opts calc.Options, q Quantity, rpmAxis, mapAxis []float64) (*models.FuelMap, error) {
	qs, ok := quantities[q]
	if !ok {
		return nil, fmt.Errorf("unknown map quantity %q", q)
	}
	if len(rpmAxis) == 0 || len(mapAxis) == 0 {
		return nil, fmt.Errorf("empty axis: %d RPM x %d MAP points", len(rpmAxis), len(mapAxis))
	}

	data := make([][]float64, len(mapAxis))
	for i, kpa := range mapAxis {
		data[i] = make([]float64, len(rpmAxis))
		for j, rpm := range rpmAxis {
			in := base
			in.MAPkPa = kpa
			in.RPM = rpm
			out, err := calc.ComputeWith(in, opts)
			if err != nil {
				return nil, fmt.Errorf("%.0f kPa / %.0f RPM: %w", kpa, rpm, err)
			}
			data[i][j] = qs.value(out)
		}
	}

	return &models.FuelMap{
		Config: models.MapConfig{
			Name:        fmt.Sprintf("%s (%s)", qs.name, base.Fuel),
			Unit:        qs.unit,
			Description: qs.description,
			RPMAxis:     rpmAxis,
			MAPAxis:     mapAxis,
		},
		Data: data,
	}, nil
}

// Hotspot is a map cell above the limit
type Hotspot struct {
	RPM    float64
	MAPkPa float64
	Value  float64
}

// FindHotspots returns cells above limit, highest first
func FindHotspots(m *models.FuelMap, limit float64) []Hotspot {
	var results []Hotspot
	for i, kpa := range m.Config.MAPAxis {
		for j, rpm := range m.Config.RPMAxis {
			if v := m.Data[i][j]; v > limit {
				results = append(results, Hotspot{RPM: rpm, MAPkPa: kpa, Value: v})
			}
		}
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Value > results[b].Value })
	return results
}

// Stats returns min, max, mean and variance of the map cells
func Stats(m *models.FuelMap) (float64, float64, float64, float64) {
	var values []float64
	for _, row := range m.Data {
		values = append(values, row...)
	}
	return calculateStats(values)
}

func calculateStats(values []float64) (float64, float64, float64, float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	min := values[0]
	max := values[0]
	sum := 0.0

	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	avg := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - avg
		variance += diff * diff
	}
	variance /= float64(len(values))

	return min, max, avg, variance
}

// DisplayHotspots prints the cells above limit as a table
func DisplayHotspots(m *models.FuelMap, limit float64) {
	results := FindHotspots(m, limit)
	if len(results) == 0 {
		pterm.Success.Printf("No cells above %.1f %s\n", limit, m.Config.Unit)
		return
	}

	tableData := pterm.TableData{
		{"RPM", "MAP (kPa)", m.Config.Unit},
	}
	for _, r := range results {
		tableData = append(tableData, []string{
			fmt.Sprintf("%.0f", r.RPM),
			fmt.Sprintf("%.0f", r.MAPkPa),
			fmt.Sprintf("%.2f", r.Value),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	pterm.Warning.Printf("%d of %d cells above %.1f %s\n",
		len(results), m.Config.Rows()*m.Config.Cols(), limit, m.Config.Unit)
}

// DisplayStats prints a one-line summary of the map
func DisplayStats(m *models.FuelMap) {
	min, max, avg, variance := Stats(m)
	pterm.Info.Printf("%s: min %.2f, max %.2f, mean %.2f %s (variance %.2f)\n",
		m.Config.Name, min, max, avg, m.Config.Unit, variance)
}
