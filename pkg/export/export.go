package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tosih/injector-calc/pkg/models"
)

// FileName turns a map name into a file-system friendly base name
func FileName(name string) string {
	r := strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "_")
	return strings.ToLower(r.Replace(name))
}

// WriteResultCSV writes one calculation as field,value,unit rows
func WriteResultCSV(w io.Writer, in models.EngineInput, out models.EngineOutput) error {
	writer := csv.NewWriter(w)

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	records := [][]string{
		{"field", "value", "unit"},
		{"fuel", in.Fuel.String(), ""},
		{"engine", in.Engine.String(), ""},
		{"cylinders", strconv.Itoa(in.Cylinders), ""},
		{"displacement", f(in.DisplacementCC), "cc"},
		{"injector", f(in.InjectorCCMin), "cc/min"},
		{"rpm", f(in.RPM), "RPM"},
		{"ve", f(in.VEPercent), "%"},
		{"map", f(in.MAPkPa), "kPa"},
		{"lambda", f(in.Lambda), ""},
		{"iat", f(in.IATCelsius), "C"},
		{"voltage", f(in.BatteryVoltage), "V"},
		{"target_afr", f(out.TargetAFR), ""},
		{"air_density", f(out.AirDensity), "g/L"},
		{"base_pulse_width", f(out.BasePulseWidth), "ms"},
		{"dead_time", f(out.DeadTime), "ms"},
		{"actual_pulse_width", f(out.ActualPulseWidth), "ms"},
		{"duty_cycle", f(out.DutyCycle), "%"},
		{"total_fuel_flow", f(out.TotalFuelFlow), "cc/min"},
		{"fuel_flow_per_injector", f(out.FuelFlowPerInj), "cc/min"},
		{"hp_theoretical", f(out.HPTheoretical), "hp"},
		{"hp_bsfc", f(out.HPBSFC), "hp"},
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("write result csv: %w", err)
	}
	return nil
}

// WriteMapCSV writes metadata comment rows followed by the MAP x RPM grid
func WriteMapCSV(w io.Writer, m *models.FuelMap) error {
	writer := csv.NewWriter(w)

	meta := [][]string{
		{fmt.Sprintf("# %s", m.Config.Name)},
		{fmt.Sprintf("# Size: %dx%d", m.Config.Rows(), m.Config.Cols())},
		{fmt.Sprintf("# Unit: %s", m.Config.Unit)},
		{""},
	}
	for _, rec := range meta {
		if err := writer.Write(rec); err != nil {
			return err
		}
	}

	header := []string{"MAP\\RPM"}
	for _, rpm := range m.Config.RPMAxis {
		header = append(header, strconv.FormatFloat(rpm, 'f', -1, 64))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, kpa := range m.Config.MAPAxis {
		row := []string{strconv.FormatFloat(kpa, 'f', -1, 64)}
		for j := range m.Config.RPMAxis {
			row = append(row, fmt.Sprintf("%.2f", m.Data[i][j]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportMapsToCSV writes each map to its own file under exportPath and
// returns the paths written
func ExportMapsToCSV(exportPath string, maps []*models.FuelMap) ([]string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	var written []string
	for _, m := range maps {
		csvFilename := filepath.Join(exportPath, FileName(m.Config.Name)+".csv")
		if err := exportMapToCSV(m, csvFilename); err != nil {
			return written, fmt.Errorf("export %s: %w", m.Config.Name, err)
		}
		written = append(written, csvFilename)
	}
	return written, nil
}

func exportMapToCSV(m *models.FuelMap, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteMapCSV(file, m)
}
