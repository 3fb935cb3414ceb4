package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/compare"
	"github.com/tosih/injector-calc/pkg/export"
	"github.com/tosih/injector-calc/pkg/form"
	"github.com/tosih/injector-calc/pkg/models"
	"github.com/tosih/injector-calc/pkg/reader"
	"github.com/tosih/injector-calc/pkg/renderer"
	"github.com/tosih/injector-calc/pkg/sweep"
)

func main() {
	fs := flag.NewFlagSet("injector-calc", flag.ContinueOnError)
	opt, err := ParseArgs(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		pterm.Error.Println(err)
		os.Exit(2)
	}
	if opt.Verbose {
		pterm.EnableDebugMessages()
	}

	if err := run(opt); err != nil {
		if errors.Is(err, calc.ErrInvalidInput) {
			pterm.Error.Printf("Invalid input: %v\n", err)
		} else {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

func run(opt Options) error {
	calcOpts := calc.DefaultOptions()
	calcOpts.DeadTimeCompensation = !opt.NoDeadTime
	pterm.Debug.Printf("dead-time compensation: %v\n", calcOpts.DeadTimeCompensation)

	switch opt.Mode {
	case ModeFuels:
		renderer.ListFuels()
		return nil
	case ModeInputs:
		renderer.ListInputs()
		return nil
	}

	in, err := loadInput(opt.Profile, opt.Fields)
	if err != nil {
		return err
	}
	pterm.Debug.Printf("input: %+v\n", in)

	switch opt.Mode {
	case ModeInteractive:
		return form.Run(form.PtermPrompter{}, in, calcOpts)
	case ModeMap:
		return showMaps(in, calcOpts, opt)
	case ModeCompare:
		return compareSetups(in, calcOpts, opt)
	case ModeExport:
		return exportMaps(in, calcOpts, opt)
	}

	out, err := calc.ComputeWith(in, calcOpts)
	if err != nil {
		return err
	}
	renderer.RenderResult(in, out)
	return nil
}

// loadInput merges profile values with command-line overrides and parses
// the result through the same boundary as the interactive form
func loadInput(profile string, overrides map[string]string) (models.EngineInput, error) {
	fields := map[string]string{}
	if profile != "" {
		base, err := reader.ReadProfile(profile)
		if err != nil {
			return models.EngineInput{}, err
		}
		pterm.Debug.Printf("loaded profile %s\n", profile)
		fields = reader.Fields(base)
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return reader.ParseInput(fields)
}

func buildMaps(in models.EngineInput, calcOpts calc.Options, opt Options) ([]*models.FuelMap, error) {
	var maps []*models.FuelMap
	for _, q := range opt.Quantities {
		m, err := sweep.BuildMap(in, calcOpts, q, sweep.DefaultRPMAxis(), sweep.DefaultMAPAxis())
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}

func showMaps(in models.EngineInput, calcOpts calc.Options, opt Options) error {
	maps, err := buildMaps(in, calcOpts, opt)
	if err != nil {
		return err
	}

	pterm.DefaultHeader.WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightWhite)).
		Println("Fuel Map Sweep")
	pterm.Info.Println(renderer.FuelCaption(in.Fuel))

	for i, m := range maps {
		if i > 0 {
			pterm.Println()
		}
		renderer.RenderFuelMap(m, opt.Display)
		sweep.DisplayStats(m)
		if m.Config.Unit == "%" {
			sweep.DisplayHotspots(m, opt.DutyLimit)
		}
	}
	return nil
}

func compareSetups(a models.EngineInput, calcOpts calc.Options, opt Options) error {
	b := a
	if opt.VsProfile != "" {
		var err error
		if b, err = reader.ReadProfile(opt.VsProfile); err != nil {
			return fmt.Errorf("second profile: %w", err)
		}
	}
	if opt.VsFuel != "" {
		fuel, err := models.ParseFuelType(opt.VsFuel)
		if err != nil {
			return &calc.InputError{Field: "vs-fuel", Value: opt.VsFuel, Reason: "unknown fuel type"}
		}
		b.Fuel = fuel
	}
	if opt.VsEngine != "" {
		engine, err := models.ParseEngineType(opt.VsEngine)
		if err != nil {
			return &calc.InputError{Field: "vs-engine", Value: opt.VsEngine, Reason: "unknown engine type"}
		}
		b.Engine = engine
	}

	diffs, err := compare.CompareInputs(a, b, calcOpts)
	if err != nil {
		return err
	}
	labelA := fmt.Sprintf("A: %s/%s", a.Fuel, a.Engine)
	labelB := fmt.Sprintf("B: %s/%s", b.Fuel, b.Engine)
	compare.DisplayComparison(labelA, labelB, diffs)

	for _, q := range opt.Quantities {
		m1, err := sweep.BuildMap(a, calcOpts, q, sweep.DefaultRPMAxis(), sweep.DefaultMAPAxis())
		if err != nil {
			return err
		}
		m2, err := sweep.BuildMap(b, calcOpts, q, sweep.DefaultRPMAxis(), sweep.DefaultMAPAxis())
		if err != nil {
			return err
		}
		pterm.Println()
		if err := compare.DisplayMapComparison(m1, m2); err != nil {
			return err
		}
	}
	return nil
}

func exportMaps(in models.EngineInput, calcOpts calc.Options, opt Options) error {
	maps, err := buildMaps(in, calcOpts, opt)
	if err != nil {
		return err
	}
	out, err := calc.ComputeWith(in, calcOpts)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Exporting maps...")

	if opt.ExportDir != "" {
		paths, err := export.ExportMapsToCSV(opt.ExportDir, maps)
		if err != nil {
			spinner.Fail("CSV export failed")
			return err
		}
		if err := writeResult(filepath.Join(opt.ExportDir, "result.csv"), in, out); err != nil {
			spinner.Fail("CSV export failed")
			return err
		}
		pterm.Debug.Printf("wrote %v\n", paths)
	}
	if opt.XLSX != "" {
		if err := export.ExportMapsToXLSX(opt.XLSX, maps); err != nil {
			spinner.Fail("XLSX export failed")
			return err
		}
	}

	spinner.Success(fmt.Sprintf("Exported %d map(s)", len(maps)))
	return nil
}

func writeResult(path string, in models.EngineInput, out models.EngineOutput) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteResultCSV(f, in, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
