package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tosih/injector-calc/pkg/models"
	"github.com/tosih/injector-calc/pkg/renderer"
	"github.com/tosih/injector-calc/pkg/sweep"
)

// Modes
const (
	ModeCalc        = "calc"
	ModeInteractive = "interactive"
	ModeFuels       = "fuels"
	ModeInputs      = "inputs"
	ModeMap         = "map"
	ModeCompare     = "compare"
	ModeExport      = "export"
)

// Options holds all CLI flags
type Options struct {
	Mode       string
	Profile    string
	Fields     map[string]string // raw engine fields given on the command line
	NoDeadTime bool

	// map / export
	Quantities []sweep.Quantity
	Display    string
	DutyLimit  float64
	ExportDir  string
	XLSX       string

	// compare
	VsProfile string
	VsFuel    string
	VsEngine  string

	Verbose bool
}

// ParseArgs registers and parses all flags
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var quantity string

	fs.StringVar(&opt.Mode, "mode", ModeCalc, "calc | interactive | fuels | inputs | map | compare | export")
	fs.StringVar(&opt.Profile, "profile", "", "engine profile JSON file")
	fs.BoolVar(&opt.NoDeadTime, "no-deadtime", false, "skip battery voltage dead-time compensation")

	fields := map[string]*string{}
	fields[models.KeyFuel] = fs.String(models.KeyFuel, "", "fuel: e85 | 95 | 98 | methanol")
	fields[models.KeyEngine] = fs.String(models.KeyEngine, "", "engine type: na | turbo")
	for _, p := range models.InputParams {
		usage := fmt.Sprintf("%s (%s, default %g)", p.Name, p.Unit, p.Default)
		if p.Unit == "" {
			usage = fmt.Sprintf("%s (default %g)", p.Name, p.Default)
		}
		fields[p.Key] = fs.String(p.Key, "", usage)
	}

	fs.StringVar(&quantity, "quantity", "duty", "map quantity: pulse | duty | hp | all")
	fs.StringVar(&opt.Display, "display", renderer.ModeValues, "map display: values | heatmap | symbols")
	fs.Float64Var(&opt.DutyLimit, "limit", sweep.DefaultDutyLimit, "duty cycle warning limit (%)")
	fs.StringVar(&opt.ExportDir, "export-dir", "", "directory for CSV export")
	fs.StringVar(&opt.XLSX, "xlsx", "", "workbook path for XLSX export")

	fs.StringVar(&opt.VsProfile, "vs-profile", "", "compare: second engine profile")
	fs.StringVar(&opt.VsFuel, "vs-fuel", "", "compare: second fuel")
	fs.StringVar(&opt.VsEngine, "vs-engine", "", "compare: second engine type")

	fs.BoolVar(&opt.Verbose, "verbose", false, "print debug messages")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}

	// Only flags the user set override the profile or defaults
	opt.Fields = map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		if p, ok := fields[f.Name]; ok {
			opt.Fields[f.Name] = *p
		}
	})

	if quantity == "all" {
		opt.Quantities = []sweep.Quantity{sweep.PulseWidth, sweep.DutyCycle, sweep.Horsepower}
	} else {
		q, err := sweep.ParseQuantity(quantity)
		if err != nil {
			return opt, err
		}
		opt.Quantities = []sweep.Quantity{q}
	}

	switch opt.Mode {
	case ModeCalc, ModeInteractive, ModeFuels, ModeInputs, ModeMap:
	case ModeCompare:
		if opt.VsProfile == "" && opt.VsFuel == "" && opt.VsEngine == "" {
			return opt, errors.New("compare needs -vs-profile, -vs-fuel or -vs-engine")
		}
	case ModeExport:
		if opt.ExportDir == "" && opt.XLSX == "" {
			return opt, errors.New("export needs -export-dir or -xlsx")
		}
	default:
		return opt, fmt.Errorf("invalid -mode %q", opt.Mode)
	}

	switch opt.Display {
	case renderer.ModeValues, renderer.ModeHeatmap, renderer.ModeSymbols:
	default:
		return opt, fmt.Errorf("invalid -display %q", opt.Display)
	}
	if opt.DutyLimit <= 0 {
		return opt, errors.New("-limit must be > 0")
	}
	return opt, nil
}
