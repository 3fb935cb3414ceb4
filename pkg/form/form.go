// Package form collects engine parameters interactively and hands them to
// the parser and calculator. It never computes from unparsed text.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
	"github.com/tosih/injector-calc/pkg/reader"
	"github.com/tosih/injector-calc/pkg/renderer"
)

// Prompter asks the user for one value at a time
type Prompter interface {
	Select(label string, options []string, def string) (string, error)
	Text(label, def string) (string, error)
	Confirm(label string) (bool, error)
}

// PtermPrompter prompts on the terminal
type PtermPrompter struct{}

func (PtermPrompter) Select(label string, options []string, def string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(def).
		Show(label)
}

// Text returns def when the user submits an empty line
func (PtermPrompter) Text(label, def string) (string, error) {
	v, err := pterm.DefaultInteractiveTextInput.Show(fmt.Sprintf("%s [%s]", label, def))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return v, nil
}

func (PtermPrompter) Confirm(label string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(label)
}

// Collect asks for fuel, engine type and every numeric input, returning
// the raw text for reader.ParseInput
func Collect(p Prompter, defaults models.EngineInput) (map[string]string, error) {
	fields := map[string]string{}
	def := reader.Fields(defaults)

	fuels := make([]string, 0, len(models.AllFuels))
	for _, f := range models.AllFuels {
		fuels = append(fuels, f.String())
	}
	fuel, err := p.Select("Fuel Type", fuels, def[models.KeyFuel])
	if err != nil {
		return nil, err
	}
	fields[models.KeyFuel] = fuel
	if f, err := models.ParseFuelType(fuel); err == nil {
		pterm.Info.Println(renderer.FuelCaption(f))
	}

	engines := make([]string, 0, len(models.AllEngineTypes))
	for _, e := range models.AllEngineTypes {
		engines = append(engines, e.String())
	}
	engine, err := p.Select("Engine Type", engines, def[models.KeyEngine])
	if err != nil {
		return nil, err
	}
	fields[models.KeyEngine] = engine

	for _, param := range models.InputParams {
		v, err := p.Text(promptLabel(param), def[param.Key])
		if err != nil {
			return nil, err
		}
		fields[param.Key] = v
	}
	return fields, nil
}

func promptLabel(param models.InputParam) string {
	if param.Unit == "" {
		return fmt.Sprintf("%s (%g-%g)", param.Name, param.MinValue, param.MaxValue)
	}
	return fmt.Sprintf("%s in %s (%g-%g)", param.Name, param.Unit, param.MinValue, param.MaxValue)
}

// Run repeats collect, parse, compute and render until the user stops.
// Invalid input is reported and nothing is rendered for that round.
func Run(p Prompter, defaults models.EngineInput, opts calc.Options) error {
	pterm.DefaultHeader.WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightWhite)).
		Println("Fuel Injector Calculator")

	current := defaults
	for {
		fields, err := Collect(p, current)
		if err != nil {
			return err
		}

		in, err := reader.ParseInput(fields)
		if err == nil {
			var out models.EngineOutput
			if out, err = calc.ComputeWith(in, opts); err == nil {
				renderer.RenderResult(in, out)
				current = in
			}
		}
		if err != nil {
			if !errors.Is(err, calc.ErrInvalidInput) {
				return err
			}
			pterm.Error.Printf("Please enter valid numbers: %v\n", err)
		}

		again, err := p.Confirm("Calculate again?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}
