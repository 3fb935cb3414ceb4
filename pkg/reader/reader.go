// Package reader is the boundary between free-text form fields and the
// calculation core. Nothing malformed gets past ParseInput.
package reader

import (
	"strconv"
	"strings"

	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
)

// ParseInput converts raw field text into an EngineInput. Missing or blank
// fields take their form default. Fields marked Integer (cylinders,
// displacement, injector size) must parse as whole numbers.
func ParseInput(fields map[string]string) (models.EngineInput, error) {
	in := models.DefaultInput()

	if s := strings.TrimSpace(fields[models.KeyFuel]); s != "" {
		fuel, err := models.ParseFuelType(s)
		if err != nil {
			return models.EngineInput{}, &calc.InputError{Field: models.KeyFuel, Value: s, Reason: "unknown fuel type"}
		}
		in.Fuel = fuel
	}
	if s := strings.TrimSpace(fields[models.KeyEngine]); s != "" {
		engine, err := models.ParseEngineType(s)
		if err != nil {
			return models.EngineInput{}, &calc.InputError{Field: models.KeyEngine, Value: s, Reason: "unknown engine type"}
		}
		in.Engine = engine
	}

	targets := map[string]*float64{
		models.KeyDisplacement: &in.DisplacementCC,
		models.KeyInjector:     &in.InjectorCCMin,
		models.KeyRPM:          &in.RPM,
		models.KeyVE:           &in.VEPercent,
		models.KeyMAP:          &in.MAPkPa,
		models.KeyLambda:       &in.Lambda,
		models.KeyIAT:          &in.IATCelsius,
		models.KeyVoltage:      &in.BatteryVoltage,
	}

	for _, param := range models.InputParams {
		raw, ok := fields[param.Key]
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}

		value, err := ParseField(param, raw)
		if err != nil {
			return models.EngineInput{}, err
		}

		if param.Key == models.KeyCylinders {
			in.Cylinders = int(value)
			continue
		}
		if dst, ok := targets[param.Key]; ok {
			*dst = value
		}
	}

	if err := calc.Validate(in); err != nil {
		return models.EngineInput{}, err
	}
	return in, nil
}

// ParseField parses one raw value for param
func ParseField(param models.InputParam, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if param.Integer {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, &calc.InputError{Field: param.Key, Value: raw, Reason: "not a whole number"}
		}
		return float64(n), nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &calc.InputError{Field: param.Key, Value: raw, Reason: "not a number"}
	}
	return f, nil
}

// Fields renders an EngineInput back into raw field text, the inverse of
// ParseInput for valid inputs
func Fields(in models.EngineInput) map[string]string {
	fmtFloat := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		models.KeyFuel:         in.Fuel.String(),
		models.KeyEngine:       in.Engine.String(),
		models.KeyCylinders:    strconv.Itoa(in.Cylinders),
		models.KeyDisplacement: fmtFloat(in.DisplacementCC),
		models.KeyInjector:     fmtFloat(in.InjectorCCMin),
		models.KeyRPM:          fmtFloat(in.RPM),
		models.KeyVE:           fmtFloat(in.VEPercent),
		models.KeyMAP:          fmtFloat(in.MAPkPa),
		models.KeyLambda:       fmtFloat(in.Lambda),
		models.KeyIAT:          fmtFloat(in.IATCelsius),
		models.KeyVoltage:      fmtFloat(in.BatteryVoltage),
	}
}
