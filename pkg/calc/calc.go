// Package calc turns one set of engine parameters into injector timing and
// a power estimate. Every call is a stateless point evaluation.
package calc

import (
	"fmt"
	"math"

	"github.com/tosih/injector-calc/pkg/models"
)

// Physical constants
const (
	MolarMassAir      = 28.97  // g/mol
	GasConstant       = 8.314  // J/(mol·K)
	KelvinOffset      = 273.15 // °C to K
	GramsPerPound     = 453.592
	BTUPerHPHour      = 2545.0
	ThermalEfficiency = 0.25
	msPerMinute       = 60000.0
	msPerTwoRevMin    = 120000.0 // ms per minute times two crank revolutions per cycle
)

// Options selects optional stages of the pipeline
type Options struct {
	// DeadTimeCompensation adds the voltage dependent injector opening
	// delay to the base pulse width. Off reproduces the uncorrected figure.
	DeadTimeCompensation bool
	// Curve used for dead time; nil means models.DefaultDeadTimeCurve.
	Curve models.DeadTimeCurve
}

// DefaultOptions has dead-time compensation enabled on the default curve
func DefaultOptions() Options {
	return Options{DeadTimeCompensation: true}
}

// Compute evaluates in with DefaultOptions
func Compute(in models.EngineInput) (models.EngineOutput, error) {
	return ComputeWith(in, DefaultOptions())
}

// ComputeWith validates in and runs the calculation pipeline
func ComputeWith(in models.EngineInput, opts Options) (models.EngineOutput, error) {
	if err := Validate(in); err != nil {
		return models.EngineOutput{}, err
	}
	if opts.Curve != nil {
		if err := opts.Curve.Validate(); err != nil {
			return models.EngineOutput{}, fmt.Errorf("dead-time curve: %w", err)
		}
	}
	fuel, _ := in.Fuel.Properties()

	var out models.EngineOutput
	out.TargetAFR = fuel.StoichAFR * in.Lambda

	veFraction := in.VEPercent / 100
	cyclesPerMin := in.RPM / 2
	airVolumeLPM := (in.DisplacementCC / 1000) * cyclesPerMin * veFraction

	out.AirDensity = AirDensity(in.MAPkPa, in.IATCelsius)
	airMassGPM := airVolumeLPM * out.AirDensity
	out.FuelMassFlow = airMassGPM / out.TargetAFR

	fuelMassPerCyl := out.FuelMassFlow / cyclesPerMin / float64(in.Cylinders)
	fuelVolumePerCylCC := fuelMassPerCyl / fuel.Density
	injectorCCPerMs := in.InjectorCCMin / msPerMinute
	out.BasePulseWidth = fuelVolumePerCylCC / injectorCCPerMs

	if opts.DeadTimeCompensation {
		curve := opts.Curve
		if curve == nil {
			curve = models.DefaultDeadTimeCurve
		}
		out.DeadTime, out.DeadTimeClamped = Interpolate(curve, in.BatteryVoltage)
	}
	out.ActualPulseWidth = out.BasePulseWidth + out.DeadTime

	timePerCycleMs := msPerTwoRevMin / in.RPM
	out.DutyCycle = (out.ActualPulseWidth / timePerCycleMs) * 100

	out.TotalFuelFlow = out.FuelMassFlow / fuel.Density
	out.FuelFlowPerInj = out.TotalFuelFlow / float64(in.Cylinders)

	fuelLbPerHr := (out.FuelMassFlow / GramsPerPound) * 60
	out.HPTheoretical = (fuelLbPerHr * fuel.Energy * ThermalEfficiency) / BTUPerHPHour
	out.HPBSFC = fuelLbPerHr / in.Engine.BSFC()

	return out, nil
}

// AirDensity from the ideal gas law, g/L
func AirDensity(mapKPa, iatC float64) float64 {
	return (mapKPa * 1000 * MolarMassAir) / (GasConstant * (iatC + KelvinOffset)) / 1000
}

// TimePerCycle is the duration of one four-stroke cycle in ms
func TimePerCycle(rpm float64) float64 {
	return msPerTwoRevMin / rpm
}

// Validate rejects inputs the pipeline cannot evaluate
func Validate(in models.EngineInput) error {
	if !in.Fuel.Valid() {
		return &InputError{Field: models.KeyFuel, Value: in.Fuel.String(), Reason: "unknown fuel"}
	}
	if !in.Engine.Valid() {
		return &InputError{Field: models.KeyEngine, Value: in.Engine.String(), Reason: "unknown engine type"}
	}
	if in.Cylinders < 1 {
		return invalid(models.KeyCylinders, float64(in.Cylinders), "must be at least 1")
	}

	fields := []struct {
		key string
		v   float64
	}{
		{models.KeyDisplacement, in.DisplacementCC},
		{models.KeyInjector, in.InjectorCCMin},
		{models.KeyRPM, in.RPM},
		{models.KeyVE, in.VEPercent},
		{models.KeyMAP, in.MAPkPa},
		{models.KeyLambda, in.Lambda},
		{models.KeyIAT, in.IATCelsius},
		{models.KeyVoltage, in.BatteryVoltage},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.key, f.v, "not a finite number")
		}
	}

	switch {
	case in.DisplacementCC <= 0:
		return invalid(models.KeyDisplacement, in.DisplacementCC, "must be positive")
	case in.InjectorCCMin <= 0:
		return invalid(models.KeyInjector, in.InjectorCCMin, "must be positive")
	case in.RPM <= 0:
		return invalid(models.KeyRPM, in.RPM, "must be positive")
	case in.VEPercent < 0 || in.VEPercent > MaxVEPercent:
		return invalid(models.KeyVE, in.VEPercent, "must be between 0 and 200")
	case in.MAPkPa <= 0:
		return invalid(models.KeyMAP, in.MAPkPa, "must be positive")
	case in.Lambda <= 0:
		return invalid(models.KeyLambda, in.Lambda, "must be positive")
	case in.IATCelsius <= -KelvinOffset:
		return invalid(models.KeyIAT, in.IATCelsius, "must be above absolute zero")
	case in.BatteryVoltage < 0:
		return invalid(models.KeyVoltage, in.BatteryVoltage, "must not be negative")
	}
	return nil
}

// MaxVEPercent bounds volumetric efficiency; heavily boosted engines exceed 100.
const MaxVEPercent = 200
