package models

import (
	"fmt"
	"strings"
)

// FuelType identifies one of the supported fuels
type FuelType int

const (
	E85 FuelType = iota
	Gasoline95
	Gasoline98
	Methanol
)

// FuelProperties holds the constants the calculation needs for a fuel
type FuelProperties struct {
	Label     string
	StoichAFR float64 // stoichiometric air/fuel ratio
	Density   float64 // g/cc
	Energy    float64 // BTU/lb
}

// Fuels is the fixed property table, one entry per FuelType
var Fuels = [...]FuelProperties{
	E85: {
		Label:     "E85",
		StoichAFR: 9.765,
		Density:   0.79,
		Energy:    12300,
	},
	Gasoline95: {
		Label:     "95 Octane",
		StoichAFR: 14.7,
		Density:   0.74,
		Energy:    18400,
	},
	Gasoline98: {
		Label:     "98 Octane",
		StoichAFR: 14.7,
		Density:   0.75,
		Energy:    18500,
	},
	Methanol: {
		Label:     "Methanol",
		StoichAFR: 6.4,
		Density:   0.791,
		Energy:    8600,
	},
}

// AllFuels lists the fuels in display order
var AllFuels = []FuelType{E85, Gasoline95, Gasoline98, Methanol}

// Valid reports whether f has an entry in the property table
func (f FuelType) Valid() bool {
	return f >= 0 && int(f) < len(Fuels)
}

// Properties returns the table entry for f
func (f FuelType) Properties() (FuelProperties, bool) {
	if !f.Valid() {
		return FuelProperties{}, false
	}
	return Fuels[f], true
}

func (f FuelType) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FuelType(%d)", int(f))
	}
	return Fuels[f].Label
}

// ParseFuelType accepts a fuel label or one of its short names
func ParseFuelType(s string) (FuelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e85":
		return E85, nil
	case "95", "95 octane", "gasoline95":
		return Gasoline95, nil
	case "98", "98 octane", "gasoline98":
		return Gasoline98, nil
	case "methanol", "m100":
		return Methanol, nil
	}
	return 0, fmt.Errorf("unknown fuel type: %q", s)
}

// EngineType selects the brake specific fuel consumption used for the HP estimate
type EngineType int

const (
	NaturallyAspirated EngineType = iota
	Turbocharged
)

// BSFC in lb/hp/hr
func (e EngineType) BSFC() float64 {
	switch e {
	case Turbocharged:
		return 0.55
	default:
		return 0.45
	}
}

func (e EngineType) Valid() bool {
	return e == NaturallyAspirated || e == Turbocharged
}

func (e EngineType) String() string {
	switch e {
	case NaturallyAspirated:
		return "Naturally Aspirated"
	case Turbocharged:
		return "Turbocharged"
	}
	return fmt.Sprintf("EngineType(%d)", int(e))
}

// AllEngineTypes lists the engine types in display order
var AllEngineTypes = []EngineType{NaturallyAspirated, Turbocharged}

// ParseEngineType accepts "na", "turbo" or the display names
func ParseEngineType(s string) (EngineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "na", "n/a", "naturally aspirated", "naturally-aspirated":
		return NaturallyAspirated, nil
	case "turbo", "turbocharged":
		return Turbocharged, nil
	}
	return 0, fmt.Errorf("unknown engine type: %q", s)
}

// EngineInput is one set of engine parameters to evaluate
type EngineInput struct {
	Fuel           FuelType
	Engine         EngineType
	Cylinders      int
	DisplacementCC float64
	InjectorCCMin  float64 // injector flow rating, cc/min
	RPM            float64
	VEPercent      float64
	MAPkPa         float64
	Lambda         float64
	IATCelsius     float64
	BatteryVoltage float64
}

// EngineOutput holds everything derived from one EngineInput
type EngineOutput struct {
	TargetAFR        float64
	AirDensity       float64 // g/L
	FuelMassFlow     float64 // g/min
	BasePulseWidth   float64 // ms
	DeadTime         float64 // ms
	DeadTimeClamped  bool    // battery voltage outside the dead-time curve
	ActualPulseWidth float64 // ms
	DutyCycle        float64 // %
	TotalFuelFlow    float64 // cc/min
	FuelFlowPerInj   float64 // cc/min
	HPTheoretical    float64
	HPBSFC           float64
}

// FuelMap is a grid of one output quantity over MAP (rows) and RPM (cols)
type FuelMap struct {
	Config MapConfig
	Data   [][]float64
}

// MapConfig describes a FuelMap
type MapConfig struct {
	Name        string
	Unit        string
	Description string
	RPMAxis     []float64
	MAPAxis     []float64
}

// Rows is the number of MAP breakpoints
func (c MapConfig) Rows() int { return len(c.MAPAxis) }

// Cols is the number of RPM breakpoints
func (c MapConfig) Cols() int { return len(c.RPMAxis) }
