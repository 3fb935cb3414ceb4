package models

// Keys of the numeric input fields, shared by the form, profiles and the parser
const (
	KeyFuel         = "fuel"
	KeyEngine       = "engine"
	KeyCylinders    = "cylinders"
	KeyDisplacement = "displacement"
	KeyInjector     = "injector"
	KeyRPM          = "rpm"
	KeyVE           = "ve"
	KeyMAP          = "map"
	KeyLambda       = "lambda"
	KeyIAT          = "iat"
	KeyVoltage      = "voltage"
)

// InputParam defines a single numeric engine input
type InputParam struct {
	Key         string
	Name        string
	Unit        string
	Description string
	Integer     bool // free-text entry must parse as a whole number
	MinValue    float64
	MaxValue    float64
	Default     float64
	Step        float64
}

// InputParams lists the numeric inputs in form order
var InputParams = []InputParam{
	{
		Key:         KeyCylinders,
		Name:        "Cylinders",
		Unit:        "",
		Description: "Number of cylinders, one injector each",
		Integer:     true,
		MinValue:    1,
		MaxValue:    16,
		Default:     4,
		Step:        1,
	},
	{
		Key:         KeyDisplacement,
		Name:        "Engine Displacement",
		Unit:        "cc",
		Description: "Total swept volume of the engine",
		Integer:     true,
		MinValue:    500,
		MaxValue:    8000,
		Default:     2000,
		Step:        100,
	},
	{
		Key:         KeyInjector,
		Name:        "Injector Size",
		Unit:        "cc/min",
		Description: "Rated injector flow",
		Integer:     true,
		MinValue:    100,
		MaxValue:    3000,
		Default:     1300,
		Step:        50,
	},
	{
		Key:         KeyRPM,
		Name:        "Engine RPM",
		Unit:        "RPM",
		Description: "Crankshaft speed",
		MinValue:    500,
		MaxValue:    10000,
		Default:     6000,
		Step:        100,
	},
	{
		Key:         KeyVE,
		Name:        "Volumetric Efficiency",
		Unit:        "%",
		Description: "Cylinder filling relative to displacement",
		MinValue:    50,
		MaxValue:    120,
		Default:     91,
		Step:        1,
	},
	{
		Key:         KeyMAP,
		Name:        "Manifold Air Pressure",
		Unit:        "kPa",
		Description: "Absolute manifold pressure",
		MinValue:    80,
		MaxValue:    400,
		Default:     300,
		Step:        1,
	},
	{
		Key:         KeyLambda,
		Name:        "Target Lambda",
		Unit:        "λ",
		Description: "Multiplier on the stoichiometric AFR",
		MinValue:    0.6,
		MaxValue:    1.2,
		Default:     0.8,
		Step:        0.01,
	},
	{
		Key:         KeyIAT,
		Name:        "Intake Air Temp",
		Unit:        "°C",
		Description: "Charge air temperature",
		MinValue:    -20,
		MaxValue:    80,
		Default:     20,
		Step:        1,
	},
	{
		Key:         KeyVoltage,
		Name:        "Battery Voltage",
		Unit:        "V",
		Description: "Supply voltage, selects injector dead time",
		MinValue:    10,
		MaxValue:    15,
		Default:     13.8,
		Step:        0.1,
	},
}

// FindParam looks up an InputParam by key
func FindParam(key string) (InputParam, bool) {
	for _, p := range InputParams {
		if p.Key == key {
			return p, true
		}
	}
	return InputParam{}, false
}

// DefaultInput returns the form defaults: 95 octane, naturally aspirated
func DefaultInput() EngineInput {
	def := func(key string) float64 {
		p, _ := FindParam(key)
		return p.Default
	}
	return EngineInput{
		Fuel:           Gasoline95,
		Engine:         NaturallyAspirated,
		Cylinders:      int(def(KeyCylinders)),
		DisplacementCC: def(KeyDisplacement),
		InjectorCCMin:  def(KeyInjector),
		RPM:            def(KeyRPM),
		VEPercent:      def(KeyVE),
		MAPkPa:         def(KeyMAP),
		Lambda:         def(KeyLambda),
		IATCelsius:     def(KeyIAT),
		BatteryVoltage: def(KeyVoltage),
	}
}
