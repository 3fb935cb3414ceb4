package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/tosih/injector-calc/pkg/models"
)

func scenario() models.EngineInput {
	return models.EngineInput{
		Fuel:           models.Gasoline95,
		Engine:         models.NaturallyAspirated,
		Cylinders:      4,
		DisplacementCC: 2000,
		InjectorCCMin:  1300,
		RPM:            6000,
		VEPercent:      91,
		MAPkPa:         300,
		Lambda:         0.8,
		IATCelsius:     20,
		BatteryVoltage: 13.8,
	}
}

func mustCompute(t *testing.T, in models.EngineInput, opts Options) models.EngineOutput {
	t.Helper()
	out, err := ComputeWith(in, opts)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return out
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestScenario95Octane(t *testing.T) {
	out := mustCompute(t, scenario(), DefaultOptions())

	cases := []struct {
		name      string
		got, want float64
	}{
		{"target AFR", out.TargetAFR, 11.76},
		{"air density", out.AirDensity, 3.566},
		{"base pulse width", out.BasePulseWidth, 8.60},
		{"dead time", out.DeadTime, 0.64},
		{"actual pulse width", out.ActualPulseWidth, 9.24},
		{"duty cycle", out.DutyCycle, 46.22},
		{"total fuel flow", out.TotalFuelFlow, 2237.30},
		{"fuel flow per injector", out.FuelFlowPerInj, 559.32},
		{"hp theoretical", out.HPTheoretical, 395.83},
		{"hp bsfc", out.HPBSFC, 486.66},
	}
	for _, c := range cases {
		if !near(c.got, c.want, 0.005) {
			t.Errorf("%s = %.4f, want %.2f", c.name, c.got, c.want)
		}
	}
	if out.DeadTimeClamped {
		t.Errorf("13.8 V is inside the curve, should not clamp")
	}
}

func TestTargetAFRPerFuel(t *testing.T) {
	for _, fuel := range models.AllFuels {
		for _, lambda := range []float64{0.6, 0.8, 1.0, 1.2} {
			in := scenario()
			in.Fuel = fuel
			in.Lambda = lambda
			out := mustCompute(t, in, DefaultOptions())
			props, _ := fuel.Properties()
			if out.TargetAFR != props.StoichAFR*lambda {
				t.Errorf("%s λ%.2f: AFR %v, want %v", fuel, lambda, out.TargetAFR, props.StoichAFR*lambda)
			}
		}
	}
}

func TestDeadTimeCompensationOff(t *testing.T) {
	out := mustCompute(t, scenario(), Options{})
	if out.DeadTime != 0 || out.ActualPulseWidth != out.BasePulseWidth {
		t.Fatalf("dead time should be skipped: %+v", out)
	}
	if !near(out.DutyCycle, 43.02, 0.005) {
		t.Errorf("uncorrected duty cycle = %.4f, want 43.02", out.DutyCycle)
	}
}

func TestActualNeverBelowBase(t *testing.T) {
	for v := 0.0; v <= 20; v += 0.25 {
		in := scenario()
		in.BatteryVoltage = v
		out := mustCompute(t, in, DefaultOptions())
		if out.ActualPulseWidth < out.BasePulseWidth {
			t.Fatalf("%.2f V: actual %.4f < base %.4f", v, out.ActualPulseWidth, out.BasePulseWidth)
		}
	}
}

func TestClampFlagOutsideCurve(t *testing.T) {
	in := scenario()
	in.BatteryVoltage = 9
	out := mustCompute(t, in, DefaultOptions())
	if !out.DeadTimeClamped || out.DeadTime != 1.6 {
		t.Errorf("9 V: dead time %.3f clamped=%v, want 1.6 clamped", out.DeadTime, out.DeadTimeClamped)
	}
}

func TestDoublingCylindersHalvesPulseWidth(t *testing.T) {
	in := scenario()
	base := mustCompute(t, in, Options{})
	in.Cylinders *= 2
	doubled := mustCompute(t, in, Options{})

	if !near(doubled.BasePulseWidth, base.BasePulseWidth/2, 1e-12) {
		t.Errorf("base PW %.6f, want %.6f", doubled.BasePulseWidth, base.BasePulseWidth/2)
	}
	if !near(doubled.FuelFlowPerInj, base.FuelFlowPerInj/2, 1e-9) {
		t.Errorf("per injector flow %.6f, want %.6f", doubled.FuelFlowPerInj, base.FuelFlowPerInj/2)
	}
}

func TestDutyCycleProportionalToPulseWidth(t *testing.T) {
	in := scenario()
	out := mustCompute(t, in, DefaultOptions())
	want := out.ActualPulseWidth / TimePerCycle(in.RPM) * 100
	if !near(out.DutyCycle, want, 1e-9) {
		t.Errorf("duty %.6f, want %.6f", out.DutyCycle, want)
	}
	if !near(TimePerCycle(2*in.RPM), TimePerCycle(in.RPM)/2, 1e-12) {
		t.Errorf("doubling RPM should halve the cycle time")
	}
}

func TestTurboUsesHigherBSFC(t *testing.T) {
	in := scenario()
	na := mustCompute(t, in, DefaultOptions())
	in.Engine = models.Turbocharged
	turbo := mustCompute(t, in, DefaultOptions())
	if !near(turbo.HPBSFC*0.55, na.HPBSFC*0.45, 1e-9) {
		t.Errorf("BSFC HP: na %.3f turbo %.3f", na.HPBSFC, turbo.HPBSFC)
	}
	if turbo.HPTheoretical != na.HPTheoretical {
		t.Errorf("theoretical HP should not depend on engine type")
	}
}

func TestDeterministic(t *testing.T) {
	a := mustCompute(t, scenario(), DefaultOptions())
	b := mustCompute(t, scenario(), DefaultOptions())
	if a != b {
		t.Errorf("repeated calls differ: %+v vs %+v", a, b)
	}
}

func TestInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		field string
		edit  func(*models.EngineInput)
	}{
		{"zero displacement", models.KeyDisplacement, func(in *models.EngineInput) { in.DisplacementCC = 0 }},
		{"negative injector", models.KeyInjector, func(in *models.EngineInput) { in.InjectorCCMin = -1 }},
		{"zero rpm", models.KeyRPM, func(in *models.EngineInput) { in.RPM = 0 }},
		{"zero cylinders", models.KeyCylinders, func(in *models.EngineInput) { in.Cylinders = 0 }},
		{"zero map", models.KeyMAP, func(in *models.EngineInput) { in.MAPkPa = 0 }},
		{"zero lambda", models.KeyLambda, func(in *models.EngineInput) { in.Lambda = 0 }},
		{"ve too high", models.KeyVE, func(in *models.EngineInput) { in.VEPercent = 250 }},
		{"absolute zero", models.KeyIAT, func(in *models.EngineInput) { in.IATCelsius = -273.15 }},
		{"negative voltage", models.KeyVoltage, func(in *models.EngineInput) { in.BatteryVoltage = -1 }},
		{"nan rpm", models.KeyRPM, func(in *models.EngineInput) { in.RPM = math.NaN() }},
		{"unknown fuel", models.KeyFuel, func(in *models.EngineInput) { in.Fuel = models.FuelType(42) }},
		{"unknown engine", models.KeyEngine, func(in *models.EngineInput) { in.Engine = models.EngineType(7) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := scenario()
			c.edit(&in)
			out, err := Compute(in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
			var ie *InputError
			if !errors.As(err, &ie) || ie.Field != c.field {
				t.Errorf("want field %q, got %v", c.field, err)
			}
			if out != (models.EngineOutput{}) {
				t.Errorf("no output expected on error, got %+v", out)
			}
		})
	}
}
