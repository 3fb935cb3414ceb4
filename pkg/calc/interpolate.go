package calc

import "github.com/tosih/injector-calc/pkg/models"

// Interpolate returns the dead time at voltage v, linear between the two
// bracketing points. Outside the curve it holds the nearest end value and
// reports clamped = true.
func Interpolate(curve models.DeadTimeCurve, v float64) (deadTime float64, clamped bool) {
	if len(curve) == 0 {
		return 0, true
	}
	first, last := curve[0], curve[len(curve)-1]
	if v <= first.Voltage {
		return first.DeadTimeMs, v < first.Voltage
	}
	if v >= last.Voltage {
		return last.DeadTimeMs, v > last.Voltage
	}

	for i := 1; i < len(curve); i++ {
		hi := curve[i]
		if v > hi.Voltage {
			continue
		}
		lo := curve[i-1]
		t := (v - lo.Voltage) / (hi.Voltage - lo.Voltage)
		return lo.DeadTimeMs + t*(hi.DeadTimeMs-lo.DeadTimeMs), false
	}
	return last.DeadTimeMs, false
}
