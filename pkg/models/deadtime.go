package models

import "fmt"

// DeadTimePoint is one sample of injector opening delay against battery voltage
type DeadTimePoint struct {
	Voltage    float64
	DeadTimeMs float64
}

// DeadTimeCurve is ordered by strictly increasing voltage
type DeadTimeCurve []DeadTimePoint

// DefaultDeadTimeCurve covers the 10-15 V battery range
var DefaultDeadTimeCurve = DeadTimeCurve{
	{Voltage: 10, DeadTimeMs: 1.6},
	{Voltage: 11, DeadTimeMs: 1.3},
	{Voltage: 12, DeadTimeMs: 1.0},
	{Voltage: 13, DeadTimeMs: 0.8},
	{Voltage: 14, DeadTimeMs: 0.6},
	{Voltage: 15, DeadTimeMs: 0.5},
}

// Validate checks ordering and that dead time never rises with voltage
func (c DeadTimeCurve) Validate() error {
	if len(c) < 2 {
		return fmt.Errorf("dead-time curve needs at least 2 points, got %d", len(c))
	}
	for i, p := range c {
		if p.DeadTimeMs < 0 {
			return fmt.Errorf("dead-time curve point %d: negative dead time %.3f", i, p.DeadTimeMs)
		}
		if i == 0 {
			continue
		}
		prev := c[i-1]
		if p.Voltage <= prev.Voltage {
			return fmt.Errorf("dead-time curve point %d: voltage %.2f not above %.2f", i, p.Voltage, prev.Voltage)
		}
		if p.DeadTimeMs > prev.DeadTimeMs {
			return fmt.Errorf("dead-time curve point %d: dead time rises from %.3f to %.3f", i, prev.DeadTimeMs, p.DeadTimeMs)
		}
	}
	return nil
}

// Range returns the lowest and highest voltage covered
func (c DeadTimeCurve) Range() (float64, float64) {
	if len(c) == 0 {
		return 0, 0
	}
	return c[0].Voltage, c[len(c)-1].Voltage
}
