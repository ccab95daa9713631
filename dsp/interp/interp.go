package interp

import "github.com/cwbudde/algo-remaincalm/dsp/core"

// Mode selects the read interpolation of a fractional delay.
type Mode int

const (
	// ModeLinear blends the two neighbouring samples.
	ModeLinear Mode = iota
	// ModeHermite fits a cubic through four neighbouring samples.
	ModeHermite
)

// Linear2 interpolates between x0 (t=0) and x1 (t=1).
func Linear2[T core.Float](t, x0, x1 T) T {
	return x0*(1-t) + x1*t
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4[T core.Float](t, xm1, x0, x1, x2 T) T {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
