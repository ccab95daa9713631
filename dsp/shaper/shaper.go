// Package shaper implements the rational soft-clip waveshapers placed around
// every unit's filter stage:
//
//	y = (1 + k)*x / (1 + k*|x|)
//
// The curve has unity gain at |x| = 1 and approaches (1+k)/k for large
// inputs, so any finite input stays bounded.
package shaper

import "github.com/cwbudde/algo-remaincalm/dsp/core"

// Soft applies the rational curve with shape k.
func Soft(x, k float32) float32 {
	return (1 + k) * x / (1 + k*core.Abs(x))
}

// SoftClamped applies Soft and limits the result to [-limit, limit].
func SoftClamped(x, k, limit float32) float32 {
	return core.Clamp(Soft(x, k), -limit, limit)
}

// Tape is the signal-dependent variant used on a tape read: the shape
// k = 3 - 0.8*x softens positive excursions more than negative ones, and
// the output is scaled and limited to limit.
func Tape(x, limit float32) float32 {
	k := 3 - 0.8*x
	return core.Clamp(limit*Soft(x, k), -limit, limit)
}

// Saturator is a fixed-shape soft clipper. A zero Limit leaves the output
// unclamped.
type Saturator struct {
	Shape float32
	Limit float32
}

// ProcessSample shapes one sample.
func (s Saturator) ProcessSample(x float32) float32 {
	if s.Limit > 0 {
		return SoftClamped(x, s.Shape, s.Limit)
	}

	return Soft(x, s.Shape)
}

// ProcessInPlace shapes buf in place.
func (s Saturator) ProcessInPlace(buf []float32) {
	for i := range buf {
		buf[i] = s.ProcessSample(buf[i])
	}
}
