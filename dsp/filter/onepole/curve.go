package onepole

import "github.com/cwbudde/algo-remaincalm/dsp/core"

// Curve maps a cutoff/resonance meta pair onto Pair coefficients:
//
//	lowC  = 0.5^(4.6 - cutoff/27.2)
//	lowR  = 0.5^(-0.6 + res/40)
//	highC = 0.5^(HighCutBase + cutoff/HighCutScale)
//	highR = 0.5^(HighResBase + res/HighResScale)
//
// The low-pass half is shared by every unit; units differ in the high-pass.
type Curve struct {
	HighCutBase  float64
	HighCutScale float64
	HighResBase  float64
	HighResScale float64
}

// Coefficients evaluates the curve.
func (k Curve) Coefficients(cutoff, res float64) Coefficients {
	return Coefficients{
		LowC:  float32(core.HalfPow(4.6 - cutoff/27.2)),
		LowR:  float32(core.HalfPow(-0.6 + res/40)),
		HighC: float32(core.HalfPow(k.HighCutBase + cutoff/k.HighCutScale)),
		HighR: float32(core.HalfPow(k.HighResBase + res/k.HighResScale)),
	}
}
