//go:build fastmath

package core

import approx "github.com/meko-christian/algo-approx"

const ln10Over20 = 0.11512925464970229

// DBToCoefficient converts a gain in dB to a linear coefficient. Anything at
// or below FloorDB maps to exact silence.
func DBToCoefficient(db float32) float32 {
	if db <= FloorDB {
		return 0
	}

	return float32(approx.FastExp(float64(db) * ln10Over20))
}
