//go:build !fastmath

package core

import "math"

// DBToCoefficient converts a gain in dB to a linear coefficient. Anything at
// or below FloorDB maps to exact silence.
func DBToCoefficient(db float32) float32 {
	if db <= FloorDB {
		return 0
	}

	return float32(math.Pow(10, float64(db)*0.05))
}
