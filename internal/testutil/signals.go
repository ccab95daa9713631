// Package testutil holds deterministic float32 signals and assertion
// helpers shared by the unit tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns length samples of amplitude·sin(2π·freqHz·n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	w := 2 * math.Pi * freqHz / sampleRate

	out := make([]float32, length)
	for n := range out {
		out[n] = float32(amplitude * math.Sin(w*float64(n)))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) drawn
// from a PCG source seeded with seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float32 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))

	out := make([]float32, length)
	for n := range out {
		out[n] = float32(amplitude * (2*rng.Float64() - 1))
	}

	return out
}

// Impulse returns a unit impulse at pos, or silence when pos is out of range.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for n := range out {
		out[n] = value
	}

	return out
}

// Ramp rises linearly from 0 to (length-1)/length.
func Ramp(length int) []float32 {
	out := make([]float32, length)
	for n := range out {
		out[n] = float32(n) / float32(length)
	}

	return out
}

// Energy returns Σx².
func Energy(data []float32) float64 {
	e := 0.0
	for _, x := range data {
		e += float64(x) * float64(x)
	}

	return e
}
