package spectrum

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/window"
)

var errEmptySignal = errors.New("spectrum: empty signal")

// Analysis is the one-sided amplitude spectrum of a real signal. A sine of
// amplitude A centred on a bin reads A.
type Analysis struct {
	Magnitude  []float64
	BinHz      float64
	SampleRate float64
}

// Analyze windows signal, zero-pads it to the next power of two and returns
// its amplitude spectrum.
func Analyze[T core.Float](signal []T, sampleRate float64, win window.Type) (*Analysis, error) {
	if len(signal) == 0 {
		return nil, errEmptySignal
	}

	if err := core.ValidateSampleRate("spectrum", sampleRate); err != nil {
		return nil, err
	}

	n := nextPow2(len(signal))

	wide := make([]float64, len(signal))
	for i, v := range signal {
		wide[i] = float64(v)
	}

	coeffs := window.Generate(win, len(wide), window.WithPeriodic())
	window.Apply(win, wide, window.WithPeriodic())

	gain := window.CoherentGain(coeffs)
	if gain == 0 {
		return nil, fmt.Errorf("spectrum: window %s has zero coherent gain", win)
	}

	in := make([]complex128, n)
	for i, v := range wide {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	half := n/2 + 1
	re, im, buf := getScratch(half)

	for i := range half {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, half)
	MagnitudeFromParts(mag, re, im)
	putScratch(buf)

	scale := 2 / (float64(len(signal)) * gain)
	for i := range mag {
		mag[i] *= scale
	}

	return &Analysis{Magnitude: mag, BinHz: sampleRate / float64(n), SampleRate: sampleRate}, nil
}

// Bin returns the bin index nearest to freq.
func (a *Analysis) Bin(freq float64) int {
	k := int(freq/a.BinHz + 0.5)
	return min(max(k, 0), len(a.Magnitude)-1)
}

// Level returns the largest magnitude within one bin of freq.
func (a *Analysis) Level(freq float64) float64 {
	k := a.Bin(freq)

	best := 0.0
	for i := max(k-1, 0); i <= min(k+1, len(a.Magnitude)-1); i++ {
		best = max(best, a.Magnitude[i])
	}

	return best
}

// Peak returns the frequency and magnitude of the largest bin in [lo, hi].
func (a *Analysis) Peak(lo, hi float64) (float64, float64) {
	k0, k1 := a.Bin(lo), a.Bin(hi)

	best := k0
	for k := k0; k <= k1; k++ {
		if a.Magnitude[k] > a.Magnitude[best] {
			best = k
		}
	}

	return float64(best) * a.BinHz, a.Magnitude[best]
}

// BandEnergy returns the summed squared magnitude of the bins in [lo, hi].
func (a *Analysis) BandEnergy(lo, hi float64) float64 {
	e := 0.0
	for k := a.Bin(lo); k <= a.Bin(hi); k++ {
		e += a.Magnitude[k] * a.Magnitude[k]
	}

	return e
}

// Centroid returns the magnitude-weighted mean frequency in Hz, or 0 for a
// silent spectrum. The DC bin is ignored.
func (a *Analysis) Centroid() float64 {
	var num, den float64
	for k := 1; k < len(a.Magnitude); k++ {
		num += float64(k) * a.BinHz * a.Magnitude[k]
		den += a.Magnitude[k]
	}

	if den == 0 {
		return 0
	}

	return num / den
}

// Rolloff returns the frequency below which fraction of the spectral energy
// lies. fraction is clamped to [0, 1].
func (a *Analysis) Rolloff(fraction float64) float64 {
	fraction = core.Clamp(fraction, 0, 1)

	total := 0.0
	for _, m := range a.Magnitude {
		total += m * m
	}

	if total == 0 {
		return 0
	}

	acc := 0.0
	for k, m := range a.Magnitude {
		acc += m * m
		if acc >= fraction*total {
			return float64(k) * a.BinHz
		}
	}

	return float64(len(a.Magnitude)-1) * a.BinHz
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
