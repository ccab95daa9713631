package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
)

// Goertzel evaluates one DFT bin over every sample written since the last
// Reset. Off-bin frequencies leak as in an unwindowed DFT.
type Goertzel struct {
	freq   float64
	coeff  float64
	s0, s1 float64
	n      int
}

// NewGoertzel returns a single-bin analyser for freqHz, which must lie in
// [0, sampleRate/2].
func NewGoertzel(freqHz, sampleRate float64) (*Goertzel, error) {
	if err := core.ValidateSampleRate("goertzel", sampleRate); err != nil {
		return nil, err
	}

	if !(freqHz >= 0 && freqHz <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be in [0, %g]: %g", sampleRate/2, freqHz)
	}

	return &Goertzel{freq: freqHz, coeff: 2 * math.Cos(2*math.Pi*freqHz/sampleRate)}, nil
}

// Frequency returns the analysed frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.freq }

// Write feeds one sample.
func (g *Goertzel) Write(x float64) {
	g.s0, g.s1 = x+g.coeff*g.s0-g.s1, g.s0
	g.n++
}

// Power returns |X[k]|² of the samples written so far.
func (g *Goertzel) Power() float64 {
	return max(g.s0*g.s0+g.s1*g.s1-g.coeff*g.s0*g.s1, 0)
}

// Amplitude returns the peak amplitude of a sine at the analysed frequency,
// 2·|X[k]|/N, assuming it completes whole cycles over the block.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	return 2 * math.Sqrt(g.Power()) / float64(g.n)
}

// Reset forgets all samples.
func (g *Goertzel) Reset() { g.s0, g.s1, g.n = 0, 0, 0 }

// AnalyzeBlock returns the Goertzel power of input at freqHz.
func AnalyzeBlock[T core.Float](input []T, freqHz, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}

	for _, x := range input {
		g.Write(float64(x))
	}

	return g.Power(), nil
}
