package time

import (
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
)

// Stats holds the level statistics of a signal.
type Stats struct {
	Length        int
	DC            float64
	RMS           float64
	Peak          float64 // max |x|
	PeakPos       int
	CrestFactor   float64 // Peak / RMS, 0 for silence
	ZeroCrossings int
	NonFinite     int // NaN or Inf samples, excluded from everything else
}

// RMSdB returns the RMS level in dBFS, or -Inf for silence.
func (s Stats) RMSdB() float64 { return ampToDB(s.RMS) }

// PeakdB returns the peak level in dBFS, or -Inf for silence.
func (s Stats) PeakdB() float64 { return ampToDB(s.Peak) }

// CrestdB returns the crest factor in dB, or 0 for silence.
func (s Stats) CrestdB() float64 {
	if s.CrestFactor == 0 {
		return 0
	}

	return 20 * math.Log10(s.CrestFactor)
}

// Silent reports whether no finite sample deviated from zero.
func (s Stats) Silent() bool { return s.Peak == 0 }

func ampToDB(v float64) float64 {
	if v == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(math.Abs(v))
}

// Calculate returns the statistics of signal in a single pass.
func Calculate[T core.Float](signal []T) Stats {
	var acc accumulator
	for _, x := range signal {
		acc.add(float64(x))
	}

	return acc.result()
}

// RMS returns the root-mean-square level of signal, ignoring non-finite
// samples.
func RMS[T core.Float](signal []T) float64 {
	var sum float64

	n := 0
	for _, x := range signal {
		v := float64(x)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		sum += v * v
		n++
	}

	if n == 0 {
		return 0
	}

	return math.Sqrt(sum / float64(n))
}

// Peak returns max |x| over the finite samples of signal.
func Peak[T core.Float](signal []T) float64 {
	peak := 0.0
	for _, x := range signal {
		v := math.Abs(float64(x))
		if v > peak && !math.IsInf(v, 0) {
			peak = v
		}
	}

	return peak
}

// GainDB returns the RMS level change from in to out in dB. It returns 0
// when either side is silent.
func GainDB(in, out Stats) float64 {
	if in.RMS == 0 || out.RMS == 0 {
		return 0
	}

	return 20 * math.Log10(out.RMS/in.RMS)
}

type accumulator struct {
	n, pos, nonFinite int
	mean, sumSq, peak float64
	peakPos, zc       int
	prev              float64
	havePrev          bool
}

func (a *accumulator) add(x float64) {
	pos := a.pos
	a.pos++

	if math.IsNaN(x) || math.IsInf(x, 0) {
		a.nonFinite++
		return
	}

	a.n++
	a.mean += (x - a.mean) / float64(a.n)
	a.sumSq += x * x

	if v := math.Abs(x); v > a.peak {
		a.peak = v
		a.peakPos = pos
	}

	if a.havePrev && a.prev*x < 0 {
		a.zc++
	}

	a.prev = x
	a.havePrev = true
}

func (a *accumulator) result() Stats {
	s := Stats{
		Length:        a.pos,
		NonFinite:     a.nonFinite,
		Peak:          a.peak,
		PeakPos:       a.peakPos,
		ZeroCrossings: a.zc,
	}

	if a.n == 0 {
		return s
	}

	s.DC = a.mean
	s.RMS = math.Sqrt(a.sumSq / float64(a.n))

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	return s
}

// Streaming accumulates Stats across consecutive blocks. Zero crossings
// spanning a block boundary are counted. The zero value is ready to use.
type Streaming struct {
	acc accumulator
}

// Update adds a block of samples.
func (s *Streaming) Update(block []float32) {
	for _, x := range block {
		s.acc.add(float64(x))
	}
}

// Result returns the statistics of everything seen so far.
func (s *Streaming) Result() Stats { return s.acc.result() }

// Reset discards all accumulated samples.
func (s *Streaming) Reset() { s.acc = accumulator{} }
