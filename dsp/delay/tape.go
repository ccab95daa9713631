// Package delay implements the tape loop behind Floaty: one ring buffer
// with an integer record head moving at one sample per sample and a free,
// fractional play head that can run at any speed in either direction.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/interp"
)

// SmoothOverlap is the head distance in samples below which the play head
// output is faded towards zero.
const SmoothOverlap = 128

// TapeOption mutates tape construction parameters.
type TapeOption func(*tapeConfig) error

type tapeConfig struct {
	mode  interp.Mode
	delay int
}

// WithInterpolation selects the play head read interpolation.
func WithInterpolation(mode interp.Mode) TapeOption {
	return func(cfg *tapeConfig) error {
		if mode != interp.ModeLinear && mode != interp.ModeHermite {
			return fmt.Errorf("tape interpolation mode unknown: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// WithInitialDelay sets the delay the tape starts at.
func WithInitialDelay(samples int) TapeOption {
	return func(cfg *tapeConfig) error {
		if samples < 1 {
			return fmt.Errorf("tape delay must be >= 1: %d", samples)
		}
		cfg.delay = samples
		return nil
	}
}

// Tape is a circular buffer read by a free play head. The readable region is
// ModPoint = min(capacity, 2*delay) samples; the record head starts delay
// samples ahead of the play head.
type Tape struct {
	buf   []float32
	mode  interp.Mode
	delay int
	mod   int
	rec   int
	play  float64
}

// NewTape allocates a tape of capacity samples.
func NewTape(capacity int, opts ...TapeOption) (*Tape, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("tape capacity must be >= 2: %d", capacity)
	}

	cfg := tapeConfig{mode: interp.ModeLinear, delay: capacity / 2}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	t := &Tape{buf: make([]float32, capacity), mode: cfg.mode}
	t.SetDelay(cfg.delay)

	return t, nil
}

// SetDelay clears the tape and restarts both heads delay samples apart.
// Delays are limited to [1, capacity]; zero or negative requests are ignored.
func (t *Tape) SetDelay(delay int) {
	if delay < 1 {
		return
	}

	delay = min(delay, len(t.buf))

	core.Zero(t.buf)
	t.delay = delay
	t.mod = min(len(t.buf), 2*delay)
	t.play = 0
	t.rec = t.mod - delay
}

// Advance moves the play head by step samples and wraps it into
// [0, ModPoint).
func (t *Tape) Advance(step float64) {
	m := float64(t.mod)
	p := math.Mod(math.Mod(t.play+step, m)+m, m)
	if p >= m || math.IsNaN(p) {
		p = 0
	}
	t.play = p
}

// Read returns the interpolated sample under the play head.
func (t *Tape) Read() float32 {
	p0 := int(t.play)
	frac := float32(t.play - float64(p0))
	p1 := (p0 + 1) % t.mod

	if t.mode == interp.ModeHermite {
		pm1 := (p0 - 1 + t.mod) % t.mod
		p2 := (p0 + 2) % t.mod
		return interp.Hermite4(frac, t.buf[pm1], t.buf[p0], t.buf[p1], t.buf[p2])
	}

	return interp.Linear2(frac, t.buf[p0], t.buf[p1])
}

// OverlapGain returns the fade applied when the heads are closer than
// SmoothOverlap samples.
func (t *Tape) OverlapGain() float32 {
	d := math.Abs(t.play - float64(t.rec))
	if d >= SmoothOverlap {
		return 1
	}

	return float32(d / SmoothOverlap)
}

// Write stores x under the record head and advances it by one sample.
func (t *Tape) Write(x float32) {
	t.buf[t.rec] = core.FlushDenormals(x)
	t.rec = (t.rec + 1) % t.mod
}

// Delay returns the head spacing the tape was last set to.
func (t *Tape) Delay() int { return t.delay }

// ModPoint returns the length of the active loop.
func (t *Tape) ModPoint() int { return t.mod }

// Capacity returns the buffer size.
func (t *Tape) Capacity() int { return len(t.buf) }

// PlayPosition returns the play head position.
func (t *Tape) PlayPosition() float64 { return t.play }

// RecordPosition returns the record head position.
func (t *Tape) RecordPosition() int { return t.rec }

// Reset clears the tape and re-seeds the heads at the current delay.
func (t *Tape) Reset() { t.SetDelay(t.delay) }
