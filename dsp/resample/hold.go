package resample

import (
	"fmt"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Channel is the per-channel cursor of a Hold.
type Channel struct {
	next   float64
	cursor int
	held   float32
}

// Reset rewinds the cursor so the next input is latched immediately.
func (c *Channel) Reset() {
	*c = Channel{}
}

// Held returns the currently latched value.
func (c *Channel) Held() float32 { return c.held }

// Hold reduces the effective sample rate by holding inputs between sampling
// instants spaced Step samples apart.
type Hold struct {
	sampleRate float64
	rate       float64
	step       param.Smooth[float32]
}

// NewHold returns a pass-through Hold running at sampleRate. smoothing is
// the glide length of the hold period in samples.
func NewHold(sampleRate float64, smoothing int) (*Hold, error) {
	if err := core.ValidateSampleRate("resample", sampleRate); err != nil {
		return nil, err
	}

	if smoothing < 0 {
		return nil, fmt.Errorf("resample: smoothing must be >= 0: %d", smoothing)
	}

	return &Hold{
		sampleRate: sampleRate,
		rate:       sampleRate,
		step:       param.NewSmooth[float32](1, smoothing),
	}, nil
}

// SetRate sets the target sampling rate in Hz. Values are clamped to
// [1, sampleRate]; the hold period glides towards sampleRate/hz.
func (h *Hold) SetRate(hz float64) {
	h.rate = core.Clamp(hz, 1, h.sampleRate)
	h.step.Set(float32(h.sampleRate / h.rate))
}

// Rate returns the target sampling rate in Hz.
func (h *Hold) Rate() float64 { return h.rate }

// Step returns the current hold period in samples.
func (h *Hold) Step() float32 { return h.step.Value() }

// PassThrough reports whether the target rate equals the host rate.
func (h *Hold) PassThrough() bool { return h.rate >= h.sampleRate }

// Tick advances the hold period glide by one sample.
func (h *Hold) Tick() { h.step.Tick() }

// Complete jumps the hold period to its target.
func (h *Hold) Complete() { h.step.Complete() }

// Process advances ch by one sample and returns either x or the value held
// since the last sampling instant. The cursor counts the current sample
// before comparing, so after a Reset the first hold period is one sample
// shorter than Step: with Step 4 the latches fall on samples 0, 3, 7, 11.
func (h *Hold) Process(ch *Channel, x float32) float32 {
	ch.cursor++
	if float64(ch.cursor) < ch.next && !h.PassThrough() {
		return ch.held
	}

	ch.next += float64(h.step.Value())
	if h.PassThrough() {
		ch.cursor = int(ch.next)
	}

	// Rebase by a whole number of samples so the comparison above is
	// unchanged and the cursor never grows without bound.
	ch.next -= float64(ch.cursor)
	ch.cursor = 0
	ch.held = x

	return x
}

// ProcessInPlace runs Process over buf with the hold period held constant.
func (h *Hold) ProcessInPlace(ch *Channel, buf []float32) {
	for i, x := range buf {
		buf[i] = h.Process(ch, x)
	}
}
