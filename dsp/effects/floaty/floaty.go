package floaty

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/delay"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/onepole"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/shaper"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

const (
	defaultSmoothing = core.DefaultSmoothingSamples
	// bufferSeconds is the tape length; the longest delay is half of it.
	bufferSeconds = 1.2
	// channelOffset is the right channel delay in percent of the left one.
	channelOffset = 98
	tapeLimit     = 0.6
	delaySnapMs   = 5
)

var filterCurve = onepole.Curve{HighCutBase: 4.1, HighCutScale: 200, HighResBase: 1, HighResScale: 200}

// Floaty is the tape delay unit. With one output it runs the left tape only;
// with two it runs a second tape whose delay is slightly longer.
type Floaty struct {
	sampleRate float64
	params     param.Table

	left, right           *delay.Tape
	leftState, rightState onepole.PairState
	filter                *onepole.Pair

	delay int
	snap  int

	mix        param.Smooth[float32]
	feedback   param.Smooth[float32]
	warpAmount param.Smooth[float32]
	filterGain param.Smooth[float32]
	rate       param.Smooth[float32]

	warp        float32
	warpRateHz  float64
	warpRateRad float64
	warpCounter float64
	filterKnob  float32
}

// New creates a Floaty running at sampleRate with program 0 loaded.
func New(sampleRate float64, opts ...Option) (*Floaty, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("floaty sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	capacity := int(bufferSeconds * sampleRate)
	snap := max(1, int(delaySnapMs*sampleRate/1000))

	left, err := delay.NewTape(capacity, delay.WithInterpolation(cfg.mode), delay.WithInitialDelay(snap))
	if err != nil {
		return nil, fmt.Errorf("floaty: %w", err)
	}
	right, err := delay.NewTape(capacity, delay.WithInterpolation(cfg.mode), delay.WithInitialDelay(snap))
	if err != nil {
		return nil, fmt.Errorf("floaty: %w", err)
	}

	f := &Floaty{
		sampleRate:  sampleRate,
		params:      newParameterTable(sampleRate, capacity),
		left:        left,
		right:       right,
		filter:      onepole.NewPair(cfg.smoothing),
		snap:        snap,
		mix:         param.NewSmooth[float32](0.4, cfg.smoothing),
		feedback:    param.NewSmooth[float32](0.2, cfg.smoothing),
		warpAmount:  param.NewSmooth[float32](0.01, cfg.smoothing),
		filterGain:  param.NewSmooth[float32](1, cfg.smoothing),
		rate:        param.NewSmooth[float32](1, cfg.smoothing),
		warpRateHz:  0.1,
		warpRateRad: 2 * math.Pi * 0.1 / sampleRate,
	}
	f.LoadProgram(cfg.program)

	return f, nil
}

// Info describes the unit.
func (f *Floaty) Info() unit.Info {
	return unit.Info{
		Label:       "Floaty",
		Description: "Floaty delay.",
		Maker:       unit.Maker,
		License:     unit.License,
		Version:     unit.Version(1, 0, 0),
		UniqueID:    unit.UniqueID('r', 'c', 'F', 'l'),
		Inputs:      2,
		Outputs:     2,
	}
}

// SampleRate returns the sample rate in Hz.
func (f *Floaty) SampleRate() float64 { return f.sampleRate }

// DelaySamples returns the left tape delay in samples.
func (f *Floaty) DelaySamples() int { return f.delay }

// Reset clears both tapes and the filter memory.
func (f *Floaty) Reset() {
	f.left.Reset()
	f.right.Reset()
	f.leftState.Reset()
	f.rightState.Reset()
	f.warpCounter = 0
}

// Run processes one block. The right output, when present, reads input 1 or
// falls back to input 0.
func (f *Floaty) Run(inputs, outputs [][]float32, frames int) {
	frames = unit.Frames(outputs, frames)
	outL := unit.Channel(outputs, 0)
	outR := unit.Channel(outputs, 1)

	inR := 1
	if unit.Channel(inputs, 1) == nil {
		inR = 0
	}

	for i := 0; i < frames; i++ {
		f.tick()
		step := f.advanceWarp()

		l := f.process(f.left, &f.leftState, step, unit.Input(inputs, 0, i))
		if outL != nil {
			outL[i] = l
		}

		if outR != nil {
			outR[i] = f.process(f.right, &f.rightState, step, unit.Input(inputs, inR, i))
		}
	}
}

// ProcessInPlace runs the left channel over buf.
func (f *Floaty) ProcessInPlace(buf []float32) {
	for i, x := range buf {
		f.tick()
		buf[i] = f.process(f.left, &f.leftState, f.advanceWarp(), x)
	}
}

func (f *Floaty) tick() {
	f.mix.Tick()
	f.feedback.Tick()
	f.warpAmount.Tick()
	f.filterGain.Tick()
	f.rate.Tick()
	f.filter.Tick()
}

// advanceWarp returns this frame's play head step. The warp depth is capped
// so the modulated head cannot reach the record head's fade region; delays
// shorter than that region get no warp.
func (f *Floaty) advanceWarp() float64 {
	maxWarp := max(0, (channelOffset*float64(f.delay)/100-delay.SmoothOverlap)*f.warpRateHz/16000)
	warp := math.Min(maxWarp, float64(f.warpAmount.Value())) * math.Sin(f.warpCounter)

	f.warpCounter += f.warpRateRad
	if f.warpCounter >= 2*math.Pi {
		f.warpCounter -= 2 * math.Pi
	}

	return float64(f.rate.Value()) + warp
}

func (f *Floaty) process(t *delay.Tape, st *onepole.PairState, step float64, in float32) float32 {
	t.Advance(step)
	y := t.Read() * t.OverlapGain()
	y = shaper.Tape(y, tapeLimit)
	y = f.filterGain.Value() * f.filter.BandPass(st, y)

	t.Write(in + y*f.feedback.Value())

	return unit.EqualLoudness(in, y, f.mix.Value())
}
