package mud

import (
	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/dcblock"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/onepole"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/shaper"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

const defaultSmoothing = core.DefaultSmoothingSamples

var (
	preShaper   = shaper.Saturator{Shape: 0.4, Limit: 0.98}
	postShaper  = shaper.Saturator{Shape: 0.9}
	filterCurve = onepole.Curve{HighCutBase: 4.6, HighCutScale: 34.8, HighResBase: 3, HighResScale: -63.5}
)

// Mud is the LFO-swept band-pass tone shaper. It is mono.
type Mud struct {
	sampleRate float64

	filter *onepole.Pair
	state  onepole.PairState
	dc     dcblock.Filter

	mix        param.Smooth[float32]
	filterKnob float32
	lfo        float32

	counter  int64
	position float64
}

// New creates a Mud running at sampleRate with program 0 loaded.
func New(sampleRate float64, opts ...Option) (*Mud, error) {
	if err := core.ValidateSampleRate("mud", sampleRate); err != nil {
		return nil, err
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

	m := &Mud{
		sampleRate: sampleRate,
		filter:     onepole.NewPair(cfg.smoothing),
		mix:        param.NewSmooth[float32](1, cfg.smoothing),
	}
	m.LoadProgram(cfg.program)

	return m, nil
}

// Info describes the unit.
func (m *Mud) Info() unit.Info {
	return unit.Info{
		Label:       "Mud",
		Description: "Mud modulation/filter.",
		Maker:       unit.Maker,
		License:     unit.License,
		Version:     unit.Version(1, 0, 0),
		UniqueID:    unit.UniqueID('r', 'c', 'M', 'u'),
		Inputs:      1,
		Outputs:     1,
	}
}

// SampleRate returns the sample rate in Hz.
func (m *Mud) SampleRate() float64 { return m.sampleRate }

// FilterPosition returns the current swept filter position in [0, 100].
func (m *Mud) FilterPosition() float64 { return m.position }

// Reset clears the filter and DC blocker memory and restarts the LFO.
func (m *Mud) Reset() {
	m.state.Reset()
	m.dc.Reset()
	m.counter = 0
}

// Run processes one block on the first channel.
func (m *Mud) Run(inputs, outputs [][]float32, frames int) {
	frames = unit.Frames(outputs, frames)
	if len(outputs) == 0 || outputs[0] == nil {
		return
	}

	m.advanceLFO()

	out := outputs[0]
	for i := 0; i < frames; i++ {
		out[i] = m.ProcessSample(unit.Input(inputs, 0, i))
	}
}

// ProcessSample processes one sample without advancing the LFO.
func (m *Mud) ProcessSample(in float32) float32 {
	m.mix.Tick()
	m.filter.Tick()

	y := preShaper.ProcessSample(in)
	y = m.filter.BandPass(&m.state, y)
	y = postShaper.ProcessSample(y)
	y = m.dc.ProcessSample(y)

	return unit.EqualLoudness(in, y, m.mix.Value())
}

// ProcessInPlace processes buf as one block.
func (m *Mud) ProcessInPlace(buf []float32) {
	m.advanceLFO()
	for i, x := range buf {
		buf[i] = m.ProcessSample(x)
	}
}
