package sub

import (
	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/dcblock"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/onepole"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/shaper"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

const (
	defaultSmoothing = core.DefaultSmoothingSamples
	pregainDB        = 6
)

var (
	preShaper   = shaper.Saturator{Shape: 0.4, Limit: 0.98}
	postShaper  = shaper.Saturator{Shape: 0.9}
	filterCurve = onepole.Curve{HighCutBase: 4.6, HighCutScale: 34.8, HighResBase: 3, HighResScale: -43.5}
)

// Sub is the driven filter unit. It is mono.
type Sub struct {
	sampleRate float64
	pregain    float32

	filter *onepole.Pair
	state  onepole.PairState
	dc     dcblock.Filter

	dryDB      param.Smooth[float32]
	wetDB      param.Smooth[float32]
	filterKnob float32
}

// New creates a Sub running at sampleRate with its default program loaded.
func New(sampleRate float64, opts ...Option) (*Sub, error) {
	if err := core.ValidateSampleRate("sub", sampleRate); err != nil {
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

	s := &Sub{
		sampleRate: sampleRate,
		pregain:    core.DBToCoefficient(pregainDB),
		filter:     onepole.NewPair(cfg.smoothing),
		dryDB:      param.NewSmooth[float32](-96, cfg.smoothing),
		wetDB:      param.NewSmooth[float32](-3, cfg.smoothing),
	}
	s.LoadProgram(0)

	return s, nil
}

// Info describes the unit.
func (s *Sub) Info() unit.Info {
	return unit.Info{
		Label:       "Sub",
		Description: "Sub filter/overdrive.",
		Maker:       unit.Maker,
		License:     unit.License,
		Version:     unit.Version(1, 0, 0),
		UniqueID:    unit.UniqueID('r', 'c', 'S', 'u'),
		Inputs:      1,
		Outputs:     1,
	}
}

// SampleRate returns the sample rate in Hz.
func (s *Sub) SampleRate() float64 { return s.sampleRate }

// Reset clears the filter and DC blocker memory.
func (s *Sub) Reset() {
	s.state.Reset()
	s.dc.Reset()
}

// Run processes one block on the first channel.
func (s *Sub) Run(inputs, outputs [][]float32, frames int) {
	frames = unit.Frames(outputs, frames)
	if len(outputs) == 0 || outputs[0] == nil {
		return
	}

	out := outputs[0]
	for i := 0; i < frames; i++ {
		out[i] = s.ProcessSample(unit.Input(inputs, 0, i))
	}
}

// ProcessSample processes one sample.
func (s *Sub) ProcessSample(in float32) float32 {
	s.dryDB.Tick()
	s.wetDB.Tick()
	s.filter.Tick()

	y := preShaper.ProcessSample(s.pregain * in)
	y = s.filter.BandPass(&s.state, y)
	y *= core.DBToCoefficient(s.wetDB.Value())
	y = postShaper.ProcessSample(y)
	y = s.dc.ProcessSample(y)

	return core.DBToCoefficient(s.dryDB.Value())*in + y
}

// ProcessInPlace processes buf in place.
func (s *Sub) ProcessInPlace(buf []float32) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}
