package paranoia

import (
	"fmt"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/crush"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/dcblock"
	"github.com/cwbudde/algo-remaincalm/dsp/filter/onepole"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/resample"
	"github.com/cwbudde/algo-remaincalm/dsp/shaper"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

const (
	defaultSmoothing = core.DefaultSmoothingSamples
	pregainDB        = 6
	maxChannels      = 2
)

var (
	preShaper   = shaper.Saturator{Shape: 0.857, Limit: 0.9}
	postShaper  = shaper.Saturator{Shape: 0.9}
	filterCurve = onepole.Curve{HighCutBase: 4.6, HighCutScale: 34.8, HighResBase: 3, HighResScale: -43.5}
)

type channel struct {
	hold   resample.Channel
	filter onepole.PairState
	dc     dcblock.Filter
}

// Paranoia is the distortion and bit mangler unit. Both channels share one
// parameter set.
type Paranoia struct {
	sampleRate float64
	mix        float32
	pregain    float32

	hold     *resample.Hold
	crusher  *crush.Bitcrusher
	filter   *onepole.Pair
	channels [maxChannels]channel

	crush      float32
	filterKnob float32
	res        float64
	mode       FilterMode

	wetDB    param.Smooth[float32]
	gainComp param.Smooth[float32]
}

// New creates a Paranoia running at sampleRate with program 0 loaded.
func New(sampleRate float64, opts ...Option) (*Paranoia, error) {
	if err := core.ValidateSampleRate("paranoia", sampleRate); err != nil {
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

	hold, err := resample.NewHold(sampleRate, cfg.smoothing)
	if err != nil {
		return nil, fmt.Errorf("paranoia: %w", err)
	}

	p := &Paranoia{
		sampleRate: sampleRate,
		mix:        cfg.mix,
		pregain:    core.DBToCoefficient(pregainDB),
		hold:       hold,
		crusher:    crush.NewBitcrusher(cfg.smoothing),
		filter:     onepole.NewPair(cfg.smoothing),
		crush:      95,
		mode:       FilterBandPass,
		wetDB:      param.NewSmooth[float32](0.4, cfg.smoothing),
		gainComp:   param.NewSmooth[float32](1, cfg.smoothing),
	}
	p.LoadProgram(cfg.program)

	return p, nil
}

// Info describes the unit.
func (p *Paranoia) Info() unit.Info {
	return unit.Info{
		Label:       "Paranoia",
		Description: "Paranoia distortion/mangler.",
		Maker:       unit.Maker,
		License:     unit.License,
		Version:     unit.Version(1, 0, 0),
		UniqueID:    unit.UniqueID('r', 'c', 'P', 'a'),
		Inputs:      maxChannels,
		Outputs:     maxChannels,
	}
}

// SampleRate returns the sample rate in Hz.
func (p *Paranoia) SampleRate() float64 { return p.sampleRate }

// Reset clears all per-channel state.
func (p *Paranoia) Reset() {
	for i := range p.channels {
		p.channels[i] = channel{}
	}
}

// Run processes one block on up to two channels.
func (p *Paranoia) Run(inputs, outputs [][]float32, frames int) {
	frames = unit.Frames(outputs, frames)
	n := min(len(outputs), maxChannels)

	for i := 0; i < frames; i++ {
		p.tick()
		for ch := 0; ch < n; ch++ {
			if outputs[ch] == nil {
				continue
			}
			outputs[ch][i] = p.process(&p.channels[ch], unit.Input(inputs, ch, i))
		}
	}
}

// ProcessInPlace runs the first channel over buf.
func (p *Paranoia) ProcessInPlace(buf []float32) {
	for i, x := range buf {
		p.tick()
		buf[i] = p.process(&p.channels[0], x)
	}
}

func (p *Paranoia) tick() {
	p.wetDB.Tick()
	p.gainComp.Tick()
	p.hold.Tick()
	p.crusher.Tick()
	p.filter.Tick()
}

// crushStage returns the rate-reduced, clipped and quantised sample.
func (p *Paranoia) crushStage(c *channel, in float32) float32 {
	y := p.hold.Process(&c.hold, p.pregain*in)
	y = preShaper.ProcessSample(y)
	return p.crusher.ProcessSample(y)
}

func (p *Paranoia) process(c *channel, in float32) float32 {
	y := p.crushStage(c, in)

	switch p.mode {
	case FilterBandPass:
		y = p.filter.BandPass(&c.filter, y)
	case FilterHighPass:
		y = p.filter.HighPass(&c.filter, y)
	}

	y *= p.gainComp.Value() * core.DBToCoefficient(p.wetDB.Value())
	y = postShaper.ProcessSample(y)
	y = c.dc.ProcessSample(y)

	return unit.EqualLoudness(in, y, p.mix)
}
