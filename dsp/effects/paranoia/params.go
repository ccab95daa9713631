package paranoia

import (
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/crush"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Parameter ids.
const (
	ParamWet = iota
	ParamCrush
	ParamMangle
	ParamFilter
	NumParams
)

var parameters = param.Table{
	ParamWet:    {Name: "Level", Symbol: "wet", Unit: "dB", Min: -24, Default: -3, Max: 6, Flags: param.Automatable},
	ParamCrush:  {Name: "Crush", Symbol: "crush", Min: 0, Default: 95, Max: 100, Flags: param.Automatable},
	ParamMangle: {Name: "Mangle", Symbol: "nuclear", Min: 0, Default: 0, Max: crush.NumPatterns - 1, Flags: param.Automatable},
	ParamFilter: {Name: "Filter", Symbol: "filter", Min: 0, Default: 45, Max: 100, Flags: param.Automatable},
}

var programs = param.Programs{
	{Name: "grit", Values: []float32{-9, 100, 0, 40}},
	{Name: "more grit", Values: []float32{-3, 65, 0.5, 12.5}},
	{Name: "gated fuzz", Values: []float32{-2, 0, 13.25, 60.94}},
	{Name: "lofi", Values: []float32{-1, 45, 3.75, 30}},
	{Name: "invert", Values: []float32{-1, 90, 11, 34.4}},
	{Name: "lupine", Values: []float32{-9, 53.13, 12.5, 54.69}},
}

// FilterMode selects which filter sections run.
type FilterMode int

const (
	FilterOff FilterMode = iota
	FilterBandPass
	FilterHighPass
)

// String implements fmt.Stringer.
func (m FilterMode) String() string {
	switch m {
	case FilterBandPass:
		return "bandpass"
	case FilterHighPass:
		return "highpass"
	default:
		return "off"
	}
}

// Parameters returns the parameter table.
func (p *Paranoia) Parameters() param.Table { return parameters }

// Programs returns the program table.
func (p *Paranoia) Programs() param.Programs { return programs }

// LoadProgram applies program index without gliding and restarts the rate
// reducer.
func (p *Paranoia) LoadProgram(index int) {
	if index < 0 || index >= len(programs) {
		return
	}

	v := programs[index].Values
	for i := range p.channels {
		p.channels[i].hold.Reset()
	}

	p.SetParameterValue(ParamMangle, v[ParamMangle])
	p.SetParameterValue(ParamCrush, v[ParamCrush])
	p.crusher.Complete()
	p.hold.Complete()

	p.SetParameterValue(ParamWet, v[ParamWet])
	p.wetDB.Complete()

	p.SetParameterValue(ParamFilter, v[ParamFilter])
	p.gainComp.Complete()
	p.filter.Complete()
}

// ParameterValue returns the target value of parameter index.
func (p *Paranoia) ParameterValue(index int) float32 {
	switch index {
	case ParamWet:
		return p.wetDB.Target()
	case ParamCrush:
		return p.crush
	case ParamMangle:
		return p.crusher.Mangle()
	case ParamFilter:
		return p.filterKnob
	default:
		return 0
	}
}

// SetParameterValue assigns parameter index.
func (p *Paranoia) SetParameterValue(index int, value float32) {
	switch index {
	case ParamWet:
		p.wetDB.Set(value)
	case ParamCrush:
		p.crush = value
		p.fixCrush()
	case ParamMangle:
		p.crusher.SetMangle(value)
	case ParamFilter:
		p.filterKnob = value
		p.fixFilter()
	}
}

// ResampleRate returns the rate reducer target in Hz.
func (p *Paranoia) ResampleRate() float64 { return p.hold.Rate() }

// BitDepth returns the quantiser resolution.
func (p *Paranoia) BitDepth() int { return p.crusher.BitDepth() }

// FilterMode returns the active filter sections.
func (p *Paranoia) FilterMode() FilterMode { return p.mode }

// CrushSettings maps the Crush knob onto a rate in Hz and a bit depth.
func CrushSettings(knob float32, sampleRate float64) (rate float64, bitDepth int) {
	bitDepth = 10
	if knob < 50 {
		bitDepth = 6
	}

	c := float64(knob)
	switch {
	case c > 99:
		rate = sampleRate
	case c > 50:
		rate = 300 + (c-50)*600
	default:
		rate = 300 + (50-c)*600
	}

	return min(rate, sampleRate), bitDepth
}

func (p *Paranoia) fixCrush() {
	rate, depth := CrushSettings(p.crush, p.sampleRate)
	p.crusher.ClampBitDepth(depth)
	p.hold.SetRate(rate)
}

func (p *Paranoia) fixFilter() {
	f := float64(p.filterKnob)
	fold := math.Abs(math.Abs(160-3.2*f) - 80)
	cutoff := 20 + fold
	gain := 3 - fold/40

	switch {
	case f <= 80:
		p.mode = FilterBandPass
		p.res = 10 + f/8
	case f <= 99:
		p.mode = FilterHighPass
		p.res = 40
		gain = 1
	default:
		p.mode = FilterOff
		gain = 1
	}

	p.gainComp.Set(float32(gain))
	p.filter.Set(filterCurve.Coefficients(cutoff, p.res))
}
