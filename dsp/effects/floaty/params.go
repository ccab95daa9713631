package floaty

import (
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Parameter ids.
const (
	ParamDelay = iota
	ParamMix
	ParamFeedback
	ParamWarp
	ParamFilter
	ParamRate
	NumParams
)

var programs = param.Programs{
	{Name: "Default", Values: []float32{280, 42, 20, 60, 19, 1}},
	{Name: "Dream", Values: []float32{350, 25, 15, 35, 53, -1}},
	{Name: "Dub", Values: []float32{430, 25, 17, 40, 90, 1}},
	{Name: "Octave", Values: []float32{600, 13, 10, 35, 70, -2}},
	{Name: "Melt", Values: []float32{260, 13, 5, 15, 60, 1.5}},
	{Name: "Slap", Values: []float32{90, 45, 0, 45, 60, 1}},
}

func newParameterTable(sampleRate float64, capacity int) param.Table {
	return param.Table{
		ParamDelay: {
			Name: "Delay", Symbol: "delay", Unit: "ms",
			Min: 10, Default: 110, Max: float32(0.5 * 1000 * float64(capacity) / sampleRate),
			Flags: param.Automatable,
		},
		ParamMix:      {Name: "Mix", Symbol: "mix", Unit: "%", Min: 0, Default: 40, Max: 100, Flags: param.Automatable},
		ParamFeedback: {Name: "Feedback", Symbol: "feedback", Unit: "%", Min: 0, Default: 15, Max: 60, Flags: param.Automatable},
		ParamWarp:     {Name: "Warp", Symbol: "warp", Min: 0, Default: 48, Max: 100, Flags: param.Automatable},
		ParamFilter:   {Name: "Filter", Symbol: "filter", Min: 0, Default: 50, Max: 100, Flags: param.Automatable},
		ParamRate:     {Name: "Playback Rate", Symbol: "rate", Unit: "x", Min: -2, Default: 1, Max: 2, Flags: param.Automatable},
	}
}

// Parameters returns the parameter table.
func (f *Floaty) Parameters() param.Table { return f.params }

// Programs returns the program table.
func (f *Floaty) Programs() param.Programs { return programs }

// LoadProgram applies program index without gliding. The delay is set last
// so that the hard cut happens with the new rate already in place.
func (f *Floaty) LoadProgram(index int) {
	if index < 0 || index >= len(programs) {
		return
	}

	v := programs[index].Values

	f.SetParameterValue(ParamFeedback, v[ParamFeedback])
	f.feedback.Complete()
	f.SetParameterValue(ParamMix, v[ParamMix])
	f.mix.Complete()
	f.SetParameterValue(ParamFilter, v[ParamFilter])
	f.filterGain.Complete()
	f.filter.Complete()
	f.SetParameterValue(ParamWarp, v[ParamWarp])
	f.warpAmount.Complete()
	f.SetParameterValue(ParamRate, v[ParamRate])
	f.rate.Complete()
	f.SetParameterValue(ParamDelay, v[ParamDelay])
}

// ParameterValue returns the target value of parameter index in host units.
func (f *Floaty) ParameterValue(index int) float32 {
	switch index {
	case ParamDelay:
		return float32(1000 * float64(f.delay) / f.sampleRate)
	case ParamMix:
		return 100 * f.mix.Target()
	case ParamFeedback:
		return 100 * f.feedback.Target()
	case ParamWarp:
		return f.warp
	case ParamFilter:
		return f.filterKnob
	case ParamRate:
		return f.rate.Target()
	default:
		return 0
	}
}

// SetParameterValue assigns parameter index. Delay changes are snapped to
// the nearest multiple of 5 ms and only restart the tape when the snapped value
// differs. The playback rate is quantised to steps of 0.125, with rates
// slower than 0.5x in either direction replaced by 1.
func (f *Floaty) SetParameterValue(index int, value float32) {
	switch index {
	case ParamDelay:
		target := int(math.Round(float64(value)*f.sampleRate/1000/float64(f.snap))) * f.snap
		target = max(f.snap, min(target, f.left.Capacity()/2))
		if target != f.delay {
			f.delay = target
			f.fixDelay()
		}

	case ParamMix:
		f.mix.Set(0.01 * value)

	case ParamFeedback:
		f.feedback.Set(0.01 * value)

	case ParamWarp:
		f.warp = value
		if value <= 50 {
			f.warpRateHz = 0.1
		} else {
			f.warpRateHz = 3.5
		}
		f.warpRateRad = 2 * math.Pi * f.warpRateHz / f.sampleRate
		f.warpAmount.Set(0.012 * float32(math.Abs(float64(2-0.04*value))))

	case ParamFilter:
		f.filterKnob = value
		f.fixFilter()

	case ParamRate:
		value = float32(int(8*value)) / 8
		if math.Abs(float64(value)) < 0.5 {
			value = 1
		}
		f.rate.Set(value)
	}
}

func (f *Floaty) fixDelay() {
	f.left.SetDelay(f.delay)
	f.right.SetDelay(f.delay + int((1-0.01*channelOffset)*float64(f.delay)))
	f.warpCounter = 0
	f.rate.Complete()
}

func (f *Floaty) fixFilter() {
	knob := float64(f.filterKnob)
	res := 0.25 + 0.5*knob
	cutoff := 45 + 40*math.Cos(knob/12)
	f.filterGain.Set(float32(2.2 - 1.2*math.Cos(knob/12)))
	f.filter.Set(filterCurve.Coefficients(cutoff, res))
}
