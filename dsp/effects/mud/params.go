package mud

import (
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Parameter ids.
const (
	ParamMix = iota
	ParamFilter
	ParamLFO
	NumParams
)

var parameters = param.Table{
	ParamMix:    {Name: "Mix", Symbol: "mix", Unit: "%", Min: 0, Default: 40, Max: 100, Flags: param.Automatable},
	ParamFilter: {Name: "Filter", Symbol: "filter", Min: 0, Default: 45, Max: 100, Flags: param.Automatable},
	ParamLFO:    {Name: "LFO", Symbol: "lfo", Min: -100, Default: 0, Max: 100, Flags: param.Automatable},
}

var programs = param.Programs{
	{Name: "beef", Values: []float32{50, 50, 0}},
	{Name: "sweep", Values: []float32{90, 80, 20}},
	{Name: "sweep 2", Values: []float32{70, 90, -13}},
	{Name: "vibe", Values: []float32{65, 80, 85}},
	{Name: "megavibe", Values: []float32{100, 15, -40}},
	{Name: "honk", Values: []float32{100, 75, 0}},
}

const lfoDeadZone = 10

// Parameters returns the parameter table.
func (m *Mud) Parameters() param.Table { return parameters }

// Programs returns the program table.
func (m *Mud) Programs() param.Programs { return programs }

// LoadProgram applies program index. The swept filter position jumps to the
// program's filter value and all smoothed values settle immediately.
func (m *Mud) LoadProgram(index int) {
	if index < 0 || index >= len(programs) {
		return
	}

	v := programs[index].Values
	m.SetParameterValue(ParamMix, v[ParamMix])
	m.mix.Complete()
	m.SetParameterValue(ParamFilter, v[ParamFilter])
	m.SetParameterValue(ParamLFO, v[ParamLFO])

	m.position = float64(m.filterKnob)
	m.filter.Set(filterCurve.Coefficients(FilterSettings(m.position)))
	m.filter.Complete()
}

// ParameterValue returns the target value of parameter index.
func (m *Mud) ParameterValue(index int) float32 {
	switch index {
	case ParamMix:
		return m.mix.Target() * 100
	case ParamFilter:
		return m.filterKnob
	case ParamLFO:
		return m.lfo
	default:
		return 0
	}
}

// SetParameterValue assigns parameter index. Filter and LFO edits take
// effect at the next block.
func (m *Mud) SetParameterValue(index int, value float32) {
	switch index {
	case ParamMix:
		m.mix.Set(core.Clamp(value, 0, 100) * 0.01)
	case ParamFilter:
		m.filterKnob = core.Clamp(value, 0, 100)
	case ParamLFO:
		m.lfo = core.Clamp(value, -100, 100)
	}
}

// LFOShape returns the sweep depth in knob units and the phase increment
// per block for an LFO setting. Settings within the dead zone return zero
// for both.
func LFOShape(lfo float32) (depth, rate float64) {
	switch {
	case lfo < -lfoDeadZone:
		depth = 20
	case lfo > lfoDeadZone:
		depth = 10
	}

	rate = math.Max(math.Abs(float64(lfo))-lfoDeadZone, 0) * 0.0002
	if lfo < 0 {
		rate *= 3
	}

	return depth, rate
}

// FilterSettings maps a filter position in [0, 100] onto the cutoff and
// resonance meta values fed to the filter curve.
func FilterSettings(position float64) (cutoff, res float64) {
	fold := math.Abs(math.Abs(160-3.2*position) - 80)
	return 5 + fold, 5 + math.Trunc(position)/2
}

// advanceLFO moves the swept filter position one block forward.
func (m *Mud) advanceLFO() {
	depth, rate := LFOShape(m.lfo)
	m.counter++

	f := float64(m.filterKnob) + depth*math.Sin(rate*float64(m.counter))
	f = core.Clamp(f, 0, 100)
	m.position = 0.1*f + 0.9*m.position

	m.filter.Set(filterCurve.Coefficients(FilterSettings(m.position)))
}
