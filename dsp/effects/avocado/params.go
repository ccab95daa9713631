package avocado

import (
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Parameter ids.
const (
	ParamLength = iota
	ParamBuffers
	ParamRepeat
	ParamMix
	NumParams
)

var parameters = param.Table{
	ParamLength:  {Name: "Length", Symbol: "length", Unit: "ms", Min: 10, Default: 100, Max: maxLengthMs, Flags: param.Automatable},
	ParamBuffers: {Name: "Buffers", Symbol: "buffers", Min: 1, Default: 4, Max: MaxSlots, Flags: param.Automatable | param.Integer},
	ParamRepeat:  {Name: "Repeat", Symbol: "repeat", Unit: "%", Min: 0, Default: 20, Max: 100, Flags: param.Automatable},
	ParamMix:     {Name: "Mix", Symbol: "mix", Unit: "%", Min: 0, Default: 50, Max: 100, Flags: param.Automatable},
}

var programs = param.Programs{
	{Name: "Avocado Default", Values: []float32{100, 4, 20, 50}},
}

// Parameters returns the parameter table.
func (a *Avocado) Parameters() param.Table { return parameters }

// Programs returns the program table.
func (a *Avocado) Programs() param.Programs { return programs }

// LoadProgram applies program index.
func (a *Avocado) LoadProgram(index int) {
	if index < 0 || index >= len(programs) {
		return
	}

	for i, v := range programs[index].Values {
		a.SetParameterValue(i, v)
	}
}

// ParameterValue returns the value of parameter index.
func (a *Avocado) ParameterValue(index int) float32 {
	switch index {
	case ParamLength:
		return a.lengthMs
	case ParamBuffers:
		return float32(a.slots)
	case ParamRepeat:
		return a.repeat
	case ParamMix:
		return a.mix
	default:
		return 0
	}
}

// SetParameterValue assigns parameter index. Length and buffer changes take
// effect at the next slot boundary of each cursor.
func (a *Avocado) SetParameterValue(index int, value float32) {
	switch index {
	case ParamLength:
		a.lengthMs = core.Clamp(value, 10, maxLengthMs)
		a.size = a.slotSamples(a.lengthMs)
	case ParamBuffers:
		a.slots = int(core.Clamp(float32(math.Round(float64(value))), 1, MaxSlots))
	case ParamRepeat:
		a.repeat = core.Clamp(value, 0, 100)
	case ParamMix:
		a.mix = core.Clamp(value, 0, 100)
	}
}

func (a *Avocado) slotSamples(ms float32) int {
	n := int(float64(ms) * a.sampleRate / 1000)
	return max(min(n, a.capacity), 2*fadeSamples)
}
