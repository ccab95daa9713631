package sub

import (
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Parameter ids.
const (
	ParamDry = iota
	ParamWet
	ParamFilter
	NumParams
)

var parameters = param.Table{
	ParamDry:    {Name: "Dry Out", Symbol: "dry", Unit: "dB", Min: -96, Default: -96, Max: 6, Flags: param.Automatable},
	ParamWet:    {Name: "Wet Out", Symbol: "wet", Unit: "dB", Min: -24, Default: -3, Max: 6, Flags: param.Automatable},
	ParamFilter: {Name: "Filter", Symbol: "filter", Min: 0, Default: 45, Max: 100, Flags: param.Automatable},
}

var programs = param.Programs{
	{Name: "Sub Default", Values: []float32{-96, -3, 45}},
}

// Parameters returns the parameter table.
func (s *Sub) Parameters() param.Table { return parameters }

// Programs returns the program table.
func (s *Sub) Programs() param.Programs { return programs }

// LoadProgram applies program index without gliding.
func (s *Sub) LoadProgram(index int) {
	if index < 0 || index >= len(programs) {
		return
	}

	v := programs[index].Values
	for i := range v {
		s.SetParameterValue(i, v[i])
	}

	s.dryDB.Complete()
	s.wetDB.Complete()
	s.filter.Complete()
}

// ParameterValue returns the target value of parameter index.
func (s *Sub) ParameterValue(index int) float32 {
	switch index {
	case ParamDry:
		return s.dryDB.Target()
	case ParamWet:
		return s.wetDB.Target()
	case ParamFilter:
		return s.filterKnob
	default:
		return 0
	}
}

// SetParameterValue assigns parameter index.
func (s *Sub) SetParameterValue(index int, value float32) {
	switch index {
	case ParamDry:
		s.dryDB.Set(value)
	case ParamWet:
		s.wetDB.Set(value)
	case ParamFilter:
		s.filterKnob = value
		s.filter.Set(filterCurve.Coefficients(FilterSettings(value)))
	}
}

// FilterSettings maps the Filter knob onto cutoff and resonance meta values.
// Resonance rises in steps of one per 20 knob units.
func FilterSettings(knob float32) (cutoff, res float64) {
	f := float64(knob)
	fold := math.Abs(math.Abs(160-3.2*f) - 80)
	return 10 + fold, float64(10 + int(f)/20)
}
