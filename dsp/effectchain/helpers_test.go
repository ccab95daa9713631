package effectchain

import (
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

// gainUnit multiplies its input by the "gain" parameter. The second output
// carries the input negated.
type gainUnit struct {
	sampleRate float64
	gain       float32
	runs       int
}

var gainParams = param.Table{
	{Name: "Gain", Symbol: "gain", Min: -4, Default: 1, Max: 4},
}

var gainPrograms = param.Programs{
	{Name: "unity", Values: []float32{1}},
	{Name: "double", Values: []float32{2}},
}

func (g *gainUnit) Info() unit.Info {
	return unit.Info{Label: "Gain", Inputs: 1, Outputs: 2}
}
func (g *gainUnit) SampleRate() float64              { return g.sampleRate }
func (g *gainUnit) Parameters() param.Table          { return gainParams }
func (g *gainUnit) Programs() param.Programs         { return gainPrograms }
func (g *gainUnit) ParameterValue(index int) float32 { return g.gain }

func (g *gainUnit) LoadProgram(index int) {
	if index >= 0 && index < len(gainPrograms) {
		g.gain = gainPrograms[index].Values[0]
	}
}

func (g *gainUnit) SetParameterValue(index int, value float32) {
	if index == 0 {
		g.gain = value
	}
}

func (g *gainUnit) Run(inputs, outputs [][]float32, frames int) {
	g.runs++
	for i := 0; i < frames; i++ {
		x := unit.Input(inputs, 0, i)
		outputs[0][i] = g.gain * x
		if len(outputs) > 1 {
			outputs[1][i] = -x
		}
	}
}

// offsetUnit adds the "value" parameter to every sample.
type offsetUnit struct {
	value float32
}

var offsetParams = param.Table{
	{Name: "Value", Symbol: "value", Min: -10, Default: 0, Max: 10},
}

func (o *offsetUnit) Info() unit.Info                  { return unit.Info{Label: "Offset", Inputs: 1, Outputs: 1} }
func (o *offsetUnit) SampleRate() float64              { return 48000 }
func (o *offsetUnit) Parameters() param.Table          { return offsetParams }
func (o *offsetUnit) Programs() param.Programs         { return nil }
func (o *offsetUnit) LoadProgram(int)                  {}
func (o *offsetUnit) ParameterValue(index int) float32 { return o.value }

func (o *offsetUnit) SetParameterValue(index int, value float32) {
	if index == 0 {
		o.value = value
	}
}

func (o *offsetUnit) Run(inputs, outputs [][]float32, frames int) {
	for i := 0; i < frames; i++ {
		outputs[0][i] = unit.Input(inputs, 0, i) + o.value
	}
}

// testRegistry creates a registry with the gain and offset test units.
func testRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("gain", func(ctx Context) (unit.Unit, error) {
		return &gainUnit{sampleRate: ctx.SampleRate, gain: 1}, nil
	})
	r.MustRegister("add", func(_ Context) (unit.Unit, error) {
		return &offsetUnit{}, nil
	})

	return r
}
