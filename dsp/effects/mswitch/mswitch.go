package mswitch

import (
	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
	"gitlab.com/gomidi/midi/v2"
)

// Parameter ids.
const (
	ParamByte1 = iota
	ParamByte2
	NumParams
)

// Output channels.
const (
	Wet = 0
	Dry = 1
)

var parameters = param.Table{
	ParamByte1: {Name: "Byte 1", Symbol: "p1", Min: 0, Default: 0, Max: 255, Flags: param.Automatable | param.Integer},
	ParamByte2: {Name: "Byte 2", Symbol: "p2", Min: 0, Default: 0, Max: 255, Flags: param.Automatable | param.Integer},
}

var programs = param.Programs{
	{Name: "Mswitch Default", Values: []float32{178, 87}},
}

// Mswitch routes its input to one of two outputs.
type Mswitch struct {
	sampleRate float64
	p1, p2     byte
	on         bool
}

// New creates an Mswitch routing to the dry output with its default
// program loaded.
func New(sampleRate float64) (*Mswitch, error) {
	if err := core.ValidateSampleRate("mswitch", sampleRate); err != nil {
		return nil, err
	}

	s := &Mswitch{sampleRate: sampleRate}
	s.LoadProgram(0)

	return s, nil
}

// Info describes the unit.
func (s *Mswitch) Info() unit.Info {
	return unit.Info{
		Label:       "Mswitch",
		Description: "Mswitch switcher.",
		Maker:       unit.Maker,
		License:     unit.License,
		Version:     unit.Version(1, 0, 0),
		UniqueID:    unit.UniqueID('r', 'c', 'M', 's'),
		Inputs:      1,
		Outputs:     2,
		MIDI:        true,
	}
}

// SampleRate returns the sample rate in Hz.
func (s *Mswitch) SampleRate() float64 { return s.sampleRate }

// Parameters returns the parameter table.
func (s *Mswitch) Parameters() param.Table { return parameters }

// Programs returns the program table.
func (s *Mswitch) Programs() param.Programs { return programs }

// LoadProgram applies program index.
func (s *Mswitch) LoadProgram(index int) {
	if index < 0 || index >= len(programs) {
		return
	}

	for i, v := range programs[index].Values {
		s.SetParameterValue(i, v)
	}
}

// ParameterValue returns the value of parameter index.
func (s *Mswitch) ParameterValue(index int) float32 {
	switch index {
	case ParamByte1:
		return float32(s.p1)
	case ParamByte2:
		return float32(s.p2)
	default:
		return 0
	}
}

// SetParameterValue assigns parameter index. Values are truncated to a byte
// and clamped to [0, 255].
func (s *Mswitch) SetParameterValue(index int, value float32) {
	switch index {
	case ParamByte1:
		s.p1 = toByte(value)
	case ParamByte2:
		s.p2 = toByte(value)
	}
}

func toByte(v float32) byte {
	if !(v > 0) {
		return 0
	}

	return byte(min(v, 255))
}

// On reports whether the input is routed to the wet output.
func (s *Mswitch) On() bool { return s.on }

// Reset routes the input back to the dry output.
func (s *Mswitch) Reset() { s.on = false }

// Matches reports whether msg toggles the switch.
func (s *Mswitch) Matches(msg midi.Message) bool {
	return len(msg) == 3 && msg[0] == s.p1 && msg[1] == s.p2
}

// Run routes one block without events.
func (s *Mswitch) Run(inputs, outputs [][]float32, frames int) {
	s.RunMIDI(inputs, outputs, frames, nil)
}

// RunMIDI routes one block, toggling at the frame of every matching event.
// Events must be sorted by frame; frames outside the block are clamped to
// its edges.
func (s *Mswitch) RunMIDI(inputs, outputs [][]float32, frames int, events []unit.MIDIEvent) {
	frames = unit.Frames(outputs, frames)
	wet := unit.Channel(outputs, Wet)
	dry := unit.Channel(outputs, Dry)

	start := 0
	for _, ev := range events {
		if !s.Matches(ev.Message) {
			continue
		}
		at := max(min(ev.Frame, frames), start)
		s.route(inputs, wet, dry, start, at)
		start = at
		s.on = !s.on
	}
	s.route(inputs, wet, dry, start, frames)
}

func (s *Mswitch) route(inputs [][]float32, wet, dry []float32, from, to int) {
	for i := from; i < to; i++ {
		x := unit.Input(inputs, 0, i)
		if s.on {
			put(wet, i, x)
			put(dry, i, 0)
		} else {
			put(wet, i, 0)
			put(dry, i, x)
		}
	}
}

func put(buf []float32, i int, v float32) {
	if buf != nil {
		buf[i] = v
	}
}
