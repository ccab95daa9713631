package mswitch

import (
	"testing"

	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
	"github.com/cwbudde/algo-remaincalm/internal/testutil"
	"gitlab.com/gomidi/midi/v2"
)

var _ unit.MIDIUnit = (*Mswitch)(nil)

func newSwitch(t *testing.T) *Mswitch {
	t.Helper()

	s, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return s
}

func route(s *Mswitch, in []float32, events ...unit.MIDIEvent) (wet, dry []float32) {
	wet = make([]float32, len(in))
	dry = make([]float32, len(in))
	s.RunMIDI([][]float32{in}, [][]float32{wet, dry}, len(in), events)
	return wet, dry
}

func requireRange(t *testing.T, name string, data []float32, from, to int, want float32) {
	t.Helper()

	for i := from; i < to; i++ {
		if data[i] != want {
			t.Fatalf("%s[%d] = %v, want %v", name, i, data[i], want)
		}
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestInfoAndTables(t *testing.T) {
	s := newSwitch(t)

	info := s.Info()
	if info.Label != "Mswitch" || info.IDString() != "rcMs" || !info.MIDI || info.Outputs != 2 {
		t.Fatalf("Info() = %+v", info)
	}
	if err := s.Programs().Validate(s.Parameters()); err != nil {
		t.Fatalf("Programs().Validate() error = %v", err)
	}
	if s.ParameterValue(ParamByte1) != 178 || s.ParameterValue(ParamByte2) != 87 {
		t.Fatalf("default bytes = %v %v, want 178 87", s.ParameterValue(ParamByte1), s.ParameterValue(ParamByte2))
	}
	if d := s.Parameters()[ParamByte1]; d.Symbol != "p1" || !d.Has(param.Integer) {
		t.Fatalf("byte 1 descriptor = %+v, want integer p1", d)
	}
}

func TestDefaultMatchesControlChange(t *testing.T) {
	s := newSwitch(t)

	if !s.Matches(midi.ControlChange(2, 87, 0)) {
		t.Fatal("control change 87 on channel 3 should match")
	}
	if !s.Matches(midi.ControlChange(2, 87, 127)) {
		t.Fatal("the third byte should be ignored")
	}
	if s.Matches(midi.ControlChange(0, 87, 0)) {
		t.Fatal("control change on channel 1 should not match")
	}
	if s.Matches(midi.NoteOn(2, 87, 100)) {
		t.Fatal("note on should not match")
	}
	if s.Matches(midi.Message{178, 87}) {
		t.Fatal("two-byte message should not match")
	}
}

func TestToggleIsFrameAccurate(t *testing.T) {
	s := newSwitch(t)
	in := testutil.DC(0.5, 4000)

	wet, dry := route(s, in,
		unit.MIDIEvent{Frame: 1000, Message: midi.ControlChange(2, 87, 0)},
		unit.MIDIEvent{Frame: 3000, Message: midi.ControlChange(2, 87, 0)},
	)

	requireRange(t, "wet", wet, 0, 1000, 0)
	requireRange(t, "dry", dry, 0, 1000, 0.5)
	requireRange(t, "wet", wet, 1000, 3000, 0.5)
	requireRange(t, "dry", dry, 1000, 3000, 0)
	requireRange(t, "wet", wet, 3000, 4000, 0)
	requireRange(t, "dry", dry, 3000, 4000, 0.5)

	if s.On() {
		t.Fatal("On() = true after two toggles")
	}
}

func TestStatePersistsAcrossBlocks(t *testing.T) {
	s := newSwitch(t)
	in := testutil.DC(0.25, 256)

	route(s, in, unit.MIDIEvent{Frame: 0, Message: midi.ControlChange(2, 87, 64)})
	if !s.On() {
		t.Fatal("On() = false after one toggle")
	}

	wet := make([]float32, len(in))
	dry := make([]float32, len(in))
	s.Run([][]float32{in}, [][]float32{wet, dry}, len(in))
	requireRange(t, "wet", wet, 0, len(in), 0.25)
	requireRange(t, "dry", dry, 0, len(in), 0)

	s.Reset()
	if s.On() {
		t.Fatal("On() = true after Reset")
	}
}

func TestIgnoresOtherMessagesAndClampsFrames(t *testing.T) {
	s := newSwitch(t)
	in := testutil.DC(1, 128)

	wet, dry := route(s, in,
		unit.MIDIEvent{Frame: -5, Message: midi.NoteOn(0, 60, 100)},
		unit.MIDIEvent{Frame: 500, Message: midi.ControlChange(2, 87, 0)},
	)

	requireRange(t, "wet", wet, 0, len(in), 0)
	requireRange(t, "dry", dry, 0, len(in), 1)
	if !s.On() {
		t.Fatal("an event past the block end should still toggle")
	}
}

func TestCustomBytes(t *testing.T) {
	s := newSwitch(t)
	s.SetParameterValue(ParamByte1, 144)
	s.SetParameterValue(ParamByte2, 60)

	_, dry := route(s, testutil.DC(1, 64), unit.MIDIEvent{Frame: 32, Message: midi.NoteOn(0, 60, 1)})
	requireRange(t, "dry", dry, 0, 32, 1)
	requireRange(t, "dry", dry, 32, 64, 0)
}

func TestFractionalBytesTruncate(t *testing.T) {
	s := newSwitch(t)

	tests := []struct{ set, want float32 }{
		{178.4, 178},
		{87.9, 87},
		{-5, 0},
		{300, 255},
	}

	for _, tt := range tests {
		s.SetParameterValue(ParamByte1, tt.set)
		if got := s.ParameterValue(ParamByte1); got != tt.want {
			t.Fatalf("SetParameterValue(%v): ParameterValue() = %v, want %v", tt.set, got, tt.want)
		}
	}

	s.SetParameterValue(ParamByte1, 178.4)
	s.SetParameterValue(ParamByte2, 87.9)

	if !s.Matches(midi.Message{178, 87, 0}) {
		t.Fatal("178.4/87.9 should match status 178, data 87")
	}

	wet, _ := route(s, testutil.DC(1, 16), unit.MIDIEvent{Frame: 4, Message: midi.ControlChange(2, 87, 0)})
	requireRange(t, "wet", wet, 4, 16, 1)
}

func TestMissingDryOutput(t *testing.T) {
	s := newSwitch(t)
	wet := make([]float32, 16)

	s.RunMIDI([][]float32{testutil.DC(1, 16)}, [][]float32{wet}, 16,
		[]unit.MIDIEvent{{Frame: 8, Message: midi.ControlChange(2, 87, 0)}})

	requireRange(t, "wet", wet, 0, 8, 0)
	requireRange(t, "wet", wet, 8, 16, 1)
}

func TestHostForwardsEvents(t *testing.T) {
	h := unit.NewHost(newSwitch(t), 0)
	in := testutil.DC(1, 32)
	wet := make([]float32, 32)
	dry := make([]float32, 32)

	h.RunMIDI([][]float32{in}, [][]float32{wet, dry}, 32,
		[]unit.MIDIEvent{{Frame: 16, Message: midi.ControlChange(2, 87, 0)}})

	requireRange(t, "wet", wet, 16, 32, 1)
	requireRange(t, "dry", dry, 16, 32, 0)
}
