package unit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"gitlab.com/gomidi/midi/v2"
)

// Maker and License are shared by every unit in the family.
const (
	Maker   = "remaincalm.org"
	License = "LGPL3"
)

// ErrUnknownParameter is returned when a parameter symbol is not in a unit's
// table.
var ErrUnknownParameter = errors.New("unknown parameter")

// ErrUnknownProgram is returned when a program name or index is not in a
// unit's table.
var ErrUnknownProgram = errors.New("unknown program")

// Info is the static description of a unit.
type Info struct {
	// Label is a short name restricted to [A-Za-z0-9_].
	Label       string
	Description string
	Maker       string
	License     string
	Version     uint32
	UniqueID    uint32
	Inputs      int
	Outputs     int
	// MIDI reports whether the unit consumes MIDI events.
	MIDI bool
}

// UniqueID packs four characters big-endian, so UniqueID('r','c','F','l')
// reads as "rcFl".
func UniqueID(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}

// Version packs a semantic version as major<<16 | minor<<8 | patch.
func Version(major, minor, patch uint8) uint32 {
	return uint32(major)<<16 | uint32(minor)<<8 | uint32(patch)
}

// IDString returns the four-character form of the unique id.
func (i Info) IDString() string {
	return string([]byte{byte(i.UniqueID >> 24), byte(i.UniqueID >> 16), byte(i.UniqueID >> 8), byte(i.UniqueID)})
}

// VersionString returns the version as "major.minor.patch".
func (i Info) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", i.Version>>16&0xff, i.Version>>8&0xff, i.Version&0xff)
}

// Unit is an audio effect with a fixed parameter and program table.
//
// ParameterValue returns 0 and SetParameterValue does nothing for an index
// outside the parameter table; LoadProgram ignores unknown program indices.
type Unit interface {
	Info() Info
	SampleRate() float64
	Parameters() param.Table
	Programs() param.Programs
	LoadProgram(index int)
	ParameterValue(index int) float32
	SetParameterValue(index int, value float32)
	// Run processes frames samples from inputs into outputs. Missing
	// channels are treated as silence on input and skipped on output.
	Run(inputs, outputs [][]float32, frames int)
}

// MIDIEvent is a MIDI message scheduled at a frame offset within a block.
type MIDIEvent struct {
	Frame   int
	Message midi.Message
}

// MIDIUnit is a Unit that also consumes MIDI.
type MIDIUnit interface {
	Unit
	// RunMIDI is Run with events sorted by Frame.
	RunMIDI(inputs, outputs [][]float32, frames int, events []MIDIEvent)
}

// SortEvents orders events by frame, keeping the arrival order of events that
// share a frame.
func SortEvents(events []MIDIEvent) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })
}

// InitParameter returns the descriptor of parameter index.
func InitParameter(u Unit, index int) (param.Descriptor, bool) {
	params := u.Parameters()
	if index < 0 || index >= len(params) {
		return param.Descriptor{}, false
	}

	return params[index], true
}

// SetBySymbol assigns a parameter by its symbol.
func SetBySymbol(u Unit, symbol string, value float32) error {
	i, ok := u.Parameters().Lookup(symbol)
	if !ok {
		return fmt.Errorf("%s: %w: %q", u.Info().Label, ErrUnknownParameter, symbol)
	}

	u.SetParameterValue(i, value)

	return nil
}

// LoadProgramByName loads the program with the given name.
func LoadProgramByName(u Unit, name string) error {
	i, ok := u.Programs().Lookup(name)
	if !ok {
		return fmt.Errorf("%s: %w: %q", u.Info().Label, ErrUnknownProgram, name)
	}

	u.LoadProgram(i)

	return nil
}

// Channel returns channel ch of bufs, or nil when it is absent.
func Channel(bufs [][]float32, ch int) []float32 {
	if ch < 0 || ch >= len(bufs) {
		return nil
	}

	return bufs[ch]
}
