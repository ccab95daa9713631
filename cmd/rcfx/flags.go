package main

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

type assignment struct {
	symbol string
	value  float32
}

// assignments collects repeated -set symbol=value flags.
type assignments []assignment

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, as := range *a {
		parts[i] = fmt.Sprintf("%s=%g", as.symbol, as.value)
	}

	return strings.Join(parts, " ")
}

func (a *assignments) Set(s string) error {
	symbol, raw, ok := strings.Cut(s, "=")
	symbol = strings.TrimSpace(symbol)

	if !ok || symbol == "" {
		return fmt.Errorf("want symbol=value, got %q", s)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", symbol, err)
	}

	*a = append(*a, assignment{symbol: symbol, value: float32(v)})

	return nil
}

// midiEvents collects repeated -midi flags as absolute-frame events.
type midiEvents []unit.MIDIEvent

func (m *midiEvents) String() string {
	parts := make([]string, len(*m))
	for i, ev := range *m {
		parts[i] = fmt.Sprintf("%d:% X", ev.Frame, []byte(ev.Message))
	}

	return strings.Join(parts, " ")
}

func (m *midiEvents) Set(s string) error {
	ev, err := parseEvent(s)
	if err != nil {
		return err
	}

	*m = append(*m, ev)

	return nil
}

// parseEvent reads frame:b0,b1,... raw bytes, frame:cc:ch,ctrl,val or
// frame:note:ch,key,vel. Bytes accept 0x prefixes.
func parseEvent(s string) (unit.MIDIEvent, error) {
	head, rest, ok := strings.Cut(s, ":")
	if !ok {
		return unit.MIDIEvent{}, fmt.Errorf("midi event %q: want frame:bytes", s)
	}

	frame, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || frame < 0 {
		return unit.MIDIEvent{}, fmt.Errorf("midi event %q: bad frame", s)
	}

	kind := "raw"
	if k, args, found := strings.Cut(rest, ":"); found {
		kind, rest = strings.ToLower(strings.TrimSpace(k)), args
	}

	fields := strings.Split(rest, ",")
	vals := make([]uint8, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 0, 8)
		if err != nil {
			return unit.MIDIEvent{}, fmt.Errorf("midi event %q: byte %d: %w", s, i, err)
		}

		vals[i] = uint8(v)
	}

	var msg midi.Message

	switch kind {
	case "raw":
		msg = midi.Message(vals)
	case "cc", "note":
		if len(vals) != 3 {
			return unit.MIDIEvent{}, fmt.Errorf("midi event %q: %s wants channel,a,b", s, kind)
		}

		if vals[0] > 15 || vals[1] > 127 || vals[2] > 127 {
			return unit.MIDIEvent{}, fmt.Errorf("midi event %q: value out of range", s)
		}

		if kind == "cc" {
			msg = midi.ControlChange(vals[0], vals[1], vals[2])
		} else {
			msg = midi.NoteOn(vals[0], vals[1], vals[2])
		}
	default:
		return unit.MIDIEvent{}, fmt.Errorf("midi event %q: unknown kind %q", s, kind)
	}

	return unit.MIDIEvent{Frame: frame, Message: msg}, nil
}
