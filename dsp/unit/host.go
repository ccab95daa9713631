package unit

import (
	"math"
	"sync/atomic"
)

// DefaultQueueSize is the edit capacity of a Host created with size <= 0.
const DefaultQueueSize = 64

type editKind uint8

const (
	editParameter editKind = iota
	editProgram
)

type edit struct {
	kind  editKind
	index int
	value float32
}

// Host serialises edits from any goroutine onto the goroutine that calls Run.
//
// SetParameterValue and LoadProgram enqueue without blocking; the edits are
// applied in order at the start of the next Run. ParameterValue reads a
// snapshot refreshed after every block.
type Host struct {
	u      Unit
	edits  chan edit
	values []atomic.Uint32
}

// NewHost wraps u with an edit queue of the given capacity.
func NewHost(u Unit, size int) *Host {
	if size <= 0 {
		size = DefaultQueueSize
	}

	h := &Host{
		u:      u,
		edits:  make(chan edit, size),
		values: make([]atomic.Uint32, len(u.Parameters())),
	}
	h.snapshot()

	return h
}

// Unit returns the wrapped unit. It must only be used from the Run goroutine.
func (h *Host) Unit() Unit { return h.u }

// SetParameterValue queues a parameter edit. It reports false when the queue
// is full and the edit was dropped.
func (h *Host) SetParameterValue(index int, value float32) bool {
	return h.push(edit{kind: editParameter, index: index, value: value})
}

// LoadProgram queues a program change. It reports false when the queue is
// full and the change was dropped.
func (h *Host) LoadProgram(index int) bool {
	return h.push(edit{kind: editProgram, index: index})
}

// ParameterValue returns the value of parameter index as of the last block.
func (h *Host) ParameterValue(index int) float32 {
	if index < 0 || index >= len(h.values) {
		return 0
	}

	return math.Float32frombits(h.values[index].Load())
}

// Pending returns the number of queued edits.
func (h *Host) Pending() int { return len(h.edits) }

// Run applies queued edits and processes one block.
func (h *Host) Run(inputs, outputs [][]float32, frames int) {
	h.apply()
	h.u.Run(inputs, outputs, frames)
	h.snapshot()
}

// RunMIDI applies queued edits and processes one block with events. Events
// are dropped when the unit does not consume MIDI.
func (h *Host) RunMIDI(inputs, outputs [][]float32, frames int, events []MIDIEvent) {
	h.apply()
	if mu, ok := h.u.(MIDIUnit); ok {
		mu.RunMIDI(inputs, outputs, frames, events)
	} else {
		h.u.Run(inputs, outputs, frames)
	}
	h.snapshot()
}

func (h *Host) push(e edit) bool {
	select {
	case h.edits <- e:
		return true
	default:
		return false
	}
}

func (h *Host) apply() {
	for {
		select {
		case e := <-h.edits:
			switch e.kind {
			case editParameter:
				h.u.SetParameterValue(e.index, e.value)
			case editProgram:
				h.u.LoadProgram(e.index)
			}
		default:
			return
		}
	}
}

func (h *Host) snapshot() {
	for i := range h.values {
		h.values[i].Store(math.Float32bits(h.u.ParameterValue(i)))
	}
}
