package avocado

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

const (
	// MaxSlots is the number of loop slots allocated per instance.
	MaxSlots = 8

	maxLengthMs = 1000
	fadeSamples = 128

	wearChance = 0.05
	wearGain   = 0.85
)

// Gate envelope constants.
const (
	gateThreshold = 0.02
	gateRelative  = 0.3
	gateRise      = 0.05
	gateFall      = 0.002
	peakDecay     = 0.99998
)

// Avocado is the gated glitch looper. It is mono.
type Avocado struct {
	sampleRate float64
	rng        *rand.Rand

	buf      [MaxSlots][]float32
	capacity int

	lengthMs float32
	size     int
	slots    int
	repeat   float32
	mix      float32

	recSlot, recCursor   int
	playSlot, playCursor int

	env  float32
	peak float32
	gain float32
}

// New creates an Avocado running at sampleRate. All slot memory is
// allocated here.
func New(sampleRate float64, opts ...Option) (*Avocado, error) {
	if err := core.ValidateSampleRate("avocado", sampleRate); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	a := &Avocado{
		sampleRate: sampleRate,
		rng:        cfg.rng,
		capacity:   max(int(math.Ceil(maxLengthMs*sampleRate/1000)), 2*fadeSamples),
		gain:       1,
	}
	for i := range a.buf {
		a.buf[i] = make([]float32, a.capacity)
	}
	a.LoadProgram(cfg.program)

	return a, nil
}

// Info describes the unit.
func (a *Avocado) Info() unit.Info {
	return unit.Info{
		Label:       "Avocado",
		Description: "Avocado gated glitch looper.",
		Maker:       unit.Maker,
		License:     unit.License,
		Version:     unit.Version(1, 0, 0),
		UniqueID:    unit.UniqueID('r', 'c', 'A', 'v'),
		Inputs:      1,
		Outputs:     1,
	}
}

// SampleRate returns the sample rate in Hz.
func (a *Avocado) SampleRate() float64 { return a.sampleRate }

// SlotSamples returns the current slot length in samples.
func (a *Avocado) SlotSamples() int { return a.size }

// PlaySlot returns the slot the player is looping.
func (a *Avocado) PlaySlot() int { return a.playSlot }

// Gain returns the dry share of the output in [0, 1].
func (a *Avocado) Gain() float32 { return a.gain }

// Reset silences every slot, rewinds both cursors and opens the gate.
func (a *Avocado) Reset() {
	for i := range a.buf {
		clear(a.buf[i])
	}
	a.recSlot, a.recCursor = 0, 0
	a.playSlot, a.playCursor = 0, 0
	a.env, a.peak, a.gain = 0, 0, 1
}

// Run processes one block on the first channel.
func (a *Avocado) Run(inputs, outputs [][]float32, frames int) {
	frames = unit.Frames(outputs, frames)
	if len(outputs) == 0 || outputs[0] == nil {
		return
	}

	out := outputs[0]
	for i := 0; i < frames; i++ {
		out[i] = a.ProcessSample(unit.Input(inputs, 0, i))
	}
}

// ProcessInPlace processes buf in place.
func (a *Avocado) ProcessInPlace(buf []float32) {
	for i, x := range buf {
		buf[i] = a.ProcessSample(x)
	}
}

// ProcessSample processes one sample. The player reads before the recorder
// writes, so a single slot replays the input one slot length late.
func (a *Avocado) ProcessSample(in float32) float32 {
	loop := a.play()
	a.record(in)
	g := a.gate(in)

	return g*in + (1-g)*loop
}

func (a *Avocado) play() float32 {
	if a.playCursor >= a.size {
		a.playCursor = 0
		if a.rng.Float32()*100 >= a.repeat {
			a.playSlot = a.rng.IntN(a.slots)
		}
		if a.rng.Float32() < wearChance {
			s := a.buf[a.playSlot][:a.size]
			for i := range s {
				s[i] *= wearGain
			}
		}
	}

	y := fade(a.playCursor, a.size) * a.buf[a.playSlot][a.playCursor]
	a.playCursor++

	return y
}

func (a *Avocado) record(in float32) {
	if a.recCursor >= a.size {
		a.recCursor = 0
		a.recSlot = a.rng.IntN(a.slots)
	}

	a.buf[a.recSlot][a.recCursor] = in
	a.recCursor++
}

// gate tracks the input envelope and returns the dry gain.
func (a *Avocado) gate(in float32) float32 {
	x := float32(math.Abs(float64(in)))
	if x > a.env {
		a.env = 0.9*a.env + 0.1*x
	} else {
		a.env = 0.98*a.env + 0.02*x
	}

	if a.env > a.peak {
		a.peak = 0.1*a.peak + 0.9*a.env
	} else {
		a.peak *= peakDecay
	}

	target := 1 - a.mix/100
	if a.env > max(gateThreshold, gateRelative*a.peak) {
		target = 1
	}

	rate := float32(gateFall)
	if target > a.gain {
		rate = gateRise
	}
	a.gain += (target - a.gain) * rate

	return a.gain
}

// fade returns the edge envelope at cursor for a slot of size samples.
func fade(cursor, size int) float32 {
	switch {
	case cursor < fadeSamples:
		return float32(cursor) / fadeSamples
	case cursor > size-fadeSamples:
		return float32(size-cursor-1) / fadeSamples
	default:
		return 1
	}
}
