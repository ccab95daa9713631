package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/cwbudde/algo-remaincalm/dsp/effectchain"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

// processor is the block interface shared by single units and chains.
type processor interface {
	name() string
	outputs() int
	midi() bool
	process(in []float32, out [][]float32, frames int, events []unit.MIDIEvent)
}

// unitProcessor drives one unit through a Host, so the live editor can
// queue edits from its own goroutine.
type unitProcessor struct {
	host *unit.Host
	in   [][]float32
}

func (p *unitProcessor) name() string { return p.host.Unit().Info().Label }
func (p *unitProcessor) outputs() int { return max(p.host.Unit().Info().Outputs, 1) }
func (p *unitProcessor) midi() bool   { return p.host.Unit().Info().MIDI }

func (p *unitProcessor) process(in []float32, out [][]float32, frames int, events []unit.MIDIEvent) {
	// Every input channel reads the mono source.
	for i := range p.in {
		p.in[i] = in
	}

	p.host.RunMIDI(p.in, out, frames, events)
}

type chainProcessor struct {
	chain *effectchain.Chain
}

func (p *chainProcessor) name() string { return "chain" }
func (p *chainProcessor) outputs() int { return 1 }
func (p *chainProcessor) midi() bool   { return false }

func (p *chainProcessor) process(in []float32, out [][]float32, frames int, _ []unit.MIDIEvent) {
	copy(out[0][:frames], in[:frames])
	p.chain.Process(out[0][:frames])
}

func newProcessor(opts options, sampleRate float64) (processor, error) {
	reg := effectchain.DefaultRegistry(effectchain.WithSeed(opts.seed))

	if opts.chain != "" {
		doc, err := os.ReadFile(opts.chain)
		if err != nil {
			return nil, err
		}

		c := effectchain.New(effectchain.Context{SampleRate: sampleRate}, reg)
		if err := c.LoadGraph(string(doc)); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.chain, err)
		}

		if !c.HasGraph() {
			return nil, fmt.Errorf("%s: chain needs %s and %s nodes", opts.chain, effectchain.InputNodeID, effectchain.OutputNodeID)
		}

		return &chainProcessor{chain: c}, nil
	}

	u, err := reg.New(effectchain.Context{SampleRate: sampleRate}, opts.unitType)
	if err != nil {
		return nil, err
	}

	if err := configure(u, opts.program, opts.sets); err != nil {
		return nil, err
	}

	return &unitProcessor{
		host: unit.NewHost(u, 0),
		in:   make([][]float32, max(u.Info().Inputs, 1)),
	}, nil
}

// configure loads program, by name or index, and then applies sets in order.
func configure(u unit.Unit, program string, sets assignments) error {
	if program != "" {
		if i, err := strconv.Atoi(program); err == nil {
			if i < 0 || i >= len(u.Programs()) {
				return fmt.Errorf("%s: %w: index %d", u.Info().Label, unit.ErrUnknownProgram, i)
			}

			u.LoadProgram(i)
		} else if err := unit.LoadProgramByName(u, program); err != nil {
			return err
		}
	}

	for _, s := range sets {
		if err := unit.SetBySymbol(u, s.symbol, s.value); err != nil {
			return err
		}
	}

	return nil
}

// stream feeds a source through a processor block by block, dispatching
// events at their frame offsets. With loop set it wraps at the end of the
// source and replays the events.
type stream struct {
	proc   processor
	src    []float32
	loop   bool
	events []unit.MIDIEvent
	pos    int
	next   int
	out    [][]float32
	batch  []unit.MIDIEvent
}

func newStream(proc processor, src []float32, events []unit.MIDIEvent, block int, loop bool) *stream {
	sorted := slices.Clone(events)
	unit.SortEvents(sorted)

	out := make([][]float32, proc.outputs())
	for i := range out {
		out[i] = make([]float32, block)
	}

	return &stream{proc: proc, src: src, loop: loop, events: sorted, out: out}
}

// step processes up to len(s.out[0]) frames and returns how many it ran. It
// returns 0 once a non-looping source is exhausted.
func (s *stream) step() int {
	if s.pos >= len(s.src) {
		if !s.loop || len(s.src) == 0 {
			return 0
		}

		s.pos, s.next = 0, 0
	}

	n := min(len(s.out[0]), len(s.src)-s.pos)
	end := s.pos + n

	s.batch = s.batch[:0]
	for s.next < len(s.events) && s.events[s.next].Frame < end {
		ev := s.events[s.next]
		ev.Frame = max(ev.Frame-s.pos, 0)
		s.batch = append(s.batch, ev)
		s.next++
	}

	s.proc.process(s.src[s.pos:end], s.out, n, s.batch)
	s.pos = end

	return n
}

// render runs the whole source offline and returns one buffer per output.
func render(proc processor, src []float32, block int, events []unit.MIDIEvent) [][]float32 {
	s := newStream(proc, src, events, block, false)

	out := make([][]float32, proc.outputs())
	for i := range out {
		out[i] = make([]float32, 0, len(src))
	}

	for n := s.step(); n > 0; n = s.step() {
		for ch := range out {
			out[ch] = append(out[ch], s.out[ch][:n]...)
		}
	}

	return out
}
