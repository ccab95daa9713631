// Command rcfx renders, analyses and plays the remaincalm units.
//
// Usage:
//
//	rcfx [flags]
//
// The source is either a generated test signal or the first channel of a WAV
// file. It runs through one unit (-unit) or an effect chain (-chain) and is
// written to a WAV file, reported on, or played live.
//
// Examples:
//
//	rcfx -list
//	rcfx -unit paranoia -params
//	rcfx -unit floaty -program Octave -set mix=50 -signal impulse -duration 2 -out floaty.wav
//	rcfx -unit mud -in guitar.wav -out mud.wav -analyze
//	rcfx -unit mswitch -signal dc -midi 1000:cc:2,87,127 -analyze
//	rcfx -chain chain.json -in drums.wav -out chain.wav
//	rcfx -unit avocado -in drums.wav -play -tui
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/dither"
	"github.com/cwbudde/algo-remaincalm/dsp/effectchain"
	"github.com/cwbudde/algo-remaincalm/dsp/signal"
)

type options struct {
	unitType string
	program  string
	sets     assignments
	events   midiEvents

	signal     string
	freq       float64
	amp        float64
	duration   float64
	sampleRate float64
	block      int
	seed       uint64

	in    string
	out   string
	chain string
	bits  int
	dith  string

	analyze bool
	play    bool
	tui     bool
	list    bool
	params  bool
}

func main() {
	var opts options

	flag.StringVar(&opts.unitType, "unit", "floaty", "unit to run ("+strings.Join(effectchain.DefaultRegistry().Types(), ", ")+")")
	flag.StringVar(&opts.program, "program", "", "program name or index to load before -set")
	flag.Var(&opts.sets, "set", "parameter assignment symbol=value (repeatable)")
	flag.Var(&opts.events, "midi", "MIDI event frame:b0,b1,b2, frame:cc:ch,ctrl,val or frame:note:ch,key,vel (repeatable)")
	flag.StringVar(&opts.signal, "signal", "impulse", "generated source ("+kindList()+")")
	flag.Float64Var(&opts.freq, "freq", 440, "sine frequency in Hz")
	flag.Float64Var(&opts.amp, "amp", 0.5, "source amplitude")
	flag.Float64Var(&opts.duration, "duration", 2, "generated source length in seconds")
	flag.Float64Var(&opts.sampleRate, "sr", 48000, "sample rate in Hz for generated sources")
	flag.IntVar(&opts.block, "block", 256, "processing block size in frames")
	flag.Uint64Var(&opts.seed, "seed", 1, "seed for noise sources and avocado")
	flag.StringVar(&opts.in, "in", "", "WAV file to process instead of a generated signal")
	flag.StringVar(&opts.out, "out", "", "WAV file to write")
	flag.StringVar(&opts.chain, "chain", "", "JSON effect chain to run instead of -unit")
	flag.IntVar(&opts.bits, "bits", 16, "output WAV bit depth")
	flag.StringVar(&opts.dith, "dither", "triangular", "output dither (none, rectangular, triangular)")
	flag.BoolVar(&opts.analyze, "analyze", false, "print level and spectrum reports of input and output")
	flag.BoolVar(&opts.play, "play", false, "play the processed source through the default audio device")
	flag.BoolVar(&opts.tui, "tui", false, "edit parameters live while playing (implies -play)")
	flag.BoolVar(&opts.list, "list", false, "list the available units")
	flag.BoolVar(&opts.params, "params", false, "print the parameter and program tables of -unit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rcfx [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders, analyses and plays the remaincalm units.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rcfx -list\n")
		fmt.Fprintf(os.Stderr, "  rcfx -unit paranoia -params\n")
		fmt.Fprintf(os.Stderr, "  rcfx -unit floaty -program Octave -signal impulse -out floaty.wav\n")
		fmt.Fprintf(os.Stderr, "  rcfx -unit mswitch -signal dc -midi 1000:cc:2,87,127 -analyze\n")
		fmt.Fprintf(os.Stderr, "  rcfx -unit avocado -in drums.wav -play -tui\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		die("unexpected arguments: %s", strings.Join(flag.Args(), " "))
	}

	if err := run(opts); err != nil {
		die("%v", err)
	}
}

func run(opts options) error {
	if opts.block <= 0 {
		return fmt.Errorf("block size must be > 0: %d", opts.block)
	}

	if opts.list {
		return printUnits(os.Stdout, opts.sampleRate)
	}

	if opts.params {
		return printParams(os.Stdout, opts.unitType, opts.sampleRate)
	}

	src, sr, err := loadSource(opts)
	if err != nil {
		return err
	}

	proc, err := newProcessor(opts, sr)
	if err != nil {
		return err
	}

	if len(opts.events) > 0 && !proc.midi() {
		fmt.Fprintf(os.Stderr, "warning: %s does not consume MIDI; -midi ignored\n", proc.name())
	}

	if opts.play || opts.tui {
		return play(proc, src, sr, opts)
	}

	out := render(proc, src, opts.block, opts.events)

	if opts.out != "" {
		kind, err := dither.ParseKind(opts.dith)
		if err != nil {
			return err
		}

		if err := writeWAV(opts.out, out, sr, opts.bits, kind, opts.seed); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "wrote %s (%d frames, %d channels)\n", opts.out, len(src), len(out))
	}

	if opts.analyze {
		return report(os.Stdout, src, out, sr)
	}

	if opts.out == "" {
		return errors.New("nothing to do: use -out, -analyze or -play")
	}

	return nil
}

func loadSource(opts options) ([]float32, float64, error) {
	if opts.in != "" {
		return readWAV(opts.in)
	}

	kind, err := signal.ParseKind(opts.signal)
	if err != nil {
		return nil, 0, err
	}

	if opts.duration <= 0 {
		return nil, 0, fmt.Errorf("duration must be > 0: %g", opts.duration)
	}

	if err := core.ValidateSampleRate("rcfx", opts.sampleRate); err != nil {
		return nil, 0, err
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(opts.sampleRate)},
		signal.WithSeed(opts.seed),
	)

	src, err := gen.Generate(kind, opts.freq, opts.amp, gen.Samples(opts.duration))
	if err != nil {
		return nil, 0, err
	}

	return src, opts.sampleRate, nil
}

func kindList() string {
	kinds := signal.Kinds()
	names := make([]string, len(kinds))

	for i, k := range kinds {
		names[i] = string(k)
	}

	return strings.Join(names, ", ")
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "rcfx: "+format+"\n", args...)
	os.Exit(1)
}
