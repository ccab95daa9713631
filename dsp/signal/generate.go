// Package signal generates deterministic float32 test signals for driving
// units offline.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
)

// Kind names a generated signal.
type Kind string

// Signal kinds.
const (
	KindSine    Kind = "sine"
	KindNoise   Kind = "noise"
	KindImpulse Kind = "impulse"
	KindRamp    Kind = "ramp"
	KindDC      Kind = "dc"
)

// ErrUnknownKind is returned by ParseKind and Generate for unknown names.
var ErrUnknownKind = errors.New("unknown signal kind")

// Kinds lists every signal kind in display order.
func Kinds() []Kind {
	return []Kind{KindSine, KindNoise, KindImpulse, KindRamp, KindDC}
}

// ParseKind resolves a case-insensitive signal name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() uint64 { return g.seed }

// SetSeed changes the noise seed for later calls.
func (g *Generator) SetSeed(seed uint64) { g.seed = seed }

// Samples converts a duration in seconds to a sample count.
func (g *Generator) Samples(seconds float64) int {
	return int(math.Round(seconds * g.cfg.SampleRate))
}

// Generate produces samples of kind at amplitude. freqHz is used by sine
// only; impulses sit at sample 0.
func (g *Generator) Generate(kind Kind, freqHz, amplitude float64, samples int) ([]float32, error) {
	switch kind {
	case KindSine:
		return g.Sine(freqHz, amplitude, samples)
	case KindNoise:
		return g.WhiteNoise(amplitude, samples)
	case KindImpulse:
		return g.Impulse(amplitude, samples, 0)
	case KindRamp:
		return g.Ramp(amplitude, samples)
	case KindDC:
		return g.DC(amplitude, samples)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if freqHz < 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %f): %f", g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float32, samples)
	rng := rand.New(rand.NewPCG(g.seed, 0))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out, nil
}

// Impulse generates a single sample of amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse position must be in [0, %d): %d", samples, pos)
	}
	out := make([]float32, samples)
	out[pos] = float32(amplitude)
	return out, nil
}

// Ramp generates a line rising from 0 towards amplitude.
func (g *Generator) Ramp(amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ramp samples must be > 0: %d", samples)
	}
	out := make([]float32, samples)
	for i := range out {
		out[i] = float32(amplitude * float64(i) / float64(samples))
	}
	return out, nil
}

// DC generates a constant.
func (g *Generator) DC(amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("dc samples must be > 0: %d", samples)
	}
	out := make([]float32, samples)
	for i := range out {
		out[i] = float32(amplitude)
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float32, targetPeak float64) ([]float32, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(float64(v)))
	}

	out := make([]float32, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = float32(float64(v) * scale)
	}
	return out, nil
}
