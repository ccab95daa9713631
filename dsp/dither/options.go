package dither

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	minBits = 8
	maxBits = 32
)

type config struct {
	bits   int
	kind   Kind
	shaped bool
	rng    *rand.Rand
}

func defaultConfig() config {
	return config{bits: 16, kind: Triangular}
}

// Option mutates quantizer construction settings.
type Option func(*config) error

// WithBits sets the output word length. Default 16.
func WithBits(bits int) Option {
	return func(cfg *config) error {
		if bits < minBits || bits > maxBits {
			return fmt.Errorf("dither: bits must be in [%d, %d]: %d", minBits, maxBits, bits)
		}

		cfg.bits = bits

		return nil
	}
}

// WithKind selects the dither distribution. Default Triangular.
func WithKind(k Kind) Option {
	return func(cfg *config) error {
		if !k.Valid() {
			return fmt.Errorf("dither: invalid kind: %d", int(k))
		}

		cfg.kind = k

		return nil
	}
}

// WithNoiseShaping feeds each sample's quantization error back into the
// next, moving the noise floor towards high frequencies.
func WithNoiseShaping(enabled bool) Option {
	return func(cfg *config) error {
		cfg.shaped = enabled
		return nil
	}
}

// WithRNG sets the noise source.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		if rng == nil {
			return errors.New("dither: rng must not be nil")
		}

		cfg.rng = rng

		return nil
	}
}

// WithSeed seeds a private PCG noise source, for reproducible output.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.rng = rand.New(rand.NewPCG(seed, 0))
		return nil
	}
}
