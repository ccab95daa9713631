package avocado

import (
	"fmt"
	"math/rand/v2"
)

// Option mutates Avocado construction parameters.
type Option func(*config) error

type config struct {
	program int
	rng     *rand.Rand
}

func defaultConfig() config {
	return config{}
}

// WithProgram selects the program loaded at construction.
func WithProgram(index int) Option {
	return func(cfg *config) error {
		if index < 0 || index >= len(programs) {
			return fmt.Errorf("avocado program must be in [0, %d]: %d", len(programs)-1, index)
		}
		cfg.program = index
		return nil
	}
}

// WithRNG sets the random source used for slot choice and wear.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

// WithSeed seeds a private PCG random source for reproducible output.
func WithSeed(seed uint64) Option {
	return WithRNG(rand.New(rand.NewPCG(seed, 0)))
}
