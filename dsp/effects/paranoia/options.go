package paranoia

import (
	"fmt"
	"math"
)

// Option mutates Paranoia construction parameters.
type Option func(*config) error

type config struct {
	program   int
	smoothing int
	mix       float32
}

func defaultConfig() config {
	return config{smoothing: defaultSmoothing, mix: 1}
}

// WithProgram selects the program loaded at construction.
func WithProgram(index int) Option {
	return func(cfg *config) error {
		if index < 0 || index >= len(programs) {
			return fmt.Errorf("paranoia program must be in [0, %d]: %d", len(programs)-1, index)
		}
		cfg.program = index
		return nil
	}
}

// WithSmoothing sets the parameter glide length in samples.
func WithSmoothing(samples int) Option {
	return func(cfg *config) error {
		if samples < 1 {
			return fmt.Errorf("paranoia smoothing must be >= 1: %d", samples)
		}
		cfg.smoothing = samples
		return nil
	}
}

// WithMix sets the fixed dry/wet balance in [0, 1]. The default of 1 outputs
// the processed signal only.
func WithMix(mix float64) Option {
	return func(cfg *config) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("paranoia mix must be in [0, 1]: %f", mix)
		}
		cfg.mix = float32(mix)
		return nil
	}
}
