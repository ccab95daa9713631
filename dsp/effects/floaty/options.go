package floaty

import (
	"fmt"

	"github.com/cwbudde/algo-remaincalm/dsp/interp"
)

// Option mutates Floaty construction parameters.
type Option func(*config) error

type config struct {
	program   int
	smoothing int
	mode      interp.Mode
}

func defaultConfig() config {
	return config{
		program:   0,
		smoothing: defaultSmoothing,
		mode:      interp.ModeLinear,
	}
}

// WithProgram selects the program loaded at construction.
func WithProgram(index int) Option {
	return func(cfg *config) error {
		if index < 0 || index >= len(programs) {
			return fmt.Errorf("floaty program must be in [0, %d]: %d", len(programs)-1, index)
		}
		cfg.program = index
		return nil
	}
}

// WithSmoothing sets the parameter glide length in samples.
func WithSmoothing(samples int) Option {
	return func(cfg *config) error {
		if samples < 1 {
			return fmt.Errorf("floaty smoothing must be >= 1: %d", samples)
		}
		cfg.smoothing = samples
		return nil
	}
}

// WithInterpolation selects the play head read interpolation.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if mode != interp.ModeLinear && mode != interp.ModeHermite {
			return fmt.Errorf("floaty interpolation mode unknown: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}
