package mud

import "fmt"

// Option mutates Mud construction parameters.
type Option func(*config) error

type config struct {
	program   int
	smoothing int
}

func defaultConfig() config {
	return config{smoothing: defaultSmoothing}
}

// WithProgram selects the program loaded at construction.
func WithProgram(index int) Option {
	return func(cfg *config) error {
		if index < 0 || index >= len(programs) {
			return fmt.Errorf("mud program must be in [0, %d]: %d", len(programs)-1, index)
		}
		cfg.program = index
		return nil
	}
}

// WithSmoothing sets the parameter glide length in samples.
func WithSmoothing(samples int) Option {
	return func(cfg *config) error {
		if samples < 1 {
			return fmt.Errorf("mud smoothing must be >= 1: %d", samples)
		}
		cfg.smoothing = samples
		return nil
	}
}
