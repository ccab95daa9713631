package sub

import "fmt"

// Option mutates Sub construction parameters.
type Option func(*config) error

type config struct {
	smoothing int
}

func defaultConfig() config {
	return config{smoothing: defaultSmoothing}
}

// WithSmoothing sets the parameter glide length in samples.
func WithSmoothing(samples int) Option {
	return func(cfg *config) error {
		if samples < 1 {
			return fmt.Errorf("sub smoothing must be >= 1: %d", samples)
		}
		cfg.smoothing = samples
		return nil
	}
}
