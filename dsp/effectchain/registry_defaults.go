package effectchain

import (
	"github.com/cwbudde/algo-remaincalm/dsp/effects/avocado"
	"github.com/cwbudde/algo-remaincalm/dsp/effects/floaty"
	"github.com/cwbudde/algo-remaincalm/dsp/effects/mswitch"
	"github.com/cwbudde/algo-remaincalm/dsp/effects/mud"
	"github.com/cwbudde/algo-remaincalm/dsp/effects/paranoia"
	"github.com/cwbudde/algo-remaincalm/dsp/effects/sub"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

type registryConfig struct {
	seed      uint64
	seeded    bool
	smoothing int
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithSeed makes every avocado instance draw from a PCG source seeded with
// seed, so chains render reproducibly.
func WithSeed(seed uint64) RegistryOption {
	return func(c *registryConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithSmoothing sets the parameter glide length of the units that smooth
// their parameters. Zero keeps each unit's default.
func WithSmoothing(samples int) RegistryOption {
	return func(c *registryConfig) {
		c.smoothing = samples
	}
}

// DefaultRegistry returns a Registry holding every unit, keyed by lower-case
// label.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	r := NewRegistry()

	r.MustRegister("floaty", func(ctx Context) (unit.Unit, error) {
		var opts []floaty.Option
		if cfg.smoothing != 0 {
			opts = append(opts, floaty.WithSmoothing(cfg.smoothing))
		}
		return floaty.New(ctx.SampleRate, opts...)
	})
	r.MustRegister("paranoia", func(ctx Context) (unit.Unit, error) {
		var opts []paranoia.Option
		if cfg.smoothing != 0 {
			opts = append(opts, paranoia.WithSmoothing(cfg.smoothing))
		}
		return paranoia.New(ctx.SampleRate, opts...)
	})
	r.MustRegister("mud", func(ctx Context) (unit.Unit, error) {
		var opts []mud.Option
		if cfg.smoothing != 0 {
			opts = append(opts, mud.WithSmoothing(cfg.smoothing))
		}
		return mud.New(ctx.SampleRate, opts...)
	})
	r.MustRegister("sub", func(ctx Context) (unit.Unit, error) {
		var opts []sub.Option
		if cfg.smoothing != 0 {
			opts = append(opts, sub.WithSmoothing(cfg.smoothing))
		}
		return sub.New(ctx.SampleRate, opts...)
	})
	r.MustRegister("avocado", func(ctx Context) (unit.Unit, error) {
		var opts []avocado.Option
		if cfg.seeded {
			opts = append(opts, avocado.WithSeed(cfg.seed))
		}
		return avocado.New(ctx.SampleRate, opts...)
	})
	r.MustRegister("mswitch", func(ctx Context) (unit.Unit, error) {
		return mswitch.New(ctx.SampleRate)
	})

	return r
}
