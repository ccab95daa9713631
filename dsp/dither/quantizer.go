package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to signed integers of a fixed word
// length. It is not safe for concurrent use.
type Quantizer struct {
	bits   int
	kind   Kind
	shaped bool
	rng    *rand.Rand

	scale  float64
	lo, hi int
	err    float64
}

// New returns a Quantizer. The default is 16-bit triangular dither without
// noise shaping.
func New(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	full := math.Exp2(float64(cfg.bits - 1))

	return &Quantizer{
		bits:   cfg.bits,
		kind:   cfg.kind,
		shaped: cfg.shaped,
		rng:    cfg.rng,
		scale:  full - 1,
		lo:     -int(full),
		hi:     int(full) - 1,
	}, nil
}

// Bits returns the output word length.
func (q *Quantizer) Bits() int { return q.bits }

// Kind returns the dither distribution.
func (q *Quantizer) Kind() Kind { return q.kind }

// Quantize converts one sample. Non-finite input maps to 0.
func (q *Quantizer) Quantize(x float32) int {
	v := float64(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	v = v*q.scale - q.err

	out := math.Round(v + q.noise())
	out = max(float64(q.lo), min(float64(q.hi), out))

	if q.shaped {
		q.err = max(-1, min(1, out-v))
	}

	return int(out)
}

// Block converts src into dst, which must be at least as long.
func (q *Quantizer) Block(dst []int, src []float32) {
	for i, x := range src {
		dst[i] = q.Quantize(x)
	}
}

// Reset clears the noise shaping error.
func (q *Quantizer) Reset() { q.err = 0 }

func (q *Quantizer) noise() float64 {
	switch q.kind {
	case Rectangular:
		return q.rng.Float64() - 0.5
	case Triangular:
		return q.rng.Float64() - q.rng.Float64()
	default:
		return 0
	}
}
