package param

import "github.com/cwbudde/algo-remaincalm/dsp/core"

// Smooth glides linearly from its previous value to the most recently
// assigned target over a fixed number of ticks.
//
// The reading always lies on the segment between the value held when Set
// was called and the target.
type Smooth[T core.Float] struct {
	value T
	start T
	end   T
	t     int
	n     int
}

// NewSmooth returns a settled Smooth holding initial. Lengths below one tick
// are raised to one.
func NewSmooth[T core.Float](initial T, length int) Smooth[T] {
	if length < 1 {
		length = 1
	}

	return Smooth[T]{value: initial, start: initial, end: initial, t: length, n: length}
}

// Set starts a glide from the current reading towards v.
func (s *Smooth[T]) Set(v T) {
	if s.n < 1 {
		s.n = core.DefaultSmoothingSamples
		s.t = s.n
	}

	s.start = s.value
	s.end = v
	s.t = 0
}

// Complete jumps to the target without gliding.
func (s *Smooth[T]) Complete() {
	s.t = s.n
	s.value = s.end
}

// Reset sets both reading and target to v.
func (s *Smooth[T]) Reset(v T) {
	s.Set(v)
	s.Complete()
}

// Tick advances the glide by one sample and returns the new reading.
func (s *Smooth[T]) Tick() T {
	if s.t < s.n {
		s.t++
		frac := T(s.t) / T(s.n)
		s.value = s.end*frac + s.start*(1-frac)
	} else {
		s.value = s.end
	}

	return s.value
}

// Value returns the current reading.
func (s *Smooth[T]) Value() T { return s.value }

// Target returns the value the glide is heading to.
func (s *Smooth[T]) Target() T { return s.end }

// Len returns the glide length in ticks.
func (s *Smooth[T]) Len() int { return s.n }

// Settled reports whether the glide has reached its target.
func (s *Smooth[T]) Settled() bool { return s.t >= s.n }
