package onepole

import (
	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

const (
	defaultC   = 0.3
	defaultOMR = 0.98
)

// State is the memory of one section for one channel.
type State struct {
	V0 float32
	V1 float32
}

// Reset clears the state.
func (s *State) Reset() { *s = State{} }

// Section holds the smoothed coefficients of one leaky integrator pair.
type Section struct {
	c   param.Smooth[float32]
	omr param.Smooth[float32]
}

// NewSection returns a section settled at the default coefficients, gliding
// over smoothing samples on later edits.
func NewSection(smoothing int) Section {
	return Section{
		c:   param.NewSmooth[float32](defaultC, smoothing),
		omr: param.NewSmooth[float32](defaultOMR, smoothing),
	}
}

// Set glides towards coefficient c with damping r (one_minus_rc = 1 - r*c).
func (s *Section) Set(c, r float32) {
	s.c.Set(c)
	s.omr.Set(1 - r*c)
}

// Complete jumps both coefficients to their targets.
func (s *Section) Complete() {
	s.c.Complete()
	s.omr.Complete()
}

// Tick advances the coefficient glides by one sample.
func (s *Section) Tick() {
	s.c.Tick()
	s.omr.Tick()
}

// C returns the current integrator coefficient.
func (s *Section) C() float32 { return s.c.Value() }

// OneMinusRC returns the current leak term.
func (s *Section) OneMinusRC() float32 { return s.omr.Value() }

// Process runs one sample through st and returns the low-pass output v1.
func (s *Section) Process(st *State, x float32) float32 {
	c := s.c.Value()
	omr := s.omr.Value()

	st.V0 = core.FlushDenormals(omr*st.V0 + c*(x-st.V1))
	st.V1 = core.FlushDenormals(omr*st.V1 + c*st.V0)

	return st.V1
}
