package onepole

// Coefficients are the targets of a Pair edit.
type Coefficients struct {
	LowC  float32
	LowR  float32
	HighC float32
	HighR float32
}

// PairState is the filter memory of one channel.
type PairState struct {
	Low  State
	High State
}

// Reset clears both sections.
func (s *PairState) Reset() {
	s.Low.Reset()
	s.High.Reset()
}

// Pair is a low-pass section followed by a subtractive high-pass section.
type Pair struct {
	LPF Section
	HPF Section
}

// NewPair returns a pair with both sections at their defaults.
func NewPair(smoothing int) *Pair {
	return &Pair{LPF: NewSection(smoothing), HPF: NewSection(smoothing)}
}

// Set glides both sections towards k.
func (p *Pair) Set(k Coefficients) {
	p.LPF.Set(k.LowC, k.LowR)
	p.HPF.Set(k.HighC, k.HighR)
}

// Complete jumps both sections to their targets.
func (p *Pair) Complete() {
	p.LPF.Complete()
	p.HPF.Complete()
}

// Tick advances both sections by one sample.
func (p *Pair) Tick() {
	p.LPF.Tick()
	p.HPF.Tick()
}

// LowPass returns the low-pass output for x.
func (p *Pair) LowPass(st *PairState, x float32) float32 {
	return p.LPF.Process(&st.Low, x)
}

// HighPass returns x minus the high-pass section's integrator output.
func (p *Pair) HighPass(st *PairState, x float32) float32 {
	return x - p.HPF.Process(&st.High, x)
}

// BandPass runs x through LowPass then HighPass.
func (p *Pair) BandPass(st *PairState, x float32) float32 {
	return p.HighPass(st, p.LowPass(st, x))
}
