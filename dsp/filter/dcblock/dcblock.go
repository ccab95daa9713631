// Package dcblock removes DC offset with a first-order high-pass whose pole
// sits at z = 0.99:
//
//	y[n] = 0.99*y[n-1] + x[n] - x[n-1]
package dcblock

import "github.com/cwbudde/algo-remaincalm/dsp/core"

// Pole is the feedback coefficient of the blocker.
const Pole = 0.99

// Filter is a DC blocker for one channel. The zero value is ready to use.
type Filter struct {
	prevIn float32
	out    float32
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float32) float32 {
	f.out = core.FlushDenormals(Pole*f.out + x - f.prevIn)
	f.prevIn = x
	return f.out
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float32) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// Reset clears the filter memory.
func (f *Filter) Reset() { *f = Filter{} }
