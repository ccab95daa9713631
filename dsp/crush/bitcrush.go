package crush

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

// Bitcrusher quantises samples to a reduced bit depth and mangles the result.
// The mangle amount interpolates between adjacent patterns.
type Bitcrusher struct {
	mangler  *Mangler
	bitDepth int
	bitScale param.Smooth[float32]
	mangle   param.Smooth[float32]
}

// NewBitcrusher returns a 10-bit crusher with pattern 0 selected. smoothing is
// the glide length of scale and mangle changes in samples.
func NewBitcrusher(smoothing int) *Bitcrusher {
	b := &Bitcrusher{
		mangler:  NewMangler(),
		bitScale: param.NewSmooth[float32](1, smoothing),
		mangle:   param.NewSmooth[float32](0, smoothing),
	}
	b.SetBitDepth(10)
	b.Complete()

	return b
}

// SetBitDepth selects the quantiser resolution. The step size glides to the
// new depth while the mangling masks switch immediately.
func (b *Bitcrusher) SetBitDepth(depth int) error {
	if depth < 1 || depth > 24 {
		return fmt.Errorf("crush: bit depth must be in [1, 24]: %d", depth)
	}

	b.ClampBitDepth(depth)

	return nil
}

// ClampBitDepth is SetBitDepth for callers that derive the depth
// themselves: depth is clamped to [1, 24] instead of rejected.
func (b *Bitcrusher) ClampBitDepth(depth int) {
	b.bitDepth = min(max(depth, 1), 24)
	b.bitScale.Set(BitScale(b.bitDepth))
}

// BitDepth returns the current quantiser resolution.
func (b *Bitcrusher) BitDepth() int { return b.bitDepth }

// SetMangle sets the pattern position in [0, NumPatterns-1]. Fractional
// positions blend two neighbouring patterns.
func (b *Bitcrusher) SetMangle(v float32) {
	b.mangle.Set(core.Clamp(v, 0, NumPatterns-1))
}

// Mangle returns the target pattern position.
func (b *Bitcrusher) Mangle() float32 { return b.mangle.Target() }

// Tick advances the parameter glides by one sample.
func (b *Bitcrusher) Tick() {
	b.bitScale.Tick()
	b.mangle.Tick()
}

// Complete jumps all parameters to their targets.
func (b *Bitcrusher) Complete() {
	b.bitScale.Complete()
	b.mangle.Complete()
}

// ProcessSample crushes x, which is clamped to [-1, 1].
func (b *Bitcrusher) ProcessSample(x float32) float32 {
	return Crush(b.mangler, core.Clamp(x, -1, 1), b.mangle.Value(), b.bitDepth, b.bitScale.Value())
}

// ProcessInPlace crushes buf with parameters ticking per sample.
func (b *Bitcrusher) ProcessInPlace(buf []float32) {
	for i, x := range buf {
		b.Tick()
		buf[i] = b.ProcessSample(x)
	}
}

// BitScale returns the half-range of a depth-bit unsigned grid, 2^(depth-1)-0.5.
func BitScale(depth int) float32 {
	return float32(math.Exp2(float64(depth-1)) - 0.5)
}

// Crush quantises x in [-1, 1] with the given scale, mangles it at position
// mangle and maps it back to [-1, 1] with gain compensation.
func Crush(m *Mangler, x, mangle float32, bitDepth int, bitScale float32) float32 {
	q := int((1 + x) * bitScale)

	left := int(mangle)
	mix := mangle - float32(left)
	right := left
	if mix > 0.001 {
		right++
	}

	ql := float32(m.Mangle(left, bitDepth, q))
	qr := float32(m.Mangle(right, bitDepth, q))
	y := ql*(1-mix) + qr*mix
	y = y/bitScale - 1

	gain := m.RelGain(left)*(1-mix) + m.RelGain(right)*mix

	return y * gain
}
