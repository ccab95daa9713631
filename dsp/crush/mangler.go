package crush

import "fmt"

// NumPatterns is the number of mangling patterns in the table.
const NumPatterns = 17

// PatternBits is the width of a mangling pattern.
const PatternBits = 8

// Patterns lists the mangling patterns from the most significant bit to the
// least significant one. I keeps a bit, O clears it and X inverts it.
var Patterns = [NumPatterns]string{
	"IIIIIIII",
	"IIIIIIIO",
	"IIIIIIIX",
	"IIIIIIOI",
	"IIIIIIXI",
	"IIIIIOOI",
	"IIIIIIXX",
	"IIIXIIII",
	"IIOIIIII",
	"OXIOXOXI",
	"XXIIXIXI",
	"OOOOIOOO",
	"OOOOOXOI",
	"OOIIOOXI",
	"OOOIIXOX",
	"OOOOIIXX",
	"OOOOIIII",
}

// relGain compensates the level change each pattern introduces.
var relGain = [NumPatterns]float32{
	1.0, 1.0, 1.0, 0.8, 1.0, 0.8, 1.0, 0.1, 0.1,
	0.3, 0.1, 1.3, 2.0, 0.2, 0.8, 0.5, 0.5,
}

// Mangler holds the compiled clear and xor masks of the pattern table.
type Mangler struct {
	clear [NumPatterns]int
	xor   [NumPatterns]int
}

// NewMangler compiles Patterns into bit masks.
func NewMangler() *Mangler {
	m := &Mangler{}
	for idx, p := range Patterns {
		clear, xor, err := compilePattern(p)
		if err != nil {
			panic(err)
		}
		m.clear[idx] = clear
		m.xor[idx] = xor
	}

	return m
}

func compilePattern(p string) (clear, xor int, err error) {
	if len(p) != PatternBits {
		return 0, 0, fmt.Errorf("crush: pattern %q must have %d symbols", p, PatternBits)
	}

	for i := 0; i < PatternBits; i++ {
		switch p[PatternBits-1-i] {
		case 'I':
		case 'O':
			clear |= 1 << i
		case 'X':
			xor |= 1 << i
		default:
			return 0, 0, fmt.Errorf("crush: pattern %q has invalid symbol %q", p, p[PatternBits-1-i])
		}
	}

	return clear, xor, nil
}

// Masks returns the compiled 8-bit clear and xor masks of pattern idx.
func (m *Mangler) Masks(idx int) (clear, xor int) {
	idx = clampIndex(idx)
	return m.clear[idx], m.xor[idx]
}

// RelGain returns the gain compensation of pattern idx.
func (m *Mangler) RelGain(idx int) float32 {
	return relGain[clampIndex(idx)]
}

// Mangle applies pattern idx to the quantised sample q of the given bit depth.
// The clear mask is aligned with the top bits of the sample; the xor mask
// always acts on the low byte.
func (m *Mangler) Mangle(idx, bitDepth, q int) int {
	clear, xor := m.Masks(idx)

	switch {
	case bitDepth < PatternBits:
		clear >>= PatternBits - bitDepth
	case bitDepth > PatternBits:
		clear <<= bitDepth - PatternBits
	}

	return (q &^ clear) ^ xor
}

func clampIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= NumPatterns {
		return NumPatterns - 1
	}
	return idx
}
