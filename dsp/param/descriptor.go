package param

import "math"

// Flags describe how a host may treat a parameter.
type Flags uint8

const (
	// Automatable parameters may be driven by host automation.
	Automatable Flags = 1 << iota
	// Integer parameters only take whole-number values.
	Integer
)

// Descriptor is the host-facing description of one parameter.
type Descriptor struct {
	Name    string
	Symbol  string
	Unit    string
	Min     float32
	Default float32
	Max     float32
	Flags   Flags
}

// Has reports whether all bits of f are set.
func (d Descriptor) Has(f Flags) bool { return d.Flags&f == f }

// Clamp limits v to the descriptor range, rounding integer parameters.
func (d Descriptor) Clamp(v float32) float32 {
	if d.Has(Integer) {
		v = float32(math.Round(float64(v)))
	}

	if v < d.Min {
		return d.Min
	}

	if v > d.Max {
		return d.Max
	}

	return v
}

// Normalize maps v from the descriptor range to [0, 1].
func (d Descriptor) Normalize(v float32) float32 {
	if d.Max == d.Min {
		return 0
	}

	return (d.Clamp(v) - d.Min) / (d.Max - d.Min)
}

// Denormalize maps n in [0, 1] to the descriptor range.
func (d Descriptor) Denormalize(n float32) float32 {
	return d.Clamp(d.Min + n*(d.Max-d.Min))
}

// Table is the fixed parameter enumeration of a unit, indexed by parameter id.
type Table []Descriptor

// Lookup returns the id of the parameter with the given symbol.
func (t Table) Lookup(symbol string) (int, bool) {
	for i, d := range t {
		if d.Symbol == symbol {
			return i, true
		}
	}

	return -1, false
}

// Defaults returns the default value of every parameter in id order.
func (t Table) Defaults() []float32 {
	out := make([]float32, len(t))
	for i, d := range t {
		out[i] = d.Default
	}

	return out
}
