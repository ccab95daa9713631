package dither

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"bits low", WithBits(4)},
		{"bits high", WithBits(33)},
		{"kind", WithKind(Kind(9))},
		{"rng", WithRNG(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Fatal("New() succeeded, want error")
			}
		})
	}

	q, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}

	if q.Bits() != 16 || q.Kind() != Triangular {
		t.Fatalf("defaults = %d bits %v, want 16 bits triangular", q.Bits(), q.Kind())
	}
}

func TestQuantizeWithoutDither(t *testing.T) {
	q, err := New(WithKind(None))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		in   float32
		want int
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.5, 16384},
		{2, 32767},
		{-2, -32768},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 0},
	}

	for _, tt := range tests {
		if got := q.Quantize(tt.in); got != tt.want {
			t.Fatalf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTriangularDitherIsUnbiased(t *testing.T) {
	q, err := New(WithSeed(7), WithBits(8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// 0.3 LSB sits between codes; TPDF dither recovers it on average.
	in := float32(0.3 / 127)

	const n = 20000

	sum := 0
	for range n {
		v := q.Quantize(in)
		if v < -2 || v > 2 {
			t.Fatalf("Quantize() = %d, want within two LSB of zero", v)
		}

		sum += v
	}

	if mean := float64(sum) / n; math.Abs(mean-0.3) > 0.05 {
		t.Fatalf("mean code = %v, want ~0.3", mean)
	}
}

func TestSeedReproducible(t *testing.T) {
	src := []float32{0.1, -0.2, 0.3, 0.001, -0.7}

	render := func(opts ...Option) []int {
		q, err := New(opts...)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		dst := make([]int, len(src))
		q.Block(dst, src)

		return dst
	}

	a := render(WithSeed(3), WithKind(Rectangular))
	b := render(WithRNG(rand.New(rand.NewPCG(3, 0))), WithKind(Rectangular))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestNoiseShapingKeepsAverage(t *testing.T) {
	q, err := New(WithKind(None), WithNoiseShaping(true), WithBits(8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	in := float32(0.25 / 127)

	const n = 1000

	sum := 0
	for range n {
		sum += q.Quantize(in)
	}

	// Error feedback turns the constant 0.25 LSB into a 1-in-4 pattern.
	if sum < n/4-1 || sum > n/4+1 {
		t.Fatalf("sum = %d, want ~%d", sum, n/4)
	}

	q.Reset()

	if got := q.Quantize(0); got != 0 {
		t.Fatalf("Quantize(0) after Reset = %d, want 0", got)
	}
}

func TestParseKind(t *testing.T) {
	for k := None; k < kindCount; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}

	if _, err := ParseKind("gaussian"); err == nil {
		t.Fatal("ParseKind(gaussian) succeeded")
	}

	if s := Kind(7).String(); s != "Kind(7)" {
		t.Fatalf("String() = %q", s)
	}
}
