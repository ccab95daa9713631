package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)

	if len(s) != 48 || s[0] != 0 {
		t.Fatalf("len = %d, s[0] = %v, want 48 and 0", len(s), s[0])
	}

	// A quarter period is 12 samples.
	if math.Abs(float64(s[12])-0.5) > 1e-6 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}

	if !slices.Equal(s, DeterministicSine(1000, 48000, 0.5, 48)) {
		t.Fatal("sine not reproducible")
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 4096)

	if !slices.Equal(a, DeterministicNoise(42, 0.5, 4096)) {
		t.Fatal("noise not reproducible for one seed")
	}

	if slices.Equal(a, DeterministicNoise(43, 0.5, 4096)) {
		t.Fatal("different seeds produced identical noise")
	}

	mean := 0.0
	for _, x := range a {
		if x < -0.5 || x >= 0.5 {
			t.Fatalf("sample %v outside [-0.5, 0.5)", x)
		}

		mean += float64(x)
	}

	if mean /= float64(len(a)); math.Abs(mean) > 0.03 {
		t.Fatalf("mean = %v, want ~0", mean)
	}
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		got  []float32
		want []float32
	}{
		{"impulse", Impulse(4, 1), []float32{0, 1, 0, 0}},
		{"impulse out of range", Impulse(3, 5), []float32{0, 0, 0}},
		{"impulse negative", Impulse(2, -1), []float32{0, 0}},
		{"dc", DC(0.25, 3), []float32{0.25, 0.25, 0.25}},
		{"ramp", Ramp(4), []float32{0, 0.25, 0.5, 0.75}},
	}

	for _, tt := range tests {
		if !slices.Equal(tt.got, tt.want) {
			t.Fatalf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnergy(t *testing.T) {
	if e := Energy([]float32{1, -2, 0.5}); e != 5.25 {
		t.Fatalf("Energy() = %v, want 5.25", e)
	}

	if e := Energy(nil); e != 0 {
		t.Fatalf("Energy(nil) = %v, want 0", e)
	}
}
