package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails unless got and want have the same length and
// agree within eps at every index.
func RequireSliceNearlyEqual(t *testing.T, got, want []float32, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(float64(got[i] - want[i])); d > eps || math.IsNaN(d) {
			t.Fatalf("[%d] = %v, want %v (|diff| %g > %g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float32) {
	t.Helper()

	for i, x := range data {
		if v := float64(x); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v, want finite", i, x)
		}
	}
}

// RequireSilent fails on the first sample louder than eps.
func RequireSilent(t *testing.T, data []float32, eps float64) {
	t.Helper()

	for i, x := range data {
		if math.Abs(float64(x)) > eps {
			t.Fatalf("[%d] = %v, want silence within %g", i, x, eps)
		}
	}
}

// MaxAbsDiff returns max |a[i] - b[i]|.
func MaxAbsDiff(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst := 0.0
	for i := range a {
		worst = max(worst, math.Abs(float64(a[i]-b[i])))
	}

	return worst, nil
}
