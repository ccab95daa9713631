package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float32, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float32{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestWidenNarrow(t *testing.T) {
	wide := make([]float64, 3)
	if n := Widen(wide, []float32{0.5, -0.25}); n != 2 {
		t.Fatalf("Widen() = %d, want 2", n)
	}

	narrow := make([]float32, 2)
	if n := Narrow(narrow, wide); n != 2 {
		t.Fatalf("Narrow() = %d, want 2", n)
	}

	if narrow[0] != 0.5 || narrow[1] != -0.25 {
		t.Fatalf("round trip = %v, want [0.5 -0.25]", narrow)
	}
}
