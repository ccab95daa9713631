package avocado

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-remaincalm/dsp/unit"
	"github.com/cwbudde/algo-remaincalm/internal/testutil"
)

var _ unit.Unit = (*Avocado)(nil)

func newAvocado(t *testing.T, opts ...Option) *Avocado {
	t.Helper()

	a, err := New(48000, append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return a
}

func runMono(a *Avocado, in []float32) []float32 {
	out := make([]float32, len(in))
	a.Run([][]float32{in}, [][]float32{out}, len(in))
	return out
}

func correlation(a, b []float32) float64 {
	var ab, aa, bb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		ab += x * y
		aa += x * x
		bb += y * y
	}
	return ab / math.Sqrt(aa*bb)
}

func TestNewValidation(t *testing.T) {
	if _, err := New(-48000); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
	if _, err := New(48000, WithProgram(1)); err == nil {
		t.Fatal("expected error for program 1")
	}
	if _, err := New(48000, nil); err != nil {
		t.Fatalf("New() with nil option error = %v", err)
	}
}

func TestInfoAndTables(t *testing.T) {
	a := newAvocado(t)

	info := a.Info()
	if info.Label != "Avocado" || info.IDString() != "rcAv" {
		t.Fatalf("Info() = %+v", info)
	}
	if err := a.Programs().Validate(a.Parameters()); err != nil {
		t.Fatalf("Programs().Validate() error = %v", err)
	}
	if got := a.Programs()[0].Name; got != "Avocado Default" {
		t.Fatalf("program 0 = %q, want Avocado Default", got)
	}

	want := a.Parameters().Defaults()
	for i := range want {
		if got := a.ParameterValue(i); got != want[i] {
			t.Fatalf("ParameterValue(%d) = %v, want default %v", i, got, want[i])
		}
	}
	if got := a.SlotSamples(); got != 4800 {
		t.Fatalf("SlotSamples() = %d, want 4800", got)
	}
}

func TestSetParameterValueClamps(t *testing.T) {
	a := newAvocado(t)

	tests := []struct {
		index     int
		value     float32
		want      float32
		wantSlots int
	}{
		{index: ParamBuffers, value: 3.6, want: 4},
		{index: ParamBuffers, value: 20, want: MaxSlots},
		{index: ParamBuffers, value: 0, want: 1},
		{index: ParamLength, value: 5, want: 10, wantSlots: 480},
		{index: ParamLength, value: 2000, want: 1000, wantSlots: 48000},
		{index: ParamRepeat, value: -5, want: 0},
		{index: ParamMix, value: 150, want: 100},
	}

	for _, tt := range tests {
		a.SetParameterValue(tt.index, tt.value)
		if got := a.ParameterValue(tt.index); got != tt.want {
			t.Fatalf("SetParameterValue(%d, %v) -> %v, want %v", tt.index, tt.value, got, tt.want)
		}
		if tt.wantSlots != 0 && a.SlotSamples() != tt.wantSlots {
			t.Fatalf("SlotSamples() = %d, want %d", a.SlotSamples(), tt.wantSlots)
		}
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		cursor, size int
		want         float32
	}{
		{cursor: 0, size: 4800, want: 0},
		{cursor: 64, size: 4800, want: 0.5},
		{cursor: 2000, size: 4800, want: 1},
		{cursor: 4799, size: 4800, want: 0},
		{cursor: 4799 - 64, size: 4800, want: 0.5},
	}

	for _, tt := range tests {
		if got := fade(tt.cursor, tt.size); got != tt.want {
			t.Fatalf("fade(%d, %d) = %v, want %v", tt.cursor, tt.size, got, tt.want)
		}
	}
}

func TestSilenceInSilenceOut(t *testing.T) {
	a := newAvocado(t)
	testutil.RequireSilent(t, runMono(a, make([]float32, 48000)), 0)
}

func TestLoudInputPassesDry(t *testing.T) {
	a := newAvocado(t)
	a.SetParameterValue(ParamMix, 100)

	in := testutil.DeterministicSine(440, 48000, 0.5, 48000)
	out := runMono(a, in)

	testutil.RequireSliceNearlyEqual(t, out[4800:], in[4800:], 1e-3)
}

func TestQuietInputReplaysSlot(t *testing.T) {
	a := newAvocado(t)
	a.SetParameterValue(ParamBuffers, 1)
	a.SetParameterValue(ParamMix, 100)

	in := testutil.DeterministicNoise(7, 0.01, 48000)
	out := runMono(a, in)

	if g := a.Gain(); g > 1e-6 {
		t.Fatalf("Gain() = %v, want the gate closed", g)
	}

	lag := a.SlotSamples()
	if c := correlation(out[24000:], in[24000-lag:48000-lag]); c < 0.95 {
		t.Fatalf("correlation with input %d samples earlier = %v, want >= 0.95", lag, c)
	}
	if c := correlation(out[24000:], in[24000:]); math.Abs(c) > 0.1 {
		t.Fatalf("correlation with current input = %v, want near 0", c)
	}
}

func TestRepeatAlwaysKeepsSlot(t *testing.T) {
	a := newAvocado(t)
	a.SetParameterValue(ParamBuffers, 8)
	a.SetParameterValue(ParamRepeat, 100)

	in := testutil.DeterministicNoise(2, 0.01, 4800)
	for i := 0; i < 20; i++ {
		runMono(a, in)
		if got := a.PlaySlot(); got != 0 {
			t.Fatalf("PlaySlot() = %d after pass %d, want 0", got, i)
		}
	}
}

func TestZeroRepeatWanders(t *testing.T) {
	a := newAvocado(t)
	a.SetParameterValue(ParamBuffers, 8)
	a.SetParameterValue(ParamRepeat, 0)

	seen := make(map[int]bool)
	in := testutil.DeterministicNoise(2, 0.01, 4800)
	for i := 0; i < 30; i++ {
		runMono(a, in)
		slot := a.PlaySlot()
		if slot < 0 || slot >= 8 {
			t.Fatalf("PlaySlot() = %d, want [0, 8)", slot)
		}
		seen[slot] = true
	}

	if len(seen) < 3 {
		t.Fatalf("visited %d slots, want at least 3", len(seen))
	}
}

func TestSeedIsReproducible(t *testing.T) {
	in := testutil.DeterministicNoise(5, 0.01, 96000)

	run := func(seed uint64) []float32 {
		a, err := New(48000, WithSeed(seed))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		a.SetParameterValue(ParamMix, 100)
		a.SetParameterValue(ParamBuffers, 8)
		return runMono(a, in)
	}

	testutil.RequireSliceNearlyEqual(t, run(3), run(3), 0)

	diff, err := testutil.MaxAbsDiff(run(3), run(4))
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if diff == 0 {
		t.Fatal("different seeds produced identical output")
	}
}

func TestResetClearsSlots(t *testing.T) {
	a := newAvocado(t)
	a.SetParameterValue(ParamMix, 100)

	runMono(a, testutil.DeterministicNoise(8, 0.01, 48000))
	a.Reset()

	if g := a.Gain(); g != 1 {
		t.Fatalf("Gain() after Reset = %v, want 1", g)
	}
	testutil.RequireSilent(t, runMono(a, make([]float32, 48000)), 0)
}

func TestNoiseStaysFinite(t *testing.T) {
	a := newAvocado(t)
	a.SetParameterValue(ParamMix, 100)
	a.SetParameterValue(ParamLength, 10)

	in := testutil.DeterministicNoise(6, 1, 48000)
	for i := range in[24000:] {
		in[24000+i] *= 0.001
	}

	out := runMono(a, in)
	testutil.RequireFinite(t, out)
	for i, v := range out {
		if math.Abs(float64(v)) > 1 {
			t.Fatalf("out[%d] = %v exceeds the input range", i, v)
		}
	}
}
