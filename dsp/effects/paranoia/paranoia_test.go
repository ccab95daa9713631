package paranoia

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-remaincalm/dsp/spectrum"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
	"github.com/cwbudde/algo-remaincalm/dsp/window"
	"github.com/cwbudde/algo-remaincalm/internal/testutil"
)

var _ unit.Unit = (*Paranoia)(nil)

func newParanoia(t *testing.T, opts ...Option) *Paranoia {
	t.Helper()

	p, err := New(48000, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return p
}

func runMono(p *Paranoia, in []float32) []float32 {
	out := make([]float32, len(in))
	p.Run([][]float32{in}, [][]float32{out}, len(in))
	return out
}

func TestNewValidation(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
	if _, err := New(48000, WithProgram(-1)); err == nil {
		t.Fatal("expected error for program -1")
	}
	if _, err := New(48000, WithMix(1.5)); err == nil {
		t.Fatal("expected error for mix 1.5")
	}
	if _, err := New(48000, WithSmoothing(0)); err == nil {
		t.Fatal("expected error for zero smoothing")
	}
}

func TestInfoAndTables(t *testing.T) {
	p := newParanoia(t)

	info := p.Info()
	if info.Label != "Paranoia" || info.IDString() != "rcPa" {
		t.Fatalf("Info() = %+v", info)
	}
	if got := p.Parameters()[ParamMangle].Name; got != "Mangle" {
		t.Fatalf("mangle name = %q, want Mangle", got)
	}
	if got := p.Parameters()[ParamMangle].Symbol; got != "nuclear" {
		t.Fatalf("mangle symbol = %q, want nuclear", got)
	}
	if err := p.Programs().Validate(p.Parameters()); err != nil {
		t.Fatalf("Programs().Validate() error = %v", err)
	}

	names := []string{"grit", "more grit", "gated fuzz", "lofi", "invert", "lupine"}
	for i, name := range names {
		if got := p.Programs()[i].Name; got != name {
			t.Fatalf("program %d = %q, want %q", i, got, name)
		}
	}
}

func TestCrushSettings(t *testing.T) {
	tests := []struct {
		knob  float32
		rate  float64
		depth int
	}{
		{knob: 100, rate: 48000, depth: 10},
		{knob: 99.5, rate: 48000, depth: 10},
		{knob: 95, rate: 27300, depth: 10},
		{knob: 65, rate: 9300, depth: 10},
		{knob: 50, rate: 300, depth: 10},
		{knob: 45, rate: 3300, depth: 6},
		{knob: 0, rate: 30300, depth: 6},
	}

	for _, tt := range tests {
		rate, depth := CrushSettings(tt.knob, 48000)
		if math.Abs(rate-tt.rate) > 1e-6 || depth != tt.depth {
			t.Fatalf("CrushSettings(%v) = (%v, %d), want (%v, %d)", tt.knob, rate, depth, tt.rate, tt.depth)
		}
	}
}

func TestFilterModes(t *testing.T) {
	p := newParanoia(t)

	tests := []struct {
		knob float32
		mode FilterMode
		gain float32
	}{
		{knob: 0, mode: FilterBandPass, gain: 1},
		{knob: 25, mode: FilterBandPass, gain: 3},
		{knob: 80, mode: FilterBandPass, gain: 2.6},
		{knob: 90, mode: FilterHighPass, gain: 1},
		{knob: 100, mode: FilterOff, gain: 1},
	}

	for _, tt := range tests {
		p.SetParameterValue(ParamFilter, tt.knob)
		if p.FilterMode() != tt.mode {
			t.Fatalf("filter %v: mode = %v, want %v", tt.knob, p.FilterMode(), tt.mode)
		}
		if got := p.gainComp.Target(); math.Abs(float64(got-tt.gain)) > 1e-6 {
			t.Fatalf("filter %v: gain comp = %v, want %v", tt.knob, got, tt.gain)
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	p := newParanoia(t)

	for i, v := range []float32{-12, 33, 7.5, 66} {
		p.SetParameterValue(i, v)
		if got := p.ParameterValue(i); got != v {
			t.Fatalf("param %d: get %v, want %v", i, got, v)
		}
	}

	if got := p.ParameterValue(NumParams); got != 0 {
		t.Fatalf("ParameterValue(out of range) = %v, want 0", got)
	}
	p.SetParameterValue(NumParams, 1)
}

func TestMangleDoesNotTouchFilter(t *testing.T) {
	p := newParanoia(t)
	before := p.ParameterValue(ParamFilter)

	p.SetParameterValue(ParamMangle, 11)
	if got := p.ParameterValue(ParamFilter); got != before {
		t.Fatalf("filter changed from %v to %v on a mangle edit", before, got)
	}
}

func TestGritIsNearlyTransparentCrusher(t *testing.T) {
	p := newParanoia(t)
	if p.BitDepth() != 10 || p.ResampleRate() != 48000 {
		t.Fatalf("grit: depth %d rate %v, want 10-bit at host rate", p.BitDepth(), p.ResampleRate())
	}

	got := p.crusher.ProcessSample(0.5)
	if math.Abs(float64(got)-0.4995) > 1e-4 {
		t.Fatalf("crusher(0.5) = %v, want about 0.4995", got)
	}
}

func TestLofiSidebands(t *testing.T) {
	p := newParanoia(t, WithProgram(3))
	if got := p.ResampleRate(); got != 3300 {
		t.Fatalf("ResampleRate() = %v, want 3300", got)
	}
	if got := p.BitDepth(); got != 6 {
		t.Fatalf("BitDepth() = %d, want 6", got)
	}

	in := testutil.DeterministicSine(1000, 48000, 0.5, 2400+8192)
	out := runMono(p, in)[2400:]
	testutil.RequireFinite(t, out)

	a, err := spectrum.Analyze(out, 48000, window.Hann)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	image := a.Level(2300)
	gap := a.Level(1650)
	if image < 0.01 {
		t.Fatalf("image at 2300 Hz = %v, want a clear sideband", image)
	}
	if image < 30*gap {
		t.Fatalf("image at 2300 Hz = %v, not well above the gap at 1650 Hz (%v)", image, gap)
	}
}

func TestLofiStaircase(t *testing.T) {
	p := newParanoia(t, WithProgram(3))

	in := testutil.DeterministicSine(1000, 48000, 0.5, 4800)
	stage := make([]float32, len(in))
	levels := map[float32]struct{}{}
	for i, x := range in {
		p.tick()
		stage[i] = p.crushStage(&p.channels[0], x)
		levels[stage[i]] = struct{}{}
	}

	if len(levels) > 64 {
		t.Fatalf("distinct levels = %d, want at most 64 for 6 bits", len(levels))
	}

	runs, total := 0, 0
	run := 1
	for i := 1; i < len(stage); i++ {
		if stage[i] == stage[i-1] {
			run++
			continue
		}
		runs++
		total += run
		run = 1
	}
	if mean := float64(total) / float64(runs); mean < 12 || mean > 18 {
		t.Fatalf("mean hold length = %v samples, want about 14.5", mean)
	}
}

// Mangling maps silence onto a constant offset, so the DC blocker needs
// well beyond one smoothing period to settle.
func TestSilenceInSilenceOut(t *testing.T) {
	for prog := range programs {
		p := newParanoia(t, WithProgram(prog))
		out := runMono(p, make([]float32, 48000))
		testutil.RequireSilent(t, out[24000:], 1e-5)
	}
}

func TestNoiseStaysFiniteAndBounded(t *testing.T) {
	for prog := range programs {
		p := newParanoia(t, WithProgram(prog))
		in := testutil.DeterministicNoise(int64(prog)+1, 1, 24000)
		out := runMono(p, in)
		testutil.RequireFinite(t, out)

		for i, v := range out {
			if math.Abs(float64(v)) > 5 {
				t.Fatalf("program %d: out[%d] = %v exceeds post-clip range", prog, i, v)
			}
		}
	}
}

func TestStereoChannelsAreIndependent(t *testing.T) {
	p := newParanoia(t, WithProgram(1))
	l := testutil.DeterministicSine(440, 48000, 0.5, 2048)
	r := make([]float32, len(l))

	outL := make([]float32, len(l))
	outR := make([]float32, len(l))
	p.Run([][]float32{l, r}, [][]float32{outL, outR}, len(l))

	testutil.RequireSliceNearlyEqual(t, outL, runMono(newParanoia(t, WithProgram(1)), l), 0)
	testutil.RequireSliceNearlyEqual(t, outR, runMono(newParanoia(t, WithProgram(1)), r), 0)
}

func TestDryMix(t *testing.T) {
	p := newParanoia(t, WithMix(0))
	in := testutil.DeterministicNoise(9, 0.5, 512)
	out := runMono(p, in)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}
