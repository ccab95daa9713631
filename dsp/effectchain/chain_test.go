package effectchain

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-remaincalm/dsp/effects/floaty"
	"github.com/cwbudde/algo-remaincalm/dsp/effects/mud"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
	"github.com/cwbudde/algo-remaincalm/internal/testutil"
)

func newTestChain(t *testing.T, graph string) *Chain {
	t.Helper()

	c := New(Context{SampleRate: 48000}, testRegistry())
	if err := c.LoadGraph(graph); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	return c
}

func requireBlock(t *testing.T, got []float32, want ...float32) {
	t.Helper()

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-6)
}

func TestChainWithoutGraph(t *testing.T) {
	t.Parallel()

	c := New(Context{SampleRate: 48000}, testRegistry())
	if c.HasGraph() {
		t.Fatal("HasGraph() = true before LoadGraph")
	}

	block := []float32{1, 2, 3}
	if c.Process(block) {
		t.Fatal("Process() = true without a graph")
	}

	requireBlock(t, block, 1, 2, 3)

	if !c.Process(nil) {
		t.Fatal("Process(nil) = false, want true")
	}
}

func TestChainPassthrough(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, `{
		"nodes": [{"id": "_input", "type": "_input"}, {"id": "_output", "type": "_output"}],
		"connections": [{"from": "_input", "to": "_output"}]
	}`)

	block := []float32{0.5, -0.25, 1}
	if !c.Process(block) {
		t.Fatal("Process() = false")
	}

	requireBlock(t, block, 0.5, -0.25, 1)
}

func TestChainSerialUnits(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, `{
		"nodes": [
			{"id": "_input", "type": "_input"},
			{"id": "g", "type": "Gain", "params": {"gain": 3}},
			{"id": "o", "type": "add", "params": {"value": 1}},
			{"id": "_output", "type": "_output"}
		],
		"connections": [
			{"from": "_input", "to": "g"},
			{"from": "g", "to": "o"},
			{"from": "o", "to": "_output"}
		]
	}`)

	block := []float32{1, 2}
	c.Process(block)
	requireBlock(t, block, 4, 7)

	if got := c.Unit("g").ParameterValue(0); got != 3 {
		t.Fatalf("gain = %v, want 3", got)
	}
}

func TestChainSplitAndSumAverage(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, `{
		"nodes": [
			{"id": "_input", "type": "_input"},
			{"id": "s", "type": "split"},
			{"id": "a", "type": "gain", "params": {"gain": 2}},
			{"id": "b", "type": "add", "params": {"value": 4}},
			{"id": "m", "type": "sum"},
			{"id": "_output", "type": "_output"}
		],
		"connections": [
			{"from": "_input", "to": "s"},
			{"from": "s", "to": "a"},
			{"from": "s", "to": "b"},
			{"from": "a", "to": "m"},
			{"from": "b", "to": "m"},
			{"from": "m", "to": "_output"}
		]
	}`)

	block := []float32{1, 2}
	c.Process(block)
	// ((2x) + (x+4)) / 2
	requireBlock(t, block, 3.5, 5)
}

func TestChainPortSelection(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, `{
		"nodes": [
			{"id": "_input", "type": "_input"},
			{"id": "g", "type": "gain", "params": {"gain": 2}},
			{"id": "_output", "type": "_output"}
		],
		"connections": [
			{"from": "_input", "to": "g"},
			{"from": "g", "to": "_output", "fromPortIndex": 1}
		]
	}`)

	block := []float32{1, -3}
	c.Process(block)
	requireBlock(t, block, -1, 3)
}

func TestChainBypass(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, `{
		"nodes": [
			{"id": "_input", "type": "_input"},
			{"id": "g", "type": "gain", "bypassed": true, "params": {"gain": 2}},
			{"id": "_output", "type": "_output"}
		],
		"connections": [{"from": "_input", "to": "g"}, {"from": "g", "to": "_output"}]
	}`)

	block := []float32{0.25, 0.5}
	c.Process(block)
	requireBlock(t, block, 0.25, 0.5)

	if runs := c.Unit("g").(*gainUnit).runs; runs != 0 {
		t.Fatalf("bypassed unit ran %d times", runs)
	}
}

func TestChainPrograms(t *testing.T) {
	t.Parallel()

	graph := func(program string) string {
		return `{
			"nodes": [
				{"id": "_input", "type": "_input"},
				{"id": "g", "type": "gain", "params": {"program": ` + program + `}},
				{"id": "_output", "type": "_output"}
			],
			"connections": [{"from": "_input", "to": "g"}, {"from": "g", "to": "_output"}]
		}`
	}

	for _, program := range []string{`1`, `"double"`} {
		c := newTestChain(t, graph(program))

		block := []float32{1}
		c.Process(block)
		requireBlock(t, block, 2)
	}

	for _, program := range []string{`2`, `1.5`, `-1`, `"triple"`} {
		c := New(Context{SampleRate: 48000}, testRegistry())

		err := c.LoadGraph(graph(program))
		if !errors.Is(err, unit.ErrUnknownProgram) {
			t.Fatalf("program %s: error = %v, want ErrUnknownProgram", program, err)
		}
	}
}

func TestChainLoadErrors(t *testing.T) {
	t.Parallel()

	c := New(Context{SampleRate: 48000}, testRegistry())

	err := c.LoadGraph(`{
		"nodes": [{"id": "_input", "type": "_input"}, {"id": "x", "type": "chorus"}, {"id": "_output", "type": "_output"}],
		"connections": []
	}`)
	if !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("unknown unit error = %v, want ErrUnknownUnit", err)
	}

	err = c.LoadGraph(`{
		"nodes": [{"id": "_input", "type": "_input"}, {"id": "g", "type": "gain", "params": {"volume": 1}}, {"id": "_output", "type": "_output"}],
		"connections": []
	}`)
	if !errors.Is(err, unit.ErrUnknownParameter) {
		t.Fatalf("unknown parameter error = %v, want ErrUnknownParameter", err)
	}

	if c.HasGraph() {
		t.Fatal("a failed load installed a graph")
	}
}

func TestChainReloadKeepsUnits(t *testing.T) {
	t.Parallel()

	graph := func(typ string, gain int) string {
		return strings.NewReplacer("TYPE", typ, "GAIN", string(rune('0'+gain))).Replace(`{
			"nodes": [
				{"id": "_input", "type": "_input"},
				{"id": "n", "type": "TYPE", "params": {"gain": GAIN}},
				{"id": "_output", "type": "_output"}
			],
			"connections": [{"from": "_input", "to": "n"}, {"from": "n", "to": "_output"}]
		}`)
	}

	c := newTestChain(t, graph("gain", 2))
	first := c.Unit("n")

	if err := c.LoadGraph(graph("gain", 3)); err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	if c.Unit("n") != first {
		t.Fatal("reloading the same type replaced the unit")
	}

	if got := first.ParameterValue(0); got != 3 {
		t.Fatalf("gain after reload = %v, want 3", got)
	}

	if err := c.LoadGraph(""); err != nil {
		t.Fatalf("LoadGraph(\"\") error = %v", err)
	}

	if c.HasGraph() || c.Unit("n") != nil {
		t.Fatal("empty graph should clear the chain")
	}
}

func TestChainWithDefaultUnits(t *testing.T) {
	t.Parallel()

	c := New(Context{SampleRate: 48000}, DefaultRegistry(WithSeed(7)))

	err := c.LoadGraph(`{
		"nodes": [
			{"id": "_input", "type": "_input"},
			{"id": "fl", "type": "Floaty", "params": {"program": "Octave", "mix": 100}},
			{"id": "mu", "type": "mud", "params": {"program": 5}},
			{"id": "av", "type": "avocado"},
			{"id": "_output", "type": "_output"}
		],
		"connections": [
			{"from": "_input", "to": "fl"},
			{"from": "fl", "to": "mu"},
			{"from": "mu", "to": "av"},
			{"from": "av", "to": "_output"}
		]
	}`)
	if err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	fl, ok := c.Unit("fl").(*floaty.Floaty)
	if !ok {
		t.Fatalf("node fl hosts %T", c.Unit("fl"))
	}

	if got := fl.ParameterValue(floaty.ParamMix); got != 100 {
		t.Fatalf("floaty mix = %v, want 100", got)
	}

	if got := c.Unit("mu").ParameterValue(mud.ParamMix); got != 100 {
		t.Fatalf("mud mix = %v, want 100 from honk", got)
	}

	in := testutil.DeterministicNoise(1, 0.5, 4096)
	for start := 0; start < len(in); start += 512 {
		if !c.Process(in[start : start+512]) {
			t.Fatal("Process() = false")
		}
	}

	testutil.RequireFinite(t, in)
}
