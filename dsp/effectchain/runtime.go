package effectchain

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-remaincalm/dsp/core"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

// nodeRuntime hosts one unit inside the graph. The unit sees every input
// channel fed with the node's mixed signal; each output channel becomes a
// port.
type nodeRuntime struct {
	unitType string
	unit     unit.Unit
	in       [][]float32
	out      [][]float32
}

func newNodeRuntime(unitType string, u unit.Unit) *nodeRuntime {
	info := u.Info()
	return &nodeRuntime{
		unitType: unitType,
		unit:     u,
		in:       make([][]float32, max(info.Inputs, 1)),
		out:      make([][]float32, max(info.Outputs, 1)),
	}
}

// Ports returns the number of output channels.
func (rt *nodeRuntime) Ports() int { return len(rt.out) }

// Configure loads the node's program, then assigns every other numeric
// parameter by symbol in sorted order.
func (rt *nodeRuntime) Configure(params Params) error {
	if name, ok := params.Str[ProgramKey]; ok {
		if err := unit.LoadProgramByName(rt.unit, name); err != nil {
			return err
		}
	} else if v, ok := params.Num[ProgramKey]; ok {
		index := int(v)
		if index < 0 || index >= len(rt.unit.Programs()) || float64(index) != v {
			return fmt.Errorf("%s: %w: %v", rt.unit.Info().Label, unit.ErrUnknownProgram, v)
		}
		rt.unit.LoadProgram(index)
	}

	keys := make([]string, 0, len(params.Num))
	for k := range params.Num {
		if k != ProgramKey {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := unit.SetBySymbol(rt.unit, k, float32(params.GetNum(k, 0))); err != nil {
			return err
		}
	}

	return nil
}

// Process runs the unit over src and writes each output channel into the
// matching port of dst.
func (rt *nodeRuntime) Process(src []float64, dst [][]float64) {
	n := len(src)
	rt.in = ensure(rt.in, n)
	rt.out = ensure(rt.out, n)

	core.Narrow(rt.in[0], src)
	for ch := 1; ch < len(rt.in); ch++ {
		copy(rt.in[ch], rt.in[0])
	}

	rt.unit.Run(rt.in, rt.out, n)

	for port, out := range rt.out {
		core.Widen(dst[port], out)
	}
}

// ensure sizes every channel of bufs to n samples, reusing capacity.
func ensure[T core.Float](bufs [][]T, n int) [][]T {
	for i := range bufs {
		bufs[i] = core.EnsureLen(bufs[i], n)
	}

	return bufs
}
