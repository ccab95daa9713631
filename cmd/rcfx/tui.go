package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/nsf/termbox-go"
	"golang.org/x/term"

	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

const (
	colDef   = termbox.ColorDefault
	colWhite = termbox.ColorWhite
	colCyan  = termbox.ColorCyan
	colGreen = termbox.ColorGreen
)

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("-tui needs an interactive terminal")
	}

	return nil
}

// editor holds the live parameter editor state. Edits go through the Host
// queue; values mirrors what has been sent so repeated keys between blocks
// accumulate.
type editor struct {
	host     *unit.Host
	params   param.Table
	programs param.Programs
	values   []float32
	selected int
	program  int
	resync   bool
	dropped  int
}

func newEditor(h *unit.Host) *editor {
	e := &editor{
		host:     h,
		params:   h.Unit().Parameters(),
		programs: h.Unit().Programs(),
	}

	e.values = make([]float32, len(e.params))
	e.sync()

	return e
}

func (e *editor) sync() {
	for i := range e.values {
		e.values[i] = e.host.ParameterValue(i)
	}
}

// step returns the fine increment of parameter i.
func (e *editor) step(i int) float32 {
	d := e.params[i]
	if d.Has(param.Integer) {
		return 1
	}

	return (d.Max - d.Min) / 100
}

func (e *editor) nudge(steps float32) {
	if len(e.params) == 0 {
		return
	}

	e.set(e.values[e.selected] + steps*e.step(e.selected))
}

func (e *editor) set(v float32) {
	i := e.selected
	v = e.params[i].Clamp(v)

	if !e.host.SetParameterValue(i, v) {
		e.dropped++
		return
	}

	e.values[i] = v
}

func (e *editor) loadProgram(delta int) {
	if len(e.programs) == 0 {
		return
	}

	e.program = (e.program + delta + len(e.programs)) % len(e.programs)

	if !e.host.LoadProgram(e.program) {
		e.dropped++
		return
	}

	e.resync = true
}

// handle applies one key event and reports whether the editor should quit.
func (e *editor) handle(ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}

	n := len(e.params)

	switch {
	case ev.Key == termbox.KeyEsc || ev.Ch == 'q':
		return true
	case ev.Key == termbox.KeyArrowUp && n > 0:
		e.selected = (e.selected + n - 1) % n
	case ev.Key == termbox.KeyArrowDown && n > 0:
		e.selected = (e.selected + 1) % n
	case ev.Key == termbox.KeyArrowRight:
		e.nudge(1)
	case ev.Key == termbox.KeyArrowLeft:
		e.nudge(-1)
	case ev.Ch == '+':
		e.nudge(10)
	case ev.Ch == '-':
		e.nudge(-10)
	case ev.Ch == 'n':
		e.loadProgram(1)
	case ev.Ch == 'p':
		e.loadProgram(-1)
	case ev.Ch == 'r' && n > 0:
		e.set(e.params[e.selected].Default)
	}

	return false
}

// tick refreshes the mirrored values once a program change has been applied.
func (e *editor) tick() {
	if e.resync && e.host.Pending() == 0 {
		e.sync()
		e.resync = false
	}
}

func runTUI(h *unit.Host, meter *liveReader) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	e := newEditor(h)

	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		e.draw(meter.Level())

		select {
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return ev.Err
			}

			if e.handle(ev) {
				return nil
			}
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *editor) draw(level float32) {
	_ = termbox.Clear(colDef, colDef)

	info := e.host.Unit().Info()
	printTB(0, 0, colCyan, colDef, fmt.Sprintf("%s %s  (%s)", info.Label, info.VersionString(), info.Description))
	printTB(0, 1, colDef, colDef, "Up/Down select  Left/Right adjust  +/- coarse  r default  n/p program  q quit")

	prog := "-"
	if e.program < len(e.programs) {
		prog = e.programs[e.program].Name
	}

	printTB(0, 3, colDef, colDef, fmt.Sprintf("program %d: %s", e.program, prog))

	for i, d := range e.params {
		fg, bg, prefix := colWhite, colDef, "  "
		if i == e.selected {
			fg, bg, prefix = colDef, colWhite, "> "
		}

		line := fmt.Sprintf("%s%-12s %8.2f %-3s %s", prefix, d.Name, e.values[i], d.Unit, bar(d.Normalize(e.values[i]), 30))
		printTB(0, 5+i, fg, bg, line)
	}

	y := 6 + len(e.params)
	printTB(0, y, colGreen, colDef, fmt.Sprintf("out %7s dBFS %s", dBString(20*math.Log10(float64(level))), bar(level, 30)))

	if e.dropped > 0 {
		printTB(0, y+1, colDef, colDef, fmt.Sprintf("%d edits dropped", e.dropped))
	}

	_ = termbox.Flush()
}

func bar(frac float32, width int) string {
	n := int(math.Round(float64(max(0, min(frac, 1)) * float32(width))))
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", width-n) + "]"
}

func printTB(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x++
	}
}
