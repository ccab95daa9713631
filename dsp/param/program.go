package param

import (
	"errors"
	"fmt"
)

// ErrProgramShape is returned when a program does not cover every parameter.
var ErrProgramShape = errors.New("program value count does not match parameter count")

// Program is a named preset: one value per parameter, in id order.
type Program struct {
	Name   string
	Values []float32
}

// Programs is a fixed preset table.
type Programs []Program

// Validate checks every program against the parameter table.
func (p Programs) Validate(params Table) error {
	for i, prog := range p {
		if len(prog.Values) != len(params) {
			return fmt.Errorf("program %d %q: %w: got %d, want %d",
				i, prog.Name, ErrProgramShape, len(prog.Values), len(params))
		}
	}

	return nil
}

// Lookup returns the index of the program with the given name.
func (p Programs) Lookup(name string) (int, bool) {
	for i, prog := range p {
		if prog.Name == name {
			return i, true
		}
	}

	return -1, false
}
