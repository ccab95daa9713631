package effectchain

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cwbudde/algo-remaincalm/dsp/unit"
)

// ErrUnknownUnit is returned when a node references an unregistered unit type.
var ErrUnknownUnit = errors.New("unknown unit type")

// Factory builds one unit instance for a node.
type Factory func(ctx Context) (unit.Unit, error)

// Registry maps lower-case unit labels to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateUnit = errors.New("duplicate unit type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given unit type. Types are matched
// case-insensitively.
func (r *Registry) Register(unitType string, factory Factory) error {
	unitType = normalizeType(unitType)
	if unitType == "" {
		return errors.New("empty unit type")
	}

	if isStructuralNodeType(unitType) {
		return fmt.Errorf("reserved node type: %s", unitType)
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[unitType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateUnit, unitType)
	}

	r.factories[unitType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(unitType string, factory Factory) {
	err := r.Register(unitType, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given unit type, or nil.
func (r *Registry) Lookup(unitType string) Factory {
	return r.factories[normalizeType(unitType)]
}

// New builds a unit of the given type.
func (r *Registry) New(ctx Context, unitType string) (unit.Unit, error) {
	factory := r.Lookup(unitType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, unitType)
	}

	return factory(ctx)
}

// Types returns the registered unit types in sorted order.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.factories))
}
