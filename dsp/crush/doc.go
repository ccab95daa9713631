// Package crush implements bit-depth reduction with a pattern-driven bit
// mangler.
//
// Samples in [-1, 1] are lifted onto an unsigned integer grid, passed through
// one or two mangling patterns and scaled back. Each pattern keeps, clears or
// inverts individual bits of the quantised value.
package crush
