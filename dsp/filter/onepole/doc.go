// Package onepole implements the resonant one-pole pair used as the tone
// filter of every unit.
//
// Each [Section] integrates twice with a leak term:
//
//	v0 = (1 - r*c)*v0 + c*(x - v1)
//	v1 = (1 - r*c)*v1 + c*v0
//
// The low-pass output is v1; the high-pass output is x - v1. A [Pair] feeds
// a low-pass into a high-pass to form a resonant band-pass. Coefficients are
// smoothed so cutoff and resonance edits do not zipper; filter memory lives
// in a separate [State] so one Pair can drive several channels.
package onepole
