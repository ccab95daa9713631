// Package paranoia implements Paranoia, a distortion and bit mangler.
//
// Each sample is boosted, held by a sample-and-hold rate reducer, soft
// clipped, quantised to 6 or 10 bits and passed through a bit-mangling
// pattern before an optional resonant filter, output level, a second soft
// clipper and a DC blocker.
//
// The Crush knob is V-shaped: both ends reduce the rate, the low half also
// drops to 6 bits, and the top percent runs at the host rate.
package paranoia
