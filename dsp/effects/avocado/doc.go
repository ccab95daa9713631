// Package avocado implements Avocado, a gated glitch looper.
//
// The input is recorded continuously into a small set of fixed-length
// slots, each pass landing in a randomly chosen slot. A player loops one
// slot at a time: at the end of each pass it keeps the slot with the Repeat
// probability or jumps to a random one, and now and then wears the slot
// down by 15%. Slot edges are faded in and out.
//
// An envelope gate decides what is heard. While the input is loud the output
// is the dry signal; once it falls below the threshold the output glides
// towards the looper by the Mix amount.
package avocado
