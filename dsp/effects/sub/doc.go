// Package sub implements Sub, a driven resonant filter with separate dry
// and wet output levels.
//
// The input is boosted by 6 dB, soft clipped, band-passed, scaled by the wet
// level, soft clipped again and DC blocked. The dry signal is added back at
// its own level; at -90 dB and below it is muted.
package sub
