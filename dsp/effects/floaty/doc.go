// Package floaty implements Floaty, a tape-style delay.
//
// The record head writes input plus feedback onto a tape loop at one sample
// per sample. The play head moves at the playback rate, which may be
// fractional or negative, plus a slow sinusoidal warp. What the play head
// reads is saturated, band-pass filtered and mixed back with the input.
//
// Floaty covers plain echoes, chorus and flanger sounds, pitch shifting and
// reversed delays depending on the program.
package floaty
