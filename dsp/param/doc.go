// Package param holds the parameter model shared by every unit: linearly
// smoothed scalars, descriptor tables reported to hosts, and program
// (preset) tables.
//
// A [Smooth] value is written from the control side with Set and read on the
// audio side after Tick. Programs call Complete so preset changes jump
// instead of gliding.
package param
