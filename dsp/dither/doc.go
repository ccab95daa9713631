// Package dither converts float audio to fixed-point integers for file
// output, with optional dither noise and first-order noise shaping.
package dither
