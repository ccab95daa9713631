// Package interp provides the fractional-read primitives of the tape loop.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite
package interp
