package spectrum

import "github.com/cwbudde/algo-vecmath"

// Magnitude returns |X[k]| for each bin of a complex spectrum, or nil for an
// empty one.
func Magnitude(bins []complex128) []float64 {
	return fromComplex(bins, vecmath.Magnitude)
}

// Power returns |X[k]|² for each bin of a complex spectrum, or nil for an
// empty one.
func Power(bins []complex128) []float64 {
	return fromComplex(bins, vecmath.Power)
}

// MagnitudeFromParts writes sqrt(re²+im²) into dst without allocating. All
// slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) { vecmath.Magnitude(dst, re, im) }

// PowerFromParts writes re²+im² into dst without allocating.
func PowerFromParts(dst, re, im []float64) { vecmath.Power(dst, re, im) }

// fromComplex splits bins into real and imaginary planes and applies kernel.
func fromComplex(bins []complex128, kernel func(dst, re, im []float64)) []float64 {
	n := len(bins)
	if n == 0 {
		return nil
	}

	buf := make([]float64, 3*n)
	re, im, out := buf[:n], buf[n:2*n], buf[2*n:]

	for i, c := range bins {
		re[i], im[i] = real(c), imag(c)
	}

	kernel(out, re, im)

	return out
}
