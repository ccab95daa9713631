package dither

import "fmt"

// Kind selects the probability distribution of the dither noise.
type Kind int

const (
	// None rounds without adding noise.
	None Kind = iota
	// Rectangular adds uniform noise of one LSB peak-to-peak.
	Rectangular
	// Triangular adds TPDF noise of two LSB peak-to-peak.
	Triangular

	kindCount
)

var kindNames = [kindCount]string{"none", "rectangular", "triangular"}

// String returns the lower-case name of k.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known dither kind.
func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}

	return None, fmt.Errorf("dither: unknown kind %q", s)
}
