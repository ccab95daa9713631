package core

import "fmt"

// SampleRateError reports a sample rate that no processor can run at.
type SampleRateError struct {
	Prefix     string
	SampleRate float64
}

func (e *SampleRateError) Error() string {
	return fmt.Sprintf("%s: sample rate must be > 0 and finite: %f", e.Prefix, e.SampleRate)
}
