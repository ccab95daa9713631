//go:build headless

package main

import "errors"

func play(processor, []float32, float64, options) error {
	return errors.New("built with the headless tag: no audio playback")
}
