package unit

// EqualLoudness crossfades dry and wet so that both ends of the mix range
// are at full scale and the midpoint carries each branch at -6 dB:
//
//	mix < 0.5:  dry + 2*mix*wet
//	mix >= 0.5: wet + 2*(1-mix)*dry
func EqualLoudness(dry, wet, mix float32) float32 {
	if mix < 0.5 {
		return dry + 2*mix*wet
	}

	return wet + 2*(1-mix)*dry
}

// Frames limits frames to the shortest present output, so callers can index
// outputs without bounds surprises.
func Frames(outputs [][]float32, frames int) int {
	for _, out := range outputs {
		if out != nil && len(out) < frames {
			frames = len(out)
		}
	}

	if frames < 0 {
		return 0
	}

	return frames
}

// Input returns sample i of channel ch, or 0 when it is absent.
func Input(inputs [][]float32, ch, i int) float32 {
	if ch >= len(inputs) || inputs[ch] == nil || i >= len(inputs[ch]) {
		return 0
	}

	return inputs[ch][i]
}
