package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-remaincalm/dsp/dither"
)

// readWAV returns the first channel of a PCM WAV file scaled to [-1, 1].
func readWAV(path string) ([]float32, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	bits := int(dec.BitDepth)
	if bits == 0 {
		return nil, 0, fmt.Errorf("%s: unknown bit depth", path)
	}

	channels := max(buf.Format.NumChannels, 1)
	scale := 1 / math.Exp2(float64(bits-1))

	out := make([]float32, len(buf.Data)/channels)
	for i := range out {
		out[i] = float32(float64(buf.Data[i*channels]) * scale)
	}

	if len(out) == 0 {
		return nil, 0, fmt.Errorf("%s: no samples", path)
	}

	return out, float64(buf.Format.SampleRate), nil
}

// writeWAV quantizes channels to bits with the given dither and writes them
// interleaved.
func writeWAV(path string, channels [][]float32, sampleRate float64, bits int, kind dither.Kind, seed uint64) error {
	if len(channels) == 0 {
		return fmt.Errorf("%s: no channels to write", path)
	}

	switch bits {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%s: bit depth must be 16, 24 or 32: %d", path, bits)
	}

	frames := len(channels[0])
	nch := len(channels)

	data := make([]int, frames*nch)
	plane := make([]int, frames)

	for ch, samples := range channels {
		// Each channel gets its own noise sequence.
		q, err := dither.New(dither.WithBits(bits), dither.WithKind(kind), dither.WithSeed(seed+uint64(ch)))
		if err != nil {
			return err
		}

		q.Block(plane, samples)

		for i, v := range plane {
			data[i*nch+ch] = v
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	sr := int(math.Round(sampleRate))
	enc := wav.NewEncoder(f, sr, bits, nch, 1)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: sr},
		Data:           data,
		SourceBitDepth: bits,
	})
	if err != nil {
		_ = enc.Close()
		_ = f.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
