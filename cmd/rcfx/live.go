package main

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"
)

// liveReader renders a stream on demand as interleaved little-endian
// float32 frames for the audio device.
type liveReader struct {
	s        *stream
	channels int
	frame    []float32
	pending  []float32
	level    atomic.Uint32
}

func newLiveReader(s *stream, channels int) *liveReader {
	channels = max(1, min(channels, len(s.out)))
	return &liveReader{s: s, channels: channels, frame: make([]float32, 0, len(s.out[0])*channels)}
}

// Read fills p with whole samples. It returns io.EOF once a non-looping
// stream has been played out.
func (r *liveReader) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		if len(r.pending) == 0 && !r.fill() {
			if n == 0 {
				return 0, io.EOF
			}

			break
		}

		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(r.pending[0]))
		r.pending = r.pending[1:]
		n += 4
	}

	return n, nil
}

// Level returns the output peak of the most recent block.
func (r *liveReader) Level() float32 { return math.Float32frombits(r.level.Load()) }

func (r *liveReader) fill() bool {
	frames := r.s.step()
	if frames == 0 {
		return false
	}

	peak := float32(0)
	r.frame = r.frame[:0]

	for i := 0; i < frames; i++ {
		for ch := 0; ch < r.channels; ch++ {
			v := r.s.out[ch][i]
			r.frame = append(r.frame, v)

			if a := float32(math.Abs(float64(v))); a > peak {
				peak = a
			}
		}
	}

	r.level.Store(math.Float32bits(peak))
	r.pending = r.frame

	return true
}
