//go:build !headless

package main

import (
	"errors"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

func play(proc processor, src []float32, sampleRate float64, opts options) error {
	var host *unitProcessor

	if opts.tui {
		up, ok := proc.(*unitProcessor)
		if !ok {
			return errors.New("-tui needs a single -unit, not a chain")
		}

		if err := requireTerminal(); err != nil {
			return err
		}

		host = up
	}

	r := newLiveReader(newStream(proc, src, opts.events, opts.block, opts.tui), proc.outputs())

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(math.Round(sampleRate)),
		ChannelCount: r.channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	player := ctx.NewPlayer(r)
	defer player.Close()

	player.Play()

	if host != nil {
		return runTUI(host.host, r)
	}

	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}

	return player.Err()
}
