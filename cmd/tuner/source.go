package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/internal/capture"
	"github.com/cwbudde/algo-tuner/internal/capture/live"
)

// openSource picks the input for the given flags and returns a release
// function.
func openSource(o options) (capture.Source, func(), error) {
	switch {
	case o.wavPath != "":
		f, err := os.Open(o.wavPath)
		if err != nil {
			return nil, nil, err
		}
		src, err := capture.OpenWAV(f, capture.WithHopSize(o.hop), capture.WithRealtime(o.realtime))
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("%s: %w", o.wavPath, err)
		}
		logger.Info("replaying file", "path", o.wavPath, "rate", src.SampleRate(), "channels", src.Channels())
		return src, func() { f.Close() }, nil

	case o.toneHz > 0:
		src, err := newToneSource(o.toneHz, o.toneSeconds, o.sampleRate, o.hop)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	}

	src, err := live.Open(live.WithDevice(o.device), live.WithSampleRate(o.sampleRate), live.WithHopSize(o.hop))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("capturing", "device", src.DeviceName(), "rate", src.SampleRate())
	return src, func() {
		if err := src.Close(); err != nil {
			logger.Warn("close input", "err", err)
		}
	}, nil
}

// toneSource delivers a generated harmonic tone in capture-sized hops.
type toneSource struct {
	rate float64
	hops [][]float64
	buf  []float32
}

func newToneSource(freq, seconds, rate float64, hop int) (*toneSource, error) {
	gen := signal.NewGenerator([]core.FrameOption{
		core.WithSampleRate(rate),
		core.WithFrameSize(max(hop, core.DefaultFrameSize)),
		core.WithHopSize(hop),
	})
	cfg := gen.Config()

	n := int(seconds * cfg.SampleRate)
	tone, err := gen.Harmonic(freq, []float64{0.4, 0.2, 0.1}, n)
	if err != nil {
		return nil, err
	}
	return &toneSource{
		rate: cfg.SampleRate,
		hops: gen.Hops(tone),
		buf:  make([]float32, cfg.HopSize),
	}, nil
}

func (s *toneSource) SampleRate() float64 {
	return s.rate
}

func (s *toneSource) Run(ctx context.Context, fn func(hop []float32)) error {
	for _, hop := range s.hops {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, v := range hop {
			s.buf[i] = float32(v)
		}
		fn(s.buf[:len(hop)])
	}
	return nil
}
