// Command tuner prints live pitch readings from a microphone, a WAV file or
// a generated test tone.
//
// Usage:
//
//	tuner [flags]
//
// Without -wav or -tone it captures from the default input device.
//
// Examples:
//
//	tuner
//	tuner -device "USB" -a4 442
//	tuner -scale just-major -root E
//	tuner -wav guitar.wav -realtime
//	tuner -tone 196 -scale ~/scales/meantone.scl
//	tuner -list-devices
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/internal/capture"
	"github.com/cwbudde/algo-tuner/internal/capture/live"
	"github.com/cwbudde/algo-tuner/tuner"
	"github.com/cwbudde/algo-tuner/tuning/pitch"
)

var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

type options struct {
	device      string
	listDevices bool
	wavPath     string
	realtime    bool
	toneHz      float64
	toneSeconds float64
	sampleRate  float64
	hop         int
	a4          string
	alpha       float64
	threshold   float64
	root        string
	scalePath   string
	libraryDir  string
	follow      bool
	voicedOnly  bool
}

func main() {
	var o options
	flag.StringVar(&o.device, "device", "", "input device name prefix (default: system input)")
	flag.BoolVar(&o.listDevices, "list-devices", false, "list input devices and exit")
	flag.StringVar(&o.wavPath, "wav", "", "analyse a PCM WAV file instead of live input")
	flag.BoolVar(&o.realtime, "realtime", false, "replay -wav at its natural speed")
	flag.Float64Var(&o.toneHz, "tone", 0, "analyse a generated tone at this frequency (self-test)")
	flag.Float64Var(&o.toneSeconds, "tone-seconds", 2, "length of the -tone signal")
	flag.Float64Var(&o.sampleRate, "rate", 0, "capture sample rate in Hz (default: device rate, 48000 for -tone)")
	flag.IntVar(&o.hop, "hop", core.DefaultHopSize, "samples per capture hop")
	flag.StringVar(&o.a4, "a4", "440", "calibration reference A4 in Hz (200-1000)")
	flag.Float64Var(&o.alpha, "alpha", tuner.DefaultSmoothingAlpha, "smoothing coefficient (0.05-0.5)")
	flag.Float64Var(&o.threshold, "threshold", -50, "silence gate in dBFS (-90-0)")
	flag.StringVar(&o.root, "root", "A", "scale root note name or index 0-11")
	flag.StringVar(&o.scalePath, "scale", "", "scale: .scl path or library name")
	flag.StringVar(&o.libraryDir, "library", "", "scale library directory (default: user config dir)")
	flag.BoolVar(&o.follow, "follow", false, "reload -scale when the library changes")
	flag.BoolVar(&o.voicedOnly, "voiced", false, "print only frames with a detected pitch")
	debug := flag.Bool("debug", false, "enable debug logging (adds source location)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tuner [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints pitch readings in 12-TET or relative to a Scala scale.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	initLogger(*debug)

	if o.listDevices {
		if err := printDevices(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	src, closeSrc, err := openSource(o)
	if err != nil {
		return err
	}
	defer closeSrc()

	engine, err := newEngine(o, src.SampleRate())
	if err != nil {
		return err
	}

	if o.scalePath != "" {
		ref, err := loadScale(o.scalePath, o.libraryDir)
		if err != nil {
			return err
		}
		if err := engine.LoadScale(ref.def); err != nil {
			return err
		}
		logger.Info("scale loaded", "description", ref.def.Description, "steps", ref.def.Count())
		if o.follow {
			if err := ref.follow(ctx, engine); err != nil {
				return err
			}
		}
	}

	engine.Start()
	defer engine.Stop()

	logger.Debug("engine started",
		"rate", src.SampleRate(), "hop", o.hop, "a4", engine.Settings().A4, "root", pitch.NoteName(engine.Scale().Root))

	if o.wavPath != "" || o.toneHz > 0 {
		return runOffline(ctx, src, engine, o)
	}
	return runLive(ctx, src, engine, o)
}

func newEngine(o options, sampleRate float64) (*tuner.Engine, error) {
	root, err := pitch.ParseRoot(o.root)
	if err != nil {
		return nil, err
	}

	a4, clamped, err := pitch.ParseCalibration(o.a4)
	if err != nil {
		return nil, err
	}
	if clamped {
		logger.Warn("A4 clamped", "input", o.a4, "applied", a4)
	}

	return tuner.NewEngine(
		tuner.WithSampleRate(sampleRate),
		tuner.WithA4(a4),
		tuner.WithSmoothingAlpha(o.alpha),
		tuner.WithThresholdDB(o.threshold),
		tuner.WithRoot(root),
	)
}

func printDevices() error {
	devices, err := live.Devices()
	if err != nil {
		return err
	}
	for _, d := range devices {
		mark := " "
		if d.Default {
			mark = "*"
		}
		fmt.Printf("%s %-40s %2d ch  %6.0f Hz\n", mark, d.Name, d.Channels, d.SampleRate)
	}
	return nil
}

func runLive(ctx context.Context, src capture.Source, engine *tuner.Engine, o options) error {
	sub := engine.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case st := <-sub.C:
				if o.voicedOnly && !st.Voiced() {
					continue
				}
				fmt.Printf("\r%s\x1b[K", formatState(st))
			}
		}
	}()

	err := feed(ctx, src, engine)
	cancel()
	<-done
	fmt.Println()
	return err
}

func runOffline(ctx context.Context, src capture.Source, engine *tuner.Engine, o options) error {
	rate := src.SampleRate()
	frames := 0
	hops := 0

	framer := capture.NewFramer(core.DefaultFrameSize)
	err := src.Run(ctx, func(hop []float32) {
		window := framer.Push(hop)
		hops += len(hop)
		engine.ProcessFloat32(window, rate)

		st := engine.State()
		frames++
		if o.voicedOnly && !st.Voiced() {
			return
		}
		fmt.Printf("%8.3fs  %s\n", float64(hops)/rate, formatState(st))
	})
	logger.Debug("input finished", "frames", frames, "seconds", float64(hops)/rate)
	return err
}

func feed(ctx context.Context, src capture.Source, engine *tuner.Engine) error {
	rate := src.SampleRate()
	framer := capture.NewFramer(core.DefaultFrameSize)
	return src.Run(ctx, func(hop []float32) {
		engine.ProcessFloat32(framer.Push(hop), rate)
	})
}
