// Package live captures microphone input through PortAudio.
//
// It is the only cgo-dependent part of the tuner; everything downstream
// works on the capture.Source interface and is tested with WAV input.
package live

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-tuner/internal/capture"
	"github.com/gordonklaus/portaudio"
)

// ErrNoInputDevice is returned when no capture device matches.
var ErrNoInputDevice = errors.New("live: no input device")

// Option configures a Source.
type Option func(*config)

type config struct {
	device     string
	sampleRate float64
	hop        int
}

// WithDevice selects the first input device whose name starts with prefix
// (case-insensitive). The default input device is used otherwise.
func WithDevice(prefix string) Option {
	return func(c *config) {
		c.device = prefix
	}
}

// WithSampleRate requests a capture rate. Zero keeps the device default.
func WithSampleRate(hz float64) Option {
	return func(c *config) {
		if hz > 0 {
			c.sampleRate = hz
		}
	}
}

// WithHopSize sets the frames per buffer (default capture.DefaultHopSize).
func WithHopSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.hop = n
		}
	}
}

// Device describes an input device.
type Device struct {
	Name       string
	Channels   int
	SampleRate float64
	Default    bool
}

// Devices lists the available input devices.
func Devices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("live: initialize: %w", err)
	}
	defer portaudio.Terminate()

	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("live: list devices: %w", err)
	}
	def, _ := portaudio.DefaultInputDevice()

	var out []Device
	for _, d := range all {
		if d.MaxInputChannels < 1 {
			continue
		}
		out = append(out, Device{
			Name:       d.Name,
			Channels:   d.MaxInputChannels,
			SampleRate: d.DefaultSampleRate,
			Default:    def != nil && d.Index == def.Index,
		})
	}
	return out, nil
}

// Source is a mono blocking input stream.
type Source struct {
	stream *portaudio.Stream
	buf    []float32
	rate   float64
	device string
}

var _ capture.Source = (*Source)(nil)

// Open initializes PortAudio and opens a mono input stream. Close must be
// called to release it.
func Open(opts ...Option) (*Source, error) {
	cfg := config{hop: capture.DefaultHopSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("live: initialize: %w", err)
	}

	dev, err := findDevice(cfg.device)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	params := portaudio.HighLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.Output.Channels = 0
	if cfg.sampleRate > 0 {
		params.SampleRate = cfg.sampleRate
	}
	params.FramesPerBuffer = cfg.hop

	s := &Source{
		buf:    make([]float32, cfg.hop),
		rate:   params.SampleRate,
		device: dev.Name,
	}
	s.stream, err = portaudio.OpenStream(params, s.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("live: open %q: %w", dev.Name, err)
	}
	return s, nil
}

func findDevice(prefix string) (*portaudio.DeviceInfo, error) {
	if prefix == "" {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil || dev == nil {
			return nil, fmt.Errorf("%w: %v", ErrNoInputDevice, err)
		}
		return dev, nil
	}

	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("live: list devices: %w", err)
	}
	want := strings.ToLower(prefix)
	for _, d := range all {
		if d.MaxInputChannels > 0 && strings.HasPrefix(strings.ToLower(d.Name), want) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoInputDevice, prefix)
}

// SampleRate returns the negotiated stream rate.
func (s *Source) SampleRate() float64 {
	return s.rate
}

// DeviceName returns the name of the opened device.
func (s *Source) DeviceName() string {
	return s.device
}

// Run starts the stream and delivers hops until ctx is cancelled.
// Input overflows are ignored; the next full buffer is delivered instead.
func (s *Source) Run(ctx context.Context, fn func(hop []float32)) error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("live: start: %w", err)
	}
	defer s.stream.Stop()

	for ctx.Err() == nil {
		if err := s.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
			return fmt.Errorf("live: read: %w", err)
		}
		fn(s.buf)
	}
	return ctx.Err()
}

// Close closes the stream and terminates PortAudio.
func (s *Source) Close() error {
	err := s.stream.Close()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
