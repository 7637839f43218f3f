package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the RIFF format tag of integer PCM.
const wavFormatPCM = 1

var (
	// ErrInvalidWAV is returned for input that is not a RIFF/WAVE file.
	ErrInvalidWAV = errors.New("capture: invalid WAV file")
	// ErrUnsupportedWAV is returned for WAV encodings other than integer PCM.
	ErrUnsupportedWAV = errors.New("capture: only integer PCM WAV is supported")
)

// WAVOption configures a WAVSource.
type WAVOption func(*WAVSource)

// WithHopSize sets the samples per hop (default 2048).
func WithHopSize(n int) WAVOption {
	return func(s *WAVSource) {
		if n > 0 {
			s.hop = n
		}
	}
}

// WithRealtime paces hops at the file's sample rate instead of delivering
// them as fast as possible.
func WithRealtime(enabled bool) WAVOption {
	return func(s *WAVSource) {
		s.realtime = enabled
	}
}

// WAVSource replays an integer PCM WAV file as mono hops. Multi-channel
// files are averaged down to mono.
type WAVSource struct {
	dec      *wav.Decoder
	channels int
	rate     float64
	scale    float64
	offset   int

	hop      int
	realtime bool

	pcm *audio.IntBuffer
	out []float32
}

// OpenWAV reads the header of r and prepares it for replay.
func OpenWAV(r io.ReadSeeker, opts ...WAVOption) (*WAVSource, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWAV, dec.WavAudioFormat)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrInvalidWAV
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedWAV, bitDepth)
	}

	s := &WAVSource{
		dec:      dec,
		channels: format.NumChannels,
		rate:     float64(format.SampleRate),
		scale:    float64(int64(1) << (bitDepth - 1)),
		hop:      DefaultHopSize,
	}
	// 8-bit WAV samples are unsigned.
	if bitDepth == 8 {
		s.offset = 128
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.pcm = &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, s.hop*s.channels),
		SourceBitDepth: bitDepth,
	}
	s.out = make([]float32, s.hop)

	return s, nil
}

// SampleRate returns the file's sample rate.
func (s *WAVSource) SampleRate() float64 {
	return s.rate
}

// Channels returns the channel count of the file.
func (s *WAVSource) Channels() int {
	return s.channels
}

// Run delivers the file hop by hop. A final partial hop is delivered as a
// shorter slice.
func (s *WAVSource) Run(ctx context.Context, fn func(hop []float32)) error {
	var ticker *time.Ticker
	if s.realtime {
		ticker = time.NewTicker(time.Duration(float64(s.hop) / s.rate * float64(time.Second)))
		defer ticker.Stop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := s.dec.PCMBuffer(s.pcm)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("capture: decode WAV: %w", err)
		}
		frames := n / s.channels
		if frames == 0 {
			return nil
		}

		s.downmix(s.pcm.Data[:frames*s.channels])
		fn(s.out[:frames])

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}
}

func (s *WAVSource) downmix(data []int) {
	gain := 1 / (s.scale * float64(s.channels))
	for i := range len(data) / s.channels {
		var sum int
		for _, v := range data[i*s.channels : (i+1)*s.channels] {
			sum += v - s.offset
		}
		s.out[i] = float32(float64(sum) * gain)
	}
}
