package bank

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"golang.org/x/sync/errgroup"
)

// Errors returned by New and the process methods. Nothing is processed when
// one of them is returned.
var (
	// ErrNoChannels is returned by New for a channel count below one.
	ErrNoChannels       = errors.New("bank: channel count must be positive")
	// ErrNilFactory is returned by New when factory is nil.
	ErrNilFactory       = errors.New("bank: cascade factory is nil")
	// ErrSharedCascade is returned by New when factory hands out the same cascade twice.
	ErrSharedCascade    = errors.New("bank: factory returned a cascade already owned by another channel")
	// ErrChannelMismatch is returned when the number of buffers differs from Channels.
	ErrChannelMismatch  = errors.New("bank: buffer channel count does not match bank")
	// ErrFrameAlignment is returned by ProcessInterleaved for a partial frame.
	ErrFrameAlignment   = errors.New("bank: interleaved length is not a multiple of the channel count")
	// ErrChannelLengthGap is returned when planar buffers have different lengths.
	ErrChannelLengthGap = errors.New("bank: channel buffers differ in length")
)

// Factory returns a new cascade for one channel. Every call must return a
// distinct instance.
type Factory func() *biquad.Cascade

// Bank holds one cascade per channel.
type Bank struct {
	cascades []*biquad.Cascade
	scratch  []float64
}

// New builds a bank of channels cascades by calling factory once per channel.
func New(channels int, factory Factory) (*Bank, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoChannels, channels)
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	b := &Bank{cascades: make([]*biquad.Cascade, channels)}
	seen := make(map[*biquad.Cascade]struct{}, channels)

	for ch := range b.cascades {
		c := factory()
		if c == nil {
			return nil, fmt.Errorf("bank: factory returned nil for channel %d", ch)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w (channel %d)", ErrSharedCascade, ch)
		}
		seen[c] = struct{}{}
		b.cascades[ch] = c
	}

	return b, nil
}

// Channels returns the number of channels.
func (b *Bank) Channels() int {
	return len(b.cascades)
}

// Cascade returns the cascade owned by channel ch.
func (b *Bank) Cascade(ch int) *biquad.Cascade {
	return b.cascades[ch]
}

// Process filters planar src into planar dst, one cascade per channel.
// All buffers are validated before any channel is touched.
func (b *Bank) Process(dst, src [][]float64) error {
	if err := b.checkPlanar(src); err != nil {
		return err
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d channels, want %d", ErrChannelMismatch, len(dst), len(src))
	}
	for ch := range dst {
		if len(dst[ch]) != len(src[ch]) {
			return fmt.Errorf("channel %d: %w: dst=%d src=%d",
				ch, biquad.ErrLengthMismatch, len(dst[ch]), len(src[ch]))
		}
	}

	for ch, c := range b.cascades {
		c.Process(dst[ch], src[ch])
	}

	return nil
}

// ProcessInPlace filters each planar channel buffer in place.
func (b *Bank) ProcessInPlace(bufs [][]float64) error {
	if err := b.checkPlanar(bufs); err != nil {
		return err
	}

	for ch, c := range b.cascades {
		c.ProcessInPlace(bufs[ch])
	}

	return nil
}

// ProcessInterleaved filters frame-major samples in place. The scratch
// buffer grows to the largest chunk seen and is reused afterwards.
func (b *Bank) ProcessInterleaved(buf []float64) error {
	channels := len(b.cascades)
	if len(buf)%channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrFrameAlignment, len(buf), channels)
	}

	frames := len(buf) / channels
	if cap(b.scratch) < frames {
		b.scratch = make([]float64, frames)
	}
	scratch := b.scratch[:frames]

	for ch, c := range b.cascades {
		for i := range scratch {
			scratch[i] = buf[i*channels+ch]
		}
		c.ProcessInPlace(scratch)
		for i, v := range scratch {
			buf[i*channels+ch] = v
		}
	}

	return nil
}

// ProcessParallel filters planar buffers in place with one goroutine per
// channel, bounded by GOMAXPROCS. ctx is checked before work starts; once
// started, every channel runs to completion so the channels never drift
// apart in stream position.
func (b *Bank) ProcessParallel(ctx context.Context, bufs [][]float64) error {
	if err := b.checkPlanar(bufs); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for ch, c := range b.cascades {
		buf := bufs[ch]
		g.Go(func() error {
			c.ProcessInPlace(buf)
			return nil
		})
	}

	return g.Wait()
}

// Reset returns every channel's cascade to cold start.
func (b *Bank) Reset() {
	for _, c := range b.cascades {
		c.Reset()
	}
}

func (b *Bank) checkPlanar(bufs [][]float64) error {
	if len(bufs) != len(b.cascades) {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(bufs), len(b.cascades))
	}
	for ch := 1; ch < len(bufs); ch++ {
		if len(bufs[ch]) != len(bufs[0]) {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLengthGap, ch, len(bufs[ch]), len(bufs[0]))
		}
	}
	return nil
}
