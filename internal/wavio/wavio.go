// Package wavio streams PCM WAV files as planar float64 chunks.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

var (
	// ErrInvalidFile is returned when the stream has no RIFF/WAVE header.
	ErrInvalidFile       = errors.New("wavio: not a valid wav file")
	// ErrUnsupportedFormat is returned for non-PCM data or an unsupported bit depth.
	ErrUnsupportedFormat = errors.New("wavio: only 16, 24 and 32 bit integer PCM is supported")
	// ErrChannelMismatch is returned when a buffer set has the wrong channel count.
	ErrChannelMismatch   = errors.New("wavio: buffer channel count does not match file")
)

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d bit", ErrUnsupportedFormat, bitDepth)
	}
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// Reader decodes a WAV stream chunk by chunk.
type Reader struct {
	closer     io.Closer
	dec        *wav.Decoder
	buf        *audio.IntBuffer
	channels   int
	sampleRate int
	bitDepth   int
	scale      float64
}

// Open opens the WAV file at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f

	return r, nil
}

// NewReader wraps an already open stream. Close does not close rs.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrInvalidFile
	}

	return &Reader{
		dec: dec,
		buf: &audio.IntBuffer{
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		channels:   format.NumChannels,
		sampleRate: format.SampleRate,
		bitDepth:   bitDepth,
		scale:      fullScale(bitDepth),
	}, nil
}

// Channels returns the number of interleaved channels in the file.
func (r *Reader) Channels() int { return r.channels }

// SampleRate returns the sample rate in Hz.
func (r *Reader) SampleRate() int { return r.sampleRate }

// BitDepth returns the PCM sample size in bits (16, 24 or 32).
func (r *Reader) BitDepth() int { return r.bitDepth }

// Read fills dst (one slice per channel, equal lengths) with up to
// len(dst[0]) frames scaled to [-1, 1) and returns the number of frames
// read. It returns 0, io.EOF once the data chunk is exhausted.
func (r *Reader) Read(dst [][]float64) (int, error) {
	if len(dst) != r.channels {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(dst), r.channels)
	}

	want := len(dst[0]) * r.channels
	if want == 0 {
		return 0, nil
	}
	if cap(r.buf.Data) < want {
		r.buf.Data = make([]int, want)
	}
	r.buf.Data = r.buf.Data[:want]

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("wavio: decode: %w", err)
	}

	frames := n / r.channels
	if frames == 0 {
		return 0, io.EOF
	}

	for i := range frames {
		for ch := range r.channels {
			dst[ch][i] = float64(r.buf.Data[i*r.channels+ch]) / r.scale
		}
	}

	return frames, nil
}

// Close releases the underlying file when the reader opened it.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Writer encodes planar float64 chunks as integer PCM.
type Writer struct {
	closer   io.Closer
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	channels int
	scale    float64
}

// Create creates (or truncates) the file at path.
func Create(path string, sampleRate, bitDepth, channels int) (*Writer, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(f, sampleRate, bitDepth, channels)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f

	return w, nil
}

// NewWriter encodes into ws. Close finalises the header but does not close ws.
func NewWriter(ws io.WriteSeeker, sampleRate, bitDepth, channels int) (*Writer, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrChannelMismatch, channels)
	}

	return &Writer{
		enc: wav.NewEncoder(ws, sampleRate, bitDepth, channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		scale:    fullScale(bitDepth),
	}, nil
}

// Write encodes the first frames samples of every channel in src.
// Samples outside [-1, 1) are clipped and NaN is written as silence.
func (w *Writer) Write(src [][]float64, frames int) error {
	if len(src) != w.channels {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(src), w.channels)
	}

	n := frames * w.channels
	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	w.buf.Data = w.buf.Data[:n]

	lo, hi := -w.scale, w.scale-1
	for i := range frames {
		for ch := range w.channels {
			v := math.Round(src[ch][i] * w.scale)
			if math.IsNaN(v) {
				v = 0
			}
			w.buf.Data[i*w.channels+ch] = int(math.Max(lo, math.Min(hi, v)))
		}
	}

	return w.enc.Write(w.buf)
}

// Close writes the final header sizes and closes the file if Create
// opened it.
func (w *Writer) Close() error {
	err := w.enc.Close()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}
