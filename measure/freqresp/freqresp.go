package freqresp

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultSampleRate = 48000.0
	defaultFFTSize    = 4096
)

var (
	ErrInvalidSampleRate = errors.New("freqresp: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("freqresp: FFT size must be a power of two >= 2")
	ErrNilCascade        = errors.New("freqresp: cascade is nil")
)

// Config holds measurement parameters.
type Config struct {
	SampleRate float64
	FFTSize    int
}

// Option mutates a Config.
type Option func(*Config)

// WithSampleRate sets the sample rate used to label bins.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) { cfg.SampleRate = sampleRate }
}

// WithFFTSize sets the impulse response length and FFT size.
func WithFFTSize(n int) Option {
	return func(cfg *Config) { cfg.FFTSize = n }
}

func applyOptions(opts []Option) (Config, error) {
	cfg := Config{SampleRate: defaultSampleRate, FFTSize: defaultFFTSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}
	if cfg.FFTSize < 2 || bits.OnesCount(uint(cfg.FFTSize)) != 1 {
		return cfg, fmt.Errorf("%w: %d", ErrInvalidFFTSize, cfg.FFTSize)
	}

	return cfg, nil
}

// Result is a measured magnitude response over bins 0..FFTSize/2.
type Result struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64 // linear |H| per bin
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (r *Result) BinFrequency(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// Bin returns the bin nearest to freqHz, clamped to the valid range.
func (r *Result) Bin(freqHz float64) int {
	k := int(math.Round(freqHz * float64(r.FFTSize) / r.SampleRate))
	return max(0, min(k, len(r.Magnitude)-1))
}

// MagnitudeDB returns the measured magnitude in dB at the bin nearest to
// freqHz. A zero magnitude yields -Inf.
func (r *Result) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(r.Magnitude[r.Bin(freqHz)])
}

// Measure records cfg.FFTSize samples of the cascade impulse response and
// returns its magnitude spectrum. The cascade history is left as it was.
func Measure(c *biquad.Cascade, opts ...Option) (*Result, error) {
	if c == nil {
		return nil, ErrNilCascade
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	ir := c.ImpulseResponse(cfg.FFTSize)

	in := make([]complex128, cfg.FFTSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("freqresp: fft plan: %w", err)
	}

	out := make([]complex128, cfg.FFTSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("freqresp: forward fft: %w", err)
	}

	half := cfg.FFTSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	for k := range half {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	return &Result{
		SampleRate: cfg.SampleRate,
		FFTSize:    cfg.FFTSize,
		Magnitude:  mag,
	}, nil
}

// Point pairs analytic and measured magnitude at one frequency.
type Point struct {
	FreqHz     float64 // bin centre nearest the requested frequency
	AnalyticDB float64
	MeasuredDB float64
}

// Compare measures the cascade and evaluates the analytic response at the
// bin centres nearest to each requested frequency.
func Compare(c *biquad.Cascade, freqs []float64, opts ...Option) ([]Point, error) {
	res, err := Measure(c, opts...)
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(freqs))
	for i, f := range freqs {
		fb := res.BinFrequency(res.Bin(f))
		points[i] = Point{
			FreqHz:     fb,
			AnalyticDB: c.MagnitudeDB(fb, res.SampleRate),
			MeasuredDB: res.MagnitudeDB(fb),
		}
	}

	return points, nil
}
