// Package config loads the YAML description of a biquad cascade and the
// streaming parameters around it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"gopkg.in/yaml.v3"
)

// Defaults and limits for the streaming parameters.
const (
	DefaultSampleRate = 48000 // Hz
	DefaultBlockSize  = 480   // 10 ms at 48 kHz
	DefaultLogLevel   = "info"

	MinSampleRate = 8000   // Hz
	MaxSampleRate = 384000 // Hz
	MaxBlockSize  = 1 << 16
)

var (
	ErrInvalidSampleRate = errors.New("config: sample_rate out of range")
	ErrInvalidBlockSize  = errors.New("config: block_size out of range")
	ErrAmbiguousCascade  = errors.New("config: cascade sets both sections and replicate")
	ErrInvalidReplicate  = errors.New("config: replicate.count must not be negative")
)

// Config is the top-level file layout.
type Config struct {
	SampleRate float64 `yaml:"sample_rate"` // Sample rate in Hz, used for response analysis.
	BlockSize  int     `yaml:"block_size"`  // Frames per processing chunk.
	LogLevel   string  `yaml:"log_level"`   // logrus level name.
	Cascade    Cascade `yaml:"cascade"`
}

// Cascade describes the sections either as an explicit pole/zero list or as
// one coefficient set replicated. Neither set means the identity cascade.
type Cascade struct {
	Sections  []Section  `yaml:"sections,omitempty"`
	Replicate *Replicate `yaml:"replicate,omitempty"`
}

// Section is one conjugate pole/zero pair with a gain.
type Section struct {
	Zero Complex `yaml:"zero"`
	Pole Complex `yaml:"pole"`
	Gain float64 `yaml:"gain"`
}

// Complex is a complex number in the file format.
type Complex struct {
	Re float64 `yaml:"re"`
	Im float64 `yaml:"im"`
}

// Replicate is one coefficient set copied Count times.
type Replicate struct {
	Count        int          `yaml:"count"`
	Coefficients Coefficients `yaml:"coefficients"`
}

// Coefficients mirrors biquad.Coefficients with file field names.
type Coefficients struct {
	B0 float64 `yaml:"b0"`
	B1 float64 `yaml:"b1"`
	B2 float64 `yaml:"b2"`
	A1 float64 `yaml:"a1"`
	A2 float64 `yaml:"a2"`
}

// Default returns the built-in configuration: identity cascade at the
// default rate and block size.
func Default() *Config {
	return &Config{
		SampleRate: DefaultSampleRate,
		BlockSize:  DefaultBlockSize,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads and validates the YAML file at path. Fields missing from the
// file keep their defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates YAML config data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges and that the cascade description is unambiguous.
// Pole stability is not checked.
func (c *Config) Validate() error {
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %v (want %d..%d)", ErrInvalidSampleRate, c.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.BlockSize <= 0 || c.BlockSize > MaxBlockSize {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidBlockSize, c.BlockSize, MaxBlockSize)
	}
	if len(c.Cascade.Sections) > 0 && c.Cascade.Replicate != nil {
		return ErrAmbiguousCascade
	}
	if r := c.Cascade.Replicate; r != nil && r.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReplicate, r.Count)
	}

	return nil
}

// Build returns a fresh cascade for the description. Every call returns a
// new instance with cold-start history, so Build can serve as a per-channel
// factory.
func (c *Cascade) Build() *biquad.Cascade {
	if r := c.Replicate; r != nil {
		return biquad.NewReplicated(r.Coefficients.biquad(), r.Count)
	}

	params := make([]biquad.PoleZero, len(c.Sections))
	for i, s := range c.Sections {
		params[i] = biquad.PoleZero{
			Zero: complex(s.Zero.Re, s.Zero.Im),
			Pole: complex(s.Pole.Re, s.Pole.Im),
			Gain: s.Gain,
		}
	}

	return biquad.NewFromPoleZeros(params)
}

func (c Coefficients) biquad() biquad.Coefficients {
	return biquad.Coefficients{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2}
}
