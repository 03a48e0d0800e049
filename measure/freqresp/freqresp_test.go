package freqresp

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowpass() *biquad.Cascade {
	return biquad.NewCascade(
		biquad.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		biquad.Coefficients{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	)
}

func TestMeasureMatchesAnalytic(t *testing.T) {
	c := lowpass()
	res, err := Measure(c, WithFFTSize(1024), WithSampleRate(48000))
	require.NoError(t, err)
	require.Len(t, res.Magnitude, 513)

	for _, k := range []int{0, 1, 17, 100, 256, 400} {
		f := res.BinFrequency(k)
		h := c.Response(f, 48000)
		want := math.Hypot(real(h), imag(h))
		assert.InDelta(t, want, res.Magnitude[k], 1e-9, "bin %d (%.1f Hz)", k, f)
	}
}

func TestMeasurePreservesHistory(t *testing.T) {
	c := lowpass()
	c.ProcessInPlace([]float64{1, -0.5, 0.25})
	before := c.State()

	_, err := Measure(c, WithFFTSize(256))
	require.NoError(t, err)
	assert.Equal(t, before, c.State())
}

func TestMeasureIdentity(t *testing.T) {
	res, err := Measure(biquad.NewCascade(), WithFFTSize(64))
	require.NoError(t, err)
	for k, m := range res.Magnitude {
		assert.InDelta(t, 1.0, m, 1e-12, "bin %d", k)
	}
}

func TestMeasureValidation(t *testing.T) {
	_, err := Measure(nil)
	assert.ErrorIs(t, err, ErrNilCascade)

	_, err = Measure(lowpass(), WithFFTSize(1000))
	assert.ErrorIs(t, err, ErrInvalidFFTSize)

	_, err = Measure(lowpass(), WithFFTSize(1))
	assert.ErrorIs(t, err, ErrInvalidFFTSize)

	_, err = Measure(lowpass(), WithSampleRate(0))
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = Measure(lowpass(), WithSampleRate(math.NaN()))
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestBinClamping(t *testing.T) {
	r := &Result{SampleRate: 48000, FFTSize: 8, Magnitude: make([]float64, 5)}
	assert.Equal(t, 0, r.Bin(-100))
	assert.Equal(t, 4, r.Bin(96000))
	assert.Equal(t, 1, r.Bin(6000))
	assert.InDelta(t, 12000.0, r.BinFrequency(2), 1e-12)
}

func TestCompare(t *testing.T) {
	points, err := Compare(lowpass(), []float64{100, 1000, 10000}, WithFFTSize(2048))
	require.NoError(t, err)
	require.Len(t, points, 3)

	for _, p := range points {
		assert.InDelta(t, p.AnalyticDB, p.MeasuredDB, 1e-6, "%.1f Hz", p.FreqHz)
	}
	assert.Greater(t, points[0].AnalyticDB, points[2].AnalyticDB)
}
