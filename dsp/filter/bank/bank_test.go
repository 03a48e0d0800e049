package bank

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func dcBlocker() *biquad.Cascade {
	return biquad.NewFromPoleZeros([]biquad.PoleZero{
		{Zero: 1, Pole: complex(0.97, 0.02), Gain: 0.98},
		{Zero: 1, Pole: 0.995, Gain: 1},
	})
}

func stereoInput(n int) [][]float64 {
	return [][]float64{
		testutil.DeterministicNoise(1, 1, n),
		testutil.DeterministicSine(997, 48000, 0.8, n),
	}
}

// reference filters each channel through its own fresh cascade.
func reference(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for ch, data := range in {
		out[ch] = make([]float64, len(data))
		dcBlocker().Process(out[ch], data)
	}
	return out
}

func clone(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for ch := range in {
		out[ch] = append([]float64(nil), in[ch]...)
	}
	return out
}

func TestNew(t *testing.T) {
	b, err := New(3, dcBlocker)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Channels())
	assert.NotSame(t, b.Cascade(0), b.Cascade(1))
}

func TestNewErrors(t *testing.T) {
	_, err := New(0, dcBlocker)
	assert.ErrorIs(t, err, ErrNoChannels)

	_, err = New(2, nil)
	assert.ErrorIs(t, err, ErrNilFactory)

	shared := dcBlocker()
	_, err = New(2, func() *biquad.Cascade { return shared })
	assert.ErrorIs(t, err, ErrSharedCascade)

	_, err = New(1, func() *biquad.Cascade { return nil })
	assert.Error(t, err)
}

func TestProcessMatchesPerChannelCascades(t *testing.T) {
	in := stereoInput(256)
	want := reference(in)

	b, err := New(2, dcBlocker)
	require.NoError(t, err)

	out := [][]float64{make([]float64, 256), make([]float64, 256)}
	require.NoError(t, b.Process(out, in))

	for ch := range want {
		testutil.RequireSliceNearlyEqual(t, out[ch], want[ch], 0)
	}
}

func TestProcessChunkedMatchesWhole(t *testing.T) {
	in := stereoInput(480)
	want := reference(in)

	b, err := New(2, dcBlocker)
	require.NoError(t, err)

	got := clone(in)
	for start := 0; start < 480; start += 160 {
		chunk := [][]float64{got[0][start : start+160], got[1][start : start+160]}
		require.NoError(t, b.ProcessInPlace(chunk))
	}

	for ch := range want {
		testutil.RequireSliceNearlyEqual(t, got[ch], want[ch], 1e-12)
	}
}

func TestProcessValidation(t *testing.T) {
	b, err := New(2, dcBlocker)
	require.NoError(t, err)

	err = b.Process([][]float64{make([]float64, 4)}, [][]float64{make([]float64, 4), make([]float64, 4)})
	assert.ErrorIs(t, err, ErrChannelMismatch)

	err = b.ProcessInPlace([][]float64{make([]float64, 4)})
	assert.ErrorIs(t, err, ErrChannelMismatch)

	err = b.ProcessInPlace([][]float64{make([]float64, 4), make([]float64, 3)})
	assert.ErrorIs(t, err, ErrChannelLengthGap)

	src := [][]float64{testutil.Ones(4), testutil.Ones(4)}
	dst := [][]float64{make([]float64, 4), make([]float64, 3)}
	err = b.Process(dst, src)
	assert.ErrorIs(t, err, biquad.ErrLengthMismatch)

	// nothing was processed by the rejected calls
	for ch := range 2 {
		for _, st := range b.Cascade(ch).State() {
			assert.Equal(t, [4]float64{}, st)
		}
	}
}

func TestProcessInterleaved(t *testing.T) {
	in := stereoInput(300)
	want := testutil.Interleave(reference(in))

	b, err := New(2, dcBlocker)
	require.NoError(t, err)

	buf := testutil.Interleave(in)
	// uneven chunk sizes exercise scratch reuse and growth
	for _, span := range [][2]int{{0, 64}, {64, 66}, {66, 400}, {400, 600}} {
		require.NoError(t, b.ProcessInterleaved(buf[span[0]:span[1]]))
	}

	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)

	assert.ErrorIs(t, b.ProcessInterleaved(make([]float64, 3)), ErrFrameAlignment)
}

func TestProcessParallel(t *testing.T) {
	in := [][]float64{
		testutil.DeterministicNoise(1, 1, 512),
		testutil.DeterministicNoise(2, 1, 512),
		testutil.DeterministicNoise(3, 1, 512),
		testutil.DeterministicNoise(4, 1, 512),
	}
	want := reference(in)

	b, err := New(len(in), dcBlocker)
	require.NoError(t, err)

	got := clone(in)
	require.NoError(t, b.ProcessParallel(context.Background(), got))

	for ch := range want {
		testutil.RequireSliceNearlyEqual(t, got[ch], want[ch], 0)
	}
}

func TestProcessParallelCanceled(t *testing.T) {
	b, err := New(2, dcBlocker)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bufs := [][]float64{testutil.Ones(8), testutil.Ones(8)}
	assert.ErrorIs(t, b.ProcessParallel(ctx, bufs), context.Canceled)
	assert.Equal(t, testutil.Ones(8), bufs[0])
}

func TestReset(t *testing.T) {
	b, err := New(2, dcBlocker)
	require.NoError(t, err)

	require.NoError(t, b.ProcessInPlace([][]float64{testutil.Ones(16), testutil.Ones(16)}))
	b.Reset()

	for ch := range 2 {
		for _, st := range b.Cascade(ch).State() {
			assert.Equal(t, [4]float64{}, st)
		}
	}
}
