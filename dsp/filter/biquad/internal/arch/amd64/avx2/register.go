//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-biquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "unrolled4",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Process:   process,
	})
}

// process is a 4x-unrolled scalar kernel selected for AVX2-capable CPUs. It
// uses no AVX2 instructions; the level only gates it to CPUs where the
// wider out-of-order window pays for the unrolling.
// The recurrence is serial in y, so unrolling only removes loop overhead;
// each group reads all four inputs before storing, which keeps dst == src safe.
func process(c registry.Coefficients, h registry.History, dst, src []float64) registry.History {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := h.X1, h.X2, h.Y1, h.Y2

	n := len(src)
	if n == 0 {
		return h
	}
	_ = dst[n-1]

	i := 0
	for ; i+3 < n; i += 4 {
		s0, s1, s2, s3 := src[i], src[i+1], src[i+2], src[i+3]

		o0 := b0*s0 + b1*x1 + b2*x2 - a1*y1 - a2*y2
		o1 := b0*s1 + b1*s0 + b2*x1 - a1*o0 - a2*y1
		o2 := b0*s2 + b1*s1 + b2*s0 - a1*o1 - a2*o0
		o3 := b0*s3 + b1*s2 + b2*s1 - a1*o2 - a2*o1

		dst[i] = o0
		dst[i+1] = o1
		dst[i+2] = o2
		dst[i+3] = o3

		x2, x1 = s2, s3
		y2, y1 = o2, o3
	}

	for ; i < n; i++ {
		x := src[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		dst[i] = y
	}

	return registry.History{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
