//nolint:funcorder
package biquad

import (
	"fmt"
	"sync"

	archregistry "github.com/cwbudde/algo-biquad/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention is the textbook one:
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
//
// so the feedback terms are subtracted in the recurrence.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form I processing.
type Section struct {
	Coefficients

	x [2]float64 // x[n-1], x[n-2]
	y [2]float64 // y[n-1], y[n-2]
}

var (
	processImpl     archregistry.ProcessFn
	processImplName string
	processInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.B1*s.x[0] + s.B2*s.x[1] - s.A1*s.y[0] - s.A2*s.y[1]
	s.x[1], s.x[0] = s.x[0], x
	s.y[1], s.y[0] = s.y[0], y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	s.process(buf, buf)
}

// ProcessTo filters src into dst. Both slices must have the same length;
// dst may be src itself. A length mismatch panics with an error wrapping
// [ErrLengthMismatch] before any sample is processed. Zero-alloc.
func (s *Section) ProcessTo(dst, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src)))
	}

	s.process(dst, src)
}

func (s *Section) process(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	processInitOnce.Do(initProcessKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}
	h := archregistry.History{X1: s.x[0], X2: s.x[1], Y1: s.y[0], Y2: s.y[1]}

	h = processImpl(coeffs, h, dst, src)

	s.x = [2]float64{h.X1, h.X2}
	s.y = [2]float64{h.Y1, h.Y2}
}

func initProcessKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no Process kernel registered (missing generic fallback?)")
	}

	if entry.Process == nil {
		panic("biquad: selected kernel missing Process")
	}

	processImpl = entry.Process
	processImplName = entry.Name
}

// KernelName reports which block kernel was selected for this CPU.
func KernelName() string {
	processInitOnce.Do(initProcessKernel)
	return processImplName
}

// Reset clears the input and output history to zero (cold start).
func (s *Section) Reset() {
	s.x = [2]float64{}
	s.y = [2]float64{}
}

// State returns the current history as [x[n-1], x[n-2], y[n-1], y[n-2]].
func (s *Section) State() [4]float64 {
	return [4]float64{s.x[0], s.x[1], s.y[0], s.y[1]}
}

// SetState restores a previously saved history.
func (s *Section) SetState(state [4]float64) {
	s.x = [2]float64{state[0], state[1]}
	s.y = [2]float64{state[2], state[3]}
}
