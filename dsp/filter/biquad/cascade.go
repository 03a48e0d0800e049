package biquad

import "fmt"

// Cascade is an ordered, fixed-length sequence of biquad sections processed
// in series. Section order is significant: the overall transfer function is
// the same in any order, but rounding is not.
//
// A Cascade keeps every section's history across calls, so a stream may be
// fed in chunks of any size. A Cascade with no sections is the identity.
type Cascade struct {
	sections []Section
}

// NewCascade creates a cascade with one section per coefficient set, in
// argument order.
func NewCascade(coeffs ...Coefficients) *Cascade {
	c := &Cascade{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// NewReplicated creates a cascade of n sections that share the same
// coefficients but each keep their own history. n must not be negative.
func NewReplicated(coeffs Coefficients, n int) *Cascade {
	if n < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeCount, n))
	}

	c := &Cascade{sections: make([]Section, n)}
	for i := range c.sections {
		c.sections[i].Coefficients = coeffs
	}

	return c
}

// NewFromPoleZeros creates a cascade with one section per description, in
// list order. See [PoleZero.Coefficients] for the conversion.
func NewFromPoleZeros(params []PoleZero) *Cascade {
	c := &Cascade{sections: make([]Section, len(params))}
	for i := range params {
		c.sections[i].Coefficients = params[i].Coefficients()
	}

	return c
}

// Process filters src into dst through every section. The slices must have
// equal length; a mismatch panics with an error wrapping [ErrLengthMismatch]
// and leaves both the buffers and the history untouched.
//
// The first section reads src and writes dst, the remaining sections run in
// place on dst. With no sections src is copied to dst verbatim.
func (c *Cascade) Process(dst, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src)))
	}

	if len(c.sections) == 0 {
		copy(dst, src)
		return
	}

	c.sections[0].process(dst, src)
	for i := 1; i < len(c.sections); i++ {
		c.sections[i].process(dst, dst)
	}
}

// ProcessInPlace filters buf in place through every section in order.
func (c *Cascade) ProcessInPlace(buf []float64) {
	for i := range c.sections {
		c.sections[i].process(buf, buf)
	}
}

// ProcessSample cascades one input sample through all sections in order.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessFloat32 filters single-precision src into dst. Arithmetic and
// history stay in float64; only the samples are converted. The stream
// state is shared with the float64 methods, so calls may be mixed.
func (c *Cascade) ProcessFloat32(dst, src []float32) {
	if len(dst) != len(src) {
		panic(fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src)))
	}

	for i, v := range src {
		dst[i] = float32(c.ProcessSample(float64(v)))
	}
}

// Reset clears all section histories, returning the cascade to cold start.
func (c *Cascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per section).
func (c *Cascade) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Cascade) NumSections() int {
	return len(c.sections)
}

// Section returns a pointer to the i-th section for inspection.
func (c *Cascade) Section(i int) *Section {
	return &c.sections[i]
}

// Coefficients returns a copy of every section's coefficients in order.
func (c *Cascade) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// State returns a snapshot of all section histories.
func (c *Cascade) State() [][4]float64 {
	states := make([][4]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section histories.
// The slice length must match NumSections.
func (c *Cascade) SetState(states [][4]float64) {
	if len(states) != len(c.sections) {
		panic(fmt.Errorf("%w: got %d, want %d", ErrStateSize, len(states), len(c.sections)))
	}

	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
