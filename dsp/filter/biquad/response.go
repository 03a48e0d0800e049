package biquad

import (
	"math"
	"math/cmplx"
)

// unitDelay returns z^-1 on the unit circle at freqHz.
func unitDelay(freqHz, sampleRate float64) complex128 {
	return cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
}

// eval evaluates H at the given z^-1 in Horner form.
func (c *Coefficients) eval(zi complex128) complex128 {
	num := complex(c.B0, 0) + zi*(complex(c.B1, 0)+zi*complex(c.B2, 0))
	den := 1 + zi*(complex(c.A1, 0)+zi*complex(c.A2, 0))
	return num / den
}

// Response returns H(e^jw) at freqHz for the given sample rate.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	return c.eval(unitDelay(freqHz, sampleRate))
}

// MagnitudeSquared returns |H(e^jw)|^2 without complex arithmetic.
//
// For a polynomial p0 + p1 z^-1 + p2 z^-2 on the unit circle,
// |P|^2 = p0²+p1²+p2² + 2(p0p1+p1p2)cos w + 2p0p2 cos 2w.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	cw, c2w := math.Cos(w), math.Cos(2*w)

	power := func(p0, p1, p2 float64) float64 {
		return p0*p0 + p1*p1 + p2*p2 + 2*(p0*p1+p1*p2)*cw + 2*p0*p2*c2w
	}

	return power(c.B0, c.B1, c.B2) / power(1, c.A1, c.A2)
}

// MagnitudeDB returns the magnitude response in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(e^jw) in radians, in [-pi, pi].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Response returns the product of the section responses. A cascade with no
// sections returns 1.
func (c *Cascade) Response(freqHz, sampleRate float64) complex128 {
	zi := unitDelay(freqHz, sampleRate)
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].eval(zi)
	}
	return h
}

// MagnitudeDB returns the cascade magnitude response in dB.
func (c *Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n samples of the section's impulse
// response from cold start. The stream history is left untouched.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	defer s.SetState(saved)

	s.Reset()
	return impulse(n, s.ProcessSample)
}

// ImpulseResponse returns the first n samples of the cascade's impulse
// response from cold start. The stream history is left untouched.
func (c *Cascade) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer c.SetState(saved)

	c.Reset()
	return impulse(n, c.ProcessSample)
}

func impulse(n int, step func(float64) float64) []float64 {
	ir := make([]float64, n)
	ir[0] = step(1)
	for i := 1; i < n; i++ {
		ir[i] = step(0)
	}
	return ir
}
