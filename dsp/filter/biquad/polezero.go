package biquad

import "math/cmplx"

// PoleZero describes one real second-order section by a single zero, a
// single pole and a gain. The conjugates of Zero and Pole are implied, so
// the section has a real-valued impulse response.
type PoleZero struct {
	Zero complex128
	Pole complex128
	Gain float64
}

// Coefficients converts the description into section coefficients:
//
//	B0 = g
//	B1 = -2*g*Re(z)
//	B2 = g*|z|^2
//	A1 = -2*Re(p)
//	A2 = |p|^2
//
// No stability check is made; a pole on or outside the unit circle yields
// an unstable section.
func (pz PoleZero) Coefficients() Coefficients {
	zr, zi := real(pz.Zero), imag(pz.Zero)
	pr, pi := real(pz.Pole), imag(pz.Pole)
	g := pz.Gain

	return Coefficients{
		B0: g,
		B1: -2 * g * zr,
		B2: g * (zr*zr + zi*zi),
		A1: -2 * pr,
		A2: pr*pr + pi*pi,
	}
}

// PoleZeroPair stores the two poles and two zeros of one biquad section.
// For first-order sections, the second pole/zero is 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section numerator:
//
//	B0 + B1*z^-1 + B2*z^-2 = 0
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns both poles and zeros for a single section.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{
		Poles: c.Poles(),
		Zeros: c.Zeros(),
	}
}

// IsStable reports whether both poles lie strictly inside the unit circle.
// The engine never calls this; it is offered to callers that want to vet
// coefficients before building a cascade.
func (c *Coefficients) IsStable() bool {
	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}

// PoleZeroPairs returns one pole/zero pair entry per coefficient set.
func PoleZeroPairs(coeffs []Coefficients) []PoleZeroPair {
	out := make([]PoleZeroPair, len(coeffs))
	for i := range coeffs {
		out[i] = coeffs[i].PoleZeroPair()
	}
	return out
}

// PoleZeroPairs returns one pole/zero pair entry per cascade section.
func (c *Cascade) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].PoleZeroPair()
	}
	return out
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
