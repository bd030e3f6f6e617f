package biquad

import "math/cmplx"

// Response evaluates the section transfer function at normalized angular
// frequency w (radians per sample, 0..pi).
func (c Coefficients) Response(w float64) complex128 {
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeAt returns |H(e^jw)| at normalized angular frequency w.
func (c Coefficients) MagnitudeAt(w float64) float64 {
	return cmplx.Abs(c.Response(w))
}

// MagnitudeAt returns the cascade magnitude at normalized angular frequency
// w, including the chain input gain.
func (c *Chain) MagnitudeAt(w float64) float64 {
	mag := c.gain
	for i := range c.sections {
		mag *= c.sections[i].MagnitudeAt(w)
	}

	return mag
}
