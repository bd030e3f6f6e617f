// Package interp provides fractional-sample interpolation kernels used by
// modulated delay reads.
package interp

// Linear interpolates between x0 and x1 by frac in [0, 1].
func Linear(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// Hermite4 performs 4-point, 3rd-order Hermite interpolation.
// t is the fractional position in [0, 1] between x0 and x1.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}

// ThiranCoefficient returns the first-order allpass coefficient that
// realizes a fractional delay of frac samples. frac is clamped away from the
// interval edges for stability; the resulting filter has flat magnitude and
// is therefore preferred over linear interpolation when the delay time is
// modulated continuously.
func ThiranCoefficient(frac float64) float64 {
	if frac < 0.01 {
		frac = 0.01
	}

	if frac > 0.99 {
		frac = 0.99
	}

	return (1 - frac) / (1 + frac)
}
