//go:build fastmath

package reverb

import (
	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10, used for log base conversions.
const ln10 = 2.302585092994045684017991454684

// mathPow computes x^y using fast approximations.
// Uses the identity: x^y = e^(y * ln(x)). Valid for x > 0, which holds for
// every call site in this package (decay gains and band multipliers).
func mathPow(x, y float64) float64 {
	return approx.FastExp(y * approx.FastLog(x))
}

// mathPow10 computes 10^x using fast approximation.
// Uses the identity: 10^x = e^(x * ln(10))
func mathPow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
