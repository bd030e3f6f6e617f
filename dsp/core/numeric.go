// Package core provides small numeric helpers shared by the DSP packages.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampFinite limits value to the inclusive range [min, max] and never lets
// a non-finite value through: NaN falls to min, infinities clamp to the
// nearest edge. Parameter boundaries use this so a pathological host value
// cannot enter the signal path.
func ClampFinite(value, min, max float64) float64 {
	if math.IsNaN(value) {
		if min > max {
			return max
		}

		return min
	}

	return Clamp(value, min, max)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// Sanitize replaces NaN and Inf with zero. Feedback paths call this so a
// parameter excursion can never poison a delay line permanently.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return x
}

// SoftClip applies a tanh soft limiter that is transparent below the
// threshold and compresses everything above it. The output magnitude never
// exceeds 1.0 regardless of input level.
func SoftClip(x, threshold float64) float64 {
	if threshold <= 0 {
		return math.Tanh(x)
	}

	abs := math.Abs(x)
	if abs <= threshold {
		return x
	}

	sign := 1.0
	if x < 0 {
		sign = -1
	}

	return sign * (threshold + math.Tanh(abs-threshold)*(1-threshold))
}

// CrossFade linearly blends a and b by t in [0, 1]: t=0 returns a, t=1
// returns b. t is clamped.
func CrossFade(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}

	if t >= 1 {
		return b
	}

	return a + (b-a)*t
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
