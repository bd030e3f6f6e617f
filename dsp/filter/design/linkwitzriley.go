package design

import (
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/filter/biquad"
)

// LinkwitzRileyLP returns the lowpass section cascade of a Linkwitz-Riley
// crossover of the given order at freq (Hz). Orders 2 and 4 are supported;
// other orders return nil.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	switch order {
	case 2:
		// LR2 is a squared first-order response, Q = 0.5.
		return []biquad.Coefficients{Lowpass(freq, 0.5, sampleRate)}
	case 4:
		// LR4 is two cascaded Butterworth sections.
		c := Lowpass(freq, 1/math.Sqrt2, sampleRate)
		return []biquad.Coefficients{c, c}
	default:
		return nil
	}
}

// LinkwitzRileyHP returns the highpass section cascade of a Linkwitz-Riley
// crossover of the given order at freq (Hz). Orders 2 and 4 are supported;
// other orders return nil.
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	switch order {
	case 2:
		return []biquad.Coefficients{Highpass(freq, 0.5, sampleRate)}
	case 4:
		c := Highpass(freq, 1/math.Sqrt2, sampleRate)
		return []biquad.Coefficients{c, c}
	default:
		return nil
	}
}

// LinkwitzRileyNeedsHPInvert reports whether the highpass branch must be
// polarity-inverted for LP + HP to reconstruct an allpass. This is the case
// for orders congruent to 2 mod 4 (LR2, LR6, ...).
func LinkwitzRileyNeedsHPInvert(order int) bool {
	return order%4 == 2
}
