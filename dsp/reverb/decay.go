package reverb

import (
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/core"
	"github.com/dusk-audio/algo-reverb/dsp/filter/crossover"
)

const (
	numDecayBands = 4

	// maxBandGain keeps every band strictly below unity so the network
	// always decays outside freeze mode.
	maxBandGain = 0.9999

	// minRT60 floors the decay time so the gain math never divides by zero.
	minRT60 = 0.1
)

// bandDecayFilter applies frequency-dependent decay inside one FDN feedback
// tap. The signal is split into four bands (low / low-mid / mid / high) with
// Linkwitz-Riley crossovers; each band is scaled by baseGain^(1/mult) so a
// multiplier above 1 lengthens that band's decay and below 1 shortens it.
//
// Crossover and gain recomputation happen only when a parameter actually
// changes, never per sample.
type bandDecayFilter struct {
	split *crossover.MultiBand
	bands [numDecayBands]float64

	mults [numDecayBands]float64
	gains [numDecayBands]float64

	freqs    [3]float64
	baseGain float64
	dirty    bool
}

func newBandDecayFilter(sampleRate float64) (*bandDecayFilter, error) {
	freqs := [3]float64{250, 1000, 4000}

	split, err := crossover.NewMultiBand(freqs[:], 4, sampleRate)
	if err != nil {
		return nil, err
	}

	f := &bandDecayFilter{
		split: split,
		mults: [numDecayBands]float64{1, 1, 1, 1},
		freqs: freqs,
		dirty: true,
	}

	return f, nil
}

// setCrossovers retunes the three split frequencies. Values are clamped to
// their musical ranges and nudged apart if they would collapse or cross, so
// the splitter always receives strictly ascending frequencies.
func (f *bandDecayFilter) setCrossovers(bassFreq, lowMidFreq, highFreq float64) {
	bassFreq = core.Clamp(bassFreq, 100, 1000)
	lowMidFreq = core.Clamp(lowMidFreq, 100, 8000)
	highFreq = core.Clamp(highFreq, 1000, 12000)

	if lowMidFreq < bassFreq*1.1 {
		lowMidFreq = bassFreq * 1.1
	}
	if highFreq < lowMidFreq*1.1 {
		highFreq = lowMidFreq * 1.1
	}

	next := [3]float64{bassFreq, lowMidFreq, highFreq}
	if next == f.freqs {
		return
	}
	f.freqs = next

	// Inputs are pre-validated ascending, so this cannot fail.
	_ = f.split.SetFrequencies(next[:])
}

// setMultipliers sets the per-band decay-time multipliers
// (low, low-mid, mid, high).
func (f *bandDecayFilter) setMultipliers(low, lowMid, mid, high float64) {
	next := [numDecayBands]float64{
		core.Clamp(low, 0.1, 4),
		core.Clamp(lowMid, 0.1, 4),
		core.Clamp(mid, 0.1, 4),
		core.Clamp(high, 0.1, 4),
	}
	if next == f.mults {
		return
	}
	f.mults = next
	f.dirty = true
}

func (f *bandDecayFilter) updateGains() {
	if f.baseGain <= 0 {
		f.gains = [numDecayBands]float64{}
		f.dirty = false
		return
	}

	for i := 0; i < numDecayBands; i++ {
		g := mathPow(f.baseGain, 1/f.mults[i])
		if g > maxBandGain {
			g = maxBandGain
		}
		f.gains[i] = g
	}
	f.dirty = false
}

// process splits x into bands and applies the per-band decay gains derived
// from baseGain, the slot's broadband feedback gain.
func (f *bandDecayFilter) process(x, baseGain float64) float64 {
	if baseGain < 0 {
		baseGain = 0
	}

	if f.dirty || math.Abs(baseGain-f.baseGain) > 1e-9 {
		f.baseGain = baseGain
		f.updateGains()
	}

	f.split.ProcessSampleInto(f.bands[:], x)

	var out float64
	for i := 0; i < numDecayBands; i++ {
		out += f.bands[i] * f.gains[i]
	}

	return out
}

func (f *bandDecayFilter) reset() {
	f.split.Reset()
}

// slotFeedbackGain derives the broadband feedback gain for one delay slot
// from its loop time and the target RT60: the gain that attenuates a
// recirculating signal by 60 dB over rt60 seconds.
func slotFeedbackGain(delaySeconds, rt60 float64) float64 {
	if rt60 < minRT60 {
		rt60 = minRT60
	}
	if delaySeconds <= 0 {
		return 0
	}

	g := mathPow10(-3 * delaySeconds / rt60)

	return core.Clamp(g, 0, 0.995)
}
