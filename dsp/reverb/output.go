package reverb

import (
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/core"
	"github.com/dusk-audio/algo-reverb/dsp/filter/biquad"
	"github.com/dusk-audio/algo-reverb/dsp/filter/design"
)

// dcBlocker is a one-pole highpass (~20 Hz) that stops DC from accumulating
// in the feedback path.
type dcBlocker struct {
	coeff float64
	xPrev float64
	yPrev float64
}

func (d *dcBlocker) init(sampleRate float64) {
	w := 2 * math.Pi * 20 / sampleRate
	d.coeff = 1 / (1 + w)
}

func (d *dcBlocker) process(x float64) float64 {
	y := d.coeff * (d.yPrev + x - d.xPrev)
	d.xPrev = x
	d.yPrev = y

	return y
}

func (d *dcBlocker) reset() {
	d.xPrev = 0
	d.yPrev = 0
}

// feedbackSaturator soft-clips the tank feedback with a soft knee: linear
// below the threshold, tanh compression above it. More drive lowers the
// knee, pushing the tail into saturation earlier.
type feedbackSaturator struct {
	drive     float64
	threshold float64
}

func (s *feedbackSaturator) setDrive(drive float64) {
	s.drive = core.Clamp(drive, 0, 1)
	s.threshold = 0.8 - s.drive*0.3
}

func (s *feedbackSaturator) process(x float64) float64 {
	if s.drive < 0.001 {
		return x
	}

	abs := math.Abs(x)
	if abs < s.threshold {
		return x
	}

	sign := 1.0
	if x < 0 {
		sign = -1
	}
	excess := abs - s.threshold

	return sign * (s.threshold + math.Tanh(excess*2)*(1-s.threshold))
}

// outputEQ shapes the overall tonal balance of the wet signal: low-cut and
// high-cut slopes, a high shelf driven by the mode's tonal tilt, and two
// parametric peaking bands. Independent of the in-loop decay shaping.
type outputEQ struct {
	sampleRate float64

	lowCut  biquad.Section
	highCut biquad.Section
	shelf   biquad.Section
	peak1   biquad.Section
	peak2   biquad.Section

	lowCutFreq  float64
	highCutFreq float64

	shelfFreq float64
	shelfGain float64

	peak1Freq, peak1Gain, peak1Q float64
	peak2Freq, peak2Gain, peak2Q float64
}

func (eq *outputEQ) init(sampleRate float64) {
	eq.sampleRate = sampleRate
	eq.lowCutFreq = 20
	eq.highCutFreq = 12000
	eq.shelfFreq = 7000
	eq.peak1Q = 1
	eq.peak2Q = 1
	eq.peak1Freq = 500
	eq.peak2Freq = 3000
	eq.update()
}

func (eq *outputEQ) setLowCut(freq float64) {
	freq = core.ClampFinite(freq, 20, 500)
	if freq == eq.lowCutFreq {
		return
	}
	eq.lowCutFreq = freq
	eq.lowCut.Coefficients = design.Highpass(freq, 0, eq.sampleRate)
}

func (eq *outputEQ) setHighCut(freq float64) {
	freq = core.ClampFinite(freq, 1000, 20000)
	if freq == eq.highCutFreq {
		return
	}
	eq.highCutFreq = freq
	eq.highCut.Coefficients = design.Lowpass(freq, 0, eq.sampleRate)
}

func (eq *outputEQ) setShelf(freq, gainDB float64) {
	freq = core.ClampFinite(freq, 1000, 16000)
	gainDB = core.ClampFinite(gainDB, -12, 12)
	if freq == eq.shelfFreq && gainDB == eq.shelfGain {
		return
	}
	eq.shelfFreq = freq
	eq.shelfGain = gainDB
	eq.shelf.Coefficients = design.HighShelf(freq, gainDB, 0, eq.sampleRate)
}

func (eq *outputEQ) setPeak1(freq, gainDB, q float64) {
	freq = core.ClampFinite(freq, 100, 8000)
	gainDB = core.ClampFinite(gainDB, -12, 12)
	q = core.ClampFinite(q, 0.3, 8)
	if freq == eq.peak1Freq && gainDB == eq.peak1Gain && q == eq.peak1Q {
		return
	}
	eq.peak1Freq, eq.peak1Gain, eq.peak1Q = freq, gainDB, q
	eq.peak1.Coefficients = design.Peak(freq, gainDB, q, eq.sampleRate)
}

func (eq *outputEQ) setPeak2(freq, gainDB, q float64) {
	freq = core.ClampFinite(freq, 100, 8000)
	gainDB = core.ClampFinite(gainDB, -12, 12)
	q = core.ClampFinite(q, 0.3, 8)
	if freq == eq.peak2Freq && gainDB == eq.peak2Gain && q == eq.peak2Q {
		return
	}
	eq.peak2Freq, eq.peak2Gain, eq.peak2Q = freq, gainDB, q
	eq.peak2.Coefficients = design.Peak(freq, gainDB, q, eq.sampleRate)
}

func (eq *outputEQ) update() {
	eq.lowCut.Coefficients = design.Highpass(eq.lowCutFreq, 0, eq.sampleRate)
	eq.highCut.Coefficients = design.Lowpass(eq.highCutFreq, 0, eq.sampleRate)
	eq.shelf.Coefficients = design.HighShelf(eq.shelfFreq, eq.shelfGain, 0, eq.sampleRate)
	eq.peak1.Coefficients = design.Peak(eq.peak1Freq, eq.peak1Gain, eq.peak1Q, eq.sampleRate)
	eq.peak2.Coefficients = design.Peak(eq.peak2Freq, eq.peak2Gain, eq.peak2Q, eq.sampleRate)
}

func (eq *outputEQ) process(x float64) float64 {
	x = eq.lowCut.ProcessSample(x)
	x = eq.shelf.ProcessSample(x)
	x = eq.peak1.ProcessSample(x)
	x = eq.peak2.ProcessSample(x)

	return eq.highCut.ProcessSample(x)
}

func (eq *outputEQ) reset() {
	eq.lowCut.Reset()
	eq.highCut.Reset()
	eq.shelf.Reset()
	eq.peak1.Reset()
	eq.peak2.Reset()
}
