package reverb

import (
	"github.com/dusk-audio/algo-reverb/dsp/core"
	"github.com/dusk-audio/algo-reverb/dsp/delay"
	"github.com/dusk-audio/algo-reverb/dsp/filter/biquad"
	"github.com/dusk-audio/algo-reverb/dsp/filter/design"
)

const (
	numEarlyTaps = 8

	// Longest tap (53.7 ms) at the maximum time scale (2x) plus the
	// mode-intrinsic pre-delay offset (50 ms) with margin.
	earlyBufferSeconds = 0.25

	minEarlyTimeScale = 0.5
	maxEarlyTimeScale = 2.0
	maxEarlyOffsetMs  = 50.0
)

// Prime-derived tap times keep the first bounces from forming an audible
// comb pattern.
var earlyTapTimesMs = [numEarlyTaps]float64{3.1, 7.2, 11.7, 17.3, 23.9, 31.1, 41.3, 53.7}

var earlyTapGains = [numEarlyTaps]float64{0.8, 0.7, 0.6, 0.5, 0.4, 0.35, 0.3, 0.25}

// earlyReflections simulates the first discrete room bounces with a tapped
// delay line ahead of the late-reverb tank.
//
// shape raises the tap gain envelope to a power: 0 keeps the default decaying
// cluster, 1 flattens it toward equal-loudness bounces (a harder, closer
// wall character). spread stretches the spacing between taps. A bass-cut
// highpass thins the cluster so close reflections do not muddy the low end.
type earlyReflections struct {
	line       *delay.Line
	sampleRate float64

	amount    float64
	shape     float64
	spread    float64
	timeScale float64
	offsetMs  float64

	tapPositions [numEarlyTaps]int
	tapGains     [numEarlyTaps]float64

	bassCut     *biquad.Section
	bassCutFreq float64
}

func newEarlyReflections(sampleRate float64) (*earlyReflections, error) {
	line, err := delay.New(int(earlyBufferSeconds * sampleRate))
	if err != nil {
		return nil, err
	}

	er := &earlyReflections{
		line:       line,
		sampleRate: sampleRate,
		amount:     0.1,
		spread:     1,
		timeScale:  1,
		bassCut:    biquad.NewSection(biquad.Identity()),
	}
	er.update()

	return er, nil
}

func (er *earlyReflections) setAmount(v float64) {
	er.amount = core.Clamp(v, 0, 1)
}

func (er *earlyReflections) setShape(v float64) {
	v = core.Clamp(v, 0, 1)
	if v == er.shape {
		return
	}
	er.shape = v
	er.update()
}

func (er *earlyReflections) setSpread(v float64) {
	v = core.Clamp(v, 0, 1)
	if v == er.spread {
		return
	}
	er.spread = v
	er.update()
}

func (er *earlyReflections) setTimeScale(v float64) {
	v = core.Clamp(v, minEarlyTimeScale, maxEarlyTimeScale)
	if v == er.timeScale {
		return
	}
	er.timeScale = v
	er.update()
}

func (er *earlyReflections) setOffset(ms float64) {
	ms = core.Clamp(ms, 0, maxEarlyOffsetMs)
	if ms == er.offsetMs {
		return
	}
	er.offsetMs = ms
	er.update()
}

// setBassCut tunes the highpass under the reflection cluster. Frequencies at
// or below 20 Hz disable the filter.
func (er *earlyReflections) setBassCut(freq float64) {
	freq = core.Clamp(freq, 0, 1000)
	if freq == er.bassCutFreq {
		return
	}
	er.bassCutFreq = freq

	if freq <= 20 {
		er.bassCut.Coefficients = biquad.Identity()
		return
	}
	er.bassCut.Coefficients = design.Highpass(freq, 0, er.sampleRate)
}

func (er *earlyReflections) update() {
	// spread=0 compresses the cluster to 60% of nominal spacing, spread=1
	// stretches it to 140%.
	spreadScale := 0.6 + er.spread*0.8

	for i := 0; i < numEarlyTaps; i++ {
		totalMs := er.offsetMs + earlyTapTimesMs[i]*er.timeScale*spreadScale
		pos := int(totalMs * 0.001 * er.sampleRate)
		if pos < 1 {
			pos = 1
		}
		if pos > er.line.Len()-1 {
			pos = er.line.Len() - 1
		}
		er.tapPositions[i] = pos

		// shape=1 flattens the decaying gain envelope toward unity.
		er.tapGains[i] = mathPow(earlyTapGains[i], 1-er.shape*0.8)
	}
}

func (er *earlyReflections) process(x float64) float64 {
	er.line.Write(x)

	var out float64
	for i := 0; i < numEarlyTaps; i++ {
		out += er.line.Read(er.tapPositions[i]) * er.tapGains[i]
	}

	return er.bassCut.ProcessSample(out * er.amount)
}

func (er *earlyReflections) reset() {
	er.line.Reset()
	er.bassCut.Reset()
}
