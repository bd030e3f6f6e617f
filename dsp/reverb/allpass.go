package reverb

import (
	"github.com/dusk-audio/algo-reverb/dsp/core"
	"github.com/dusk-audio/algo-reverb/dsp/delay"
)

// maxDiffuserGain bounds the allpass feedback coefficient. Slightly below
// the theoretical |g| < 1 stability limit so modulated chains keep headroom.
const maxDiffuserGain = 0.75

// diffuser is a Schroeder allpass filter used to smear transients without
// coloring tone:
//
//	y[n] = -g*x[n] + x[n-D] + g*y[n-D]
//
// Per-sample ordering is fixed: the delayed value is read before the new
// value is written. This ordering is part of the network's impulse response
// and must not change.
type diffuser struct {
	line         *delay.Line
	sampleRate   float64
	delaySamples float64
	gain         float64
}

func newDiffuser(sampleRate, maxDelayMs float64) (*diffuser, error) {
	size := int(maxDelayMs*0.001*sampleRate) + 4
	line, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	return &diffuser{line: line, sampleRate: sampleRate, delaySamples: 1, gain: 0.5}, nil
}

// setParameters tunes the delay time (ms) and feedback coefficient. Both are
// clamped to safe ranges; out-of-range values never error.
func (d *diffuser) setParameters(delayMs, gain float64) {
	d.delaySamples = core.Clamp(delayMs*0.001*d.sampleRate, 1, float64(d.line.Len()-2))
	d.gain = core.Clamp(gain, -maxDiffuserGain, maxDiffuserGain)
}

func (d *diffuser) process(x float64) float64 {
	delayed := d.line.ReadLinear(d.delaySamples)
	d.line.Write(x + d.gain*delayed)

	return delayed - d.gain*x
}

func (d *diffuser) reset() {
	d.line.Reset()
}
