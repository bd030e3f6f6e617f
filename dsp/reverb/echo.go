package reverb

import (
	"github.com/dusk-audio/algo-reverb/dsp/core"
	"github.com/dusk-audio/algo-reverb/dsp/delay"
)

const (
	maxEchoMs       = 500.0
	maxEchoFeedback = 0.9
)

// stereoEcho adds a discrete repeating echo to the wet path. The ping-pong
// control blends between straight per-channel feedback (0) and fully
// cross-fed feedback where each repeat alternates sides (1).
type stereoEcho struct {
	lineL *delay.Line
	lineR *delay.Line

	sampleRate   float64
	delaySamples float64
	feedback     float64
	pingPong     float64
	mix          float64
}

func newStereoEcho(sampleRate float64) (*stereoEcho, error) {
	size := int(maxEchoMs*0.001*sampleRate) + 4

	lineL, err := delay.New(size)
	if err != nil {
		return nil, err
	}
	lineR, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	return &stereoEcho{
		lineL:      lineL,
		lineR:      lineR,
		sampleRate: sampleRate,
	}, nil
}

// setParameters tunes the echo. A delay of 0 ms disables it entirely.
func (e *stereoEcho) setParameters(delayMs, feedback, pingPong float64) {
	delayMs = core.Clamp(delayMs, 0, maxEchoMs)
	e.feedback = core.Clamp(feedback, 0, maxEchoFeedback)
	e.pingPong = core.Clamp(pingPong, 0, 1)

	if delayMs <= 0 {
		e.delaySamples = 0
		e.mix = 0
		return
	}

	e.delaySamples = core.Clamp(delayMs*0.001*e.sampleRate, 1, float64(e.lineL.Len()-2))
	e.mix = 1
}

func (e *stereoEcho) process(l, r float64) (float64, float64) {
	if e.mix == 0 {
		return l, r
	}

	echoL := e.lineL.ReadLinear(e.delaySamples)
	echoR := e.lineR.ReadLinear(e.delaySamples)

	// Straight feedback keeps repeats on their own side; ping-pong swaps
	// them every pass.
	fbToL := echoL + e.pingPong*(echoR-echoL)
	fbToR := echoR + e.pingPong*(echoL-echoR)

	e.lineL.Write(core.Sanitize(l + fbToL*e.feedback))
	e.lineR.Write(core.Sanitize(r + fbToR*e.feedback))

	return l + echoL, r + echoR
}

func (e *stereoEcho) reset() {
	e.lineL.Reset()
	e.lineR.Reset()
}
