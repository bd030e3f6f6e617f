package reverb

import (
	"fmt"
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/core"
	"github.com/dusk-audio/algo-reverb/dsp/delay"
)

const (
	numDelays         = 8
	numInputDiffusers = 4
	numTankDiffusers  = 2

	// slotBufferSeconds sizes each network delay line: the longest mode
	// delay (181.1 ms) at the maximum room scale (2x) plus modulation
	// headroom.
	slotBufferSeconds = 0.4

	maxPreDelayMs = 250.0

	// feedbackClamp hard-limits the feedback-path signal before it is
	// written back into a delay line, so runaway self-oscillation cannot
	// grow across iterations.
	feedbackClamp = 2.0

	// softClipThreshold is where the final output safety clamp starts
	// compressing.
	softClipThreshold = 0.95

	// freezeFeedbackGain replaces the decay-derived slot gains while frozen:
	// close enough to unity to sustain for minutes, below it so the network
	// can never grow.
	freezeFeedbackGain = 0.9997
)

// hadamardScale normalizes the 8x8 Hadamard matrix to orthonormal, so the
// mix stage neither adds nor removes energy.
var hadamardScale = 1 / math.Sqrt(numDelays)

// stereoOffsets detune the right channel's delay lengths against the left
// for decorrelation. Prime-ish ratios close to 1.
var stereoOffsets = [numDelays]float64{1.000, 1.037, 1.019, 1.053, 1.011, 1.043, 1.029, 1.061}

// inputDiffuserTimesMs and tankDiffuserTimesMs are prime-derived so the
// diffuser chain has no harmonically related loop lengths.
var (
	inputDiffuserTimesMs = [numInputDiffusers]float64{1.3, 2.9, 4.3, 6.1}
	tankDiffuserTimesMs  = [numTankDiffusers]float64{22.7, 37.1}
)

// fdnChannel holds the per-channel half of the stereo network.
type fdnChannel struct {
	lines     [numDelays]*delay.Line
	readers   [numDelays]delay.ThiranReader
	mods      [numDelays]modulator
	decays    [numDelays]*bandDecayFilter
	dampState [numDelays]float64

	inputDiffusers [numInputDiffusers]*diffuser
	tankDiffusers  [numTankDiffusers]*diffuser

	early    *earlyReflections
	preDelay *delay.Line
	dc       dcBlocker
	eq       outputEQ

	feedback     [numDelays]float64
	delaySamples [numDelays]float64
	slotGain     [numDelays]float64

	preDelaySamples float64

	outputs [numDelays]float64
	mixed   [numDelays]float64
}

// Engine is the stereo FDN reverb. Construct with NewEngine, then call
// Prepare before processing. All setters clamp out-of-range values silently
// and are safe to call from the audio thread between samples; none of them
// allocates.
//
// Engine applies parameter changes immediately. For click-free automation
// wrap it in Params, which smooths every continuous control per sample.
type Engine struct {
	sampleRate float64
	prepared   bool

	mode       Mode
	modeParams modeParameters

	size             float64
	roomSize         float64
	damping          float64
	width            float64
	mix              float64
	preDelayMs       float64
	modRate          float64
	modDepth         float64
	bassMult         float64
	lowMidMult       float64
	midMult          float64
	highMult         float64
	trebleRatio      float64
	bassFreq         float64
	lowMidFreq       float64
	highFreq         float64
	earlyLateBalance float64
	erShape          float64
	erSpread         float64
	erBassCut        float64
	lowCutFreq       float64
	highCutFreq      float64
	eq1Freq          float64
	eq1GainDB        float64
	eq1Q             float64
	eq2Freq          float64
	eq2GainDB        float64
	eq2Q             float64
	earlyDiffusion   float64
	lateDiffusion    float64
	stereoCoupling   float64
	stereoInvert     bool
	resonance        float64
	freeze           bool
	echoDelayMs      float64
	echoFeedback     float64
	echoPingPong     float64

	rt60      float64
	dampCoeff float64
	earlyGain float64
	lateGain  float64

	left  fdnChannel
	right fdnChannel

	saturator feedbackSaturator
	echo      *stereoEcho
	envelope  envelopeShaper
}

// NewEngine returns an engine with musically neutral defaults. It produces
// silence until Prepare succeeds.
func NewEngine() *Engine {
	return &Engine{
		mode:             ModePlate,
		modeParams:       modePresets[ModePlate],
		size:             0.5,
		roomSize:         0.5,
		damping:          0.5,
		width:            1,
		mix:              0.5,
		modRate:          1,
		modDepth:         0.5,
		bassMult:         1,
		lowMidMult:       1,
		midMult:          1,
		highMult:         1,
		trebleRatio:      1,
		bassFreq:         300,
		lowMidFreq:       1000,
		highFreq:         4000,
		earlyLateBalance: 0.5,
		erSpread:         0.5,
		lowCutFreq:       20,
		highCutFreq:      12000,
		eq1Freq:          500,
		eq1Q:             1,
		eq2Freq:          3000,
		eq2Q:             1,
		earlyDiffusion:   0.7,
		lateDiffusion:    0.5,
	}
}

// Prepare allocates buffers for the given sample rate and resets all state.
// It must not be called concurrently with Process. On error the engine stays
// unprepared and Process returns silence.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("reverb engine sample rate must be > 0: %f", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("reverb engine max block size must be > 0: %d", maxBlockSize)
	}

	e.sampleRate = sampleRate
	e.prepared = false

	if err := e.prepareChannel(&e.left, 0); err != nil {
		return err
	}
	if err := e.prepareChannel(&e.right, numDelays); err != nil {
		return err
	}

	echo, err := newStereoEcho(sampleRate)
	if err != nil {
		return err
	}
	e.echo = echo

	e.envelope.init(sampleRate)

	e.prepared = true
	e.applyAll()
	e.Reset()

	return nil
}

func (e *Engine) prepareChannel(ch *fdnChannel, modSeed int) error {
	slotSize := int(slotBufferSeconds * e.sampleRate)
	for i := 0; i < numDelays; i++ {
		line, err := delay.New(slotSize)
		if err != nil {
			return err
		}
		ch.lines[i] = line
		ch.mods[i].init(e.sampleRate, modSeed+i)

		dec, err := newBandDecayFilter(e.sampleRate)
		if err != nil {
			return err
		}
		ch.decays[i] = dec
	}

	for i := 0; i < numInputDiffusers; i++ {
		d, err := newDiffuser(e.sampleRate, 50)
		if err != nil {
			return err
		}
		ch.inputDiffusers[i] = d
	}
	for i := 0; i < numTankDiffusers; i++ {
		d, err := newDiffuser(e.sampleRate, 80)
		if err != nil {
			return err
		}
		ch.tankDiffusers[i] = d
	}

	early, err := newEarlyReflections(e.sampleRate)
	if err != nil {
		return err
	}
	ch.early = early

	// Mode-intrinsic pre-delay (up to 40 ms) stacks on top of the user value.
	pre, err := delay.New(int((maxPreDelayMs+50)*0.001*e.sampleRate) + 4)
	if err != nil {
		return err
	}
	ch.preDelay = pre

	ch.dc.init(e.sampleRate)
	ch.eq.init(e.sampleRate)

	return nil
}

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (e *Engine) SampleRate() float64 {
	if !e.prepared {
		return 0
	}
	return e.sampleRate
}

// RT60 returns the current broadband target decay time in seconds.
func (e *Engine) RT60() float64 { return e.rt60 }

// Reset clears all internal signal state to silence without reallocating.
func (e *Engine) Reset() {
	if !e.prepared {
		return
	}

	e.resetChannel(&e.left)
	e.resetChannel(&e.right)
	e.echo.reset()
	e.envelope.reset()
}

func (e *Engine) resetChannel(ch *fdnChannel) {
	for i := 0; i < numDelays; i++ {
		ch.lines[i].Reset()
		ch.readers[i].Reset()
		ch.decays[i].reset()
		ch.dampState[i] = 0
		ch.feedback[i] = 0
	}
	for _, d := range ch.inputDiffusers {
		d.reset()
	}
	for _, d := range ch.tankDiffusers {
		d.reset()
	}
	ch.early.reset()
	ch.preDelay.Reset()
	ch.dc.reset()
	ch.eq.reset()
}

// Process renders one stereo sample. Call once per sample from the audio
// callback; it never allocates, locks, or blocks. Before a successful
// Prepare it returns silence.
func (e *Engine) Process(inL, inR float64) (outL, outR float64) {
	if !e.prepared {
		return 0, 0
	}

	envGain := e.envelope.next((math.Abs(inL) + math.Abs(inR)) * 0.5)

	effL, effR := inL, inR
	if e.freeze {
		effL, effR = 0, 0
	}

	wetL := e.processChannelTank(&e.left, &e.right, effL)
	wetR := e.processChannelTank(&e.right, &e.left, effR)

	wetL, wetR = e.echo.process(wetL, wetR)

	// Mid-side width, then optional polarity invert on the right side.
	mid := (wetL + wetR) * 0.5
	side := (wetL - wetR) * 0.5 * e.width
	wetL = mid + side
	wetR = mid - side
	if e.stereoInvert {
		wetR = -wetR
	}

	wetL *= envGain
	wetR *= envGain

	wetL = core.SoftClip(wetL, softClipThreshold)
	wetR = core.SoftClip(wetR, softClipThreshold)

	// Dry stays time-aligned with the input; pre-delay is wet-path only.
	outL = inL*(1-e.mix) + wetL*e.mix
	outR = inR*(1-e.mix) + wetR*e.mix

	return outL, outR
}

// processChannelTank runs one channel of the network for one sample and
// returns that channel's wet signal before the stereo output stage.
//
// Ordering is fixed and part of the impulse response: every delay line is
// read before it is written within the sample.
func (e *Engine) processChannelTank(ch, other *fdnChannel, input float64) float64 {
	// Pre-delay on the wet path only.
	preOut := input
	if ch.preDelaySamples >= 1 {
		preOut = ch.preDelay.ReadLinear(ch.preDelaySamples)
	}
	ch.preDelay.Write(input)

	early := ch.early.process(input)

	lateIn := preOut + early*e.modeParams.erToLate

	diffused := lateIn
	for _, d := range ch.inputDiffusers {
		diffused = d.process(diffused)
	}
	if e.freeze {
		diffused = 0
	}

	// Read, decay-filter and damp each slot's feedback value. Stereo
	// coupling blends a share of the opposite channel's feedback into
	// each slot before filtering.
	c := e.stereoCoupling
	for i := 0; i < numDelays; i++ {
		fb := ch.feedback[i]
		if c > 0 {
			fb += c * (other.feedback[i] - fb)
		}

		gain := ch.slotGain[i]
		if e.freeze {
			gain = freezeFeedbackGain
		}

		decayed := ch.decays[i].process(fb, gain)

		// One-pole lowpass damping: progressive HF absorption per loop.
		// Bypassed while frozen so the held energy does not dull away;
		// state tracks the signal so release resumes without a step.
		if e.freeze {
			ch.dampState[i] = decayed
			ch.outputs[i] = decayed
		} else {
			ch.dampState[i] = decayed*(1-e.dampCoeff) + ch.dampState[i]*e.dampCoeff
			ch.outputs[i] = ch.dampState[i]
		}
	}

	applyHadamard(&ch.mixed, &ch.outputs)

	// Write the mixed feedback plus the diffused input back into the
	// delay lines, then read the next feedback values at the modulated
	// fractional positions.
	for i := 0; i < numDelays; i++ {
		toDelay := ch.mixed[i] + diffused*0.25
		toDelay = e.saturator.process(toDelay)
		if i < numTankDiffusers {
			toDelay = ch.tankDiffusers[i].process(toDelay)
		}
		toDelay = core.Clamp(core.Sanitize(toDelay), -feedbackClamp, feedbackClamp)

		readPos := ch.delaySamples[i] + ch.mods[i].next()
		ch.feedback[i] = ch.readers[i].Read(ch.lines[i], readPos)
		ch.lines[i].Write(toDelay)
	}

	var late float64
	for i := 0; i < numDelays; i++ {
		late += ch.outputs[i]
	}
	late *= 0.25

	wet := late*e.lateGain + early*e.earlyGain
	wet = ch.dc.process(wet)

	return ch.eq.process(wet)
}

// applyHadamard mixes the eight slot outputs through the orthonormal 8x8
// Hadamard matrix using the butterfly decomposition (three stages of
// sum/difference pairs).
func applyHadamard(dst, src *[numDelays]float64) {
	var stage1, stage2 [numDelays]float64

	for i := 0; i < 4; i++ {
		stage1[i] = src[i] + src[i+4]
		stage1[i+4] = src[i] - src[i+4]
	}
	for b := 0; b < numDelays; b += 4 {
		stage2[b] = stage1[b] + stage1[b+2]
		stage2[b+1] = stage1[b+1] + stage1[b+3]
		stage2[b+2] = stage1[b] - stage1[b+2]
		stage2[b+3] = stage1[b+1] - stage1[b+3]
	}
	for b := 0; b < numDelays; b += 2 {
		dst[b] = (stage2[b] + stage2[b+1]) * hadamardScale
		dst[b+1] = (stage2[b] - stage2[b+1]) * hadamardScale
	}
}
