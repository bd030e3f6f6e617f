package reverb

import (
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/core"
)

// Setters clamp silently instead of returning errors: the audio thread calls
// them up to once per sample while smoothing, and a parameter excursion must
// never crash or log from the callback. Non-finite values never cross the
// boundary either: NaN falls to the range minimum and infinities clamp to the
// nearest edge, so a pathological host value cannot reach the feedback
// network. Each setter early-returns when the value is unchanged so
// derived-coefficient recomputation only happens on real changes.

// SetMode switches the parameter preset. Switching clears the network state:
// a brief silence on the wet tail instead of delay lengths jumping while the
// network holds energy, which would be a loud artifact.
func (e *Engine) SetMode(m Mode) {
	if !m.Valid() || m == e.mode {
		return
	}
	e.mode = m
	e.modeParams = modePresets[m]

	if e.prepared {
		e.applyAll()
		e.Reset()
	}
}

// Mode returns the active preset.
func (e *Engine) Mode() Mode { return e.mode }

// SetSize sets the decay amount in 0..1, mapped exponentially onto an RT60
// of 0.1 s to 10 s before the mode's decay multiplier.
func (e *Engine) SetSize(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.size {
		return
	}
	e.size = v
	if e.prepared {
		e.updateDecayTime()
		e.left.early.setTimeScale(0.7 + v*0.6)
		e.right.early.setTimeScale(0.7 + v*0.6)
	}
}

// SetRoomSize scales the delay-line lengths (0.5x to 2x of the mode table)
// independently of the decay time.
func (e *Engine) SetRoomSize(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.roomSize {
		return
	}
	e.roomSize = v
	if e.prepared {
		e.updateDelayTimes()
		e.updateSlotGains()
	}
}

// SetDamping sets progressive high-frequency absorption in 0..1, added on
// top of the mode's damping floor.
func (e *Engine) SetDamping(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.damping {
		return
	}
	e.damping = v
	e.dampCoeff = core.Clamp(e.modeParams.dampingBase+v*0.35, 0, 0.95)
}

// SetWidth sets the stereo width: 0 mono, 1 full stereo.
func (e *Engine) SetWidth(v float64) {
	e.width = core.ClampFinite(v, 0, 1)
}

// SetMix sets the dry/wet balance: 0 dry, 1 wet.
func (e *Engine) SetMix(v float64) {
	e.mix = core.ClampFinite(v, 0, 1)
}

// SetPreDelay sets the user pre-delay in milliseconds (0..250), added to the
// mode's intrinsic pre-delay. Applied to the wet path only.
func (e *Engine) SetPreDelay(ms float64) {
	ms = core.ClampFinite(ms, 0, maxPreDelayMs)
	if ms == e.preDelayMs {
		return
	}
	e.preDelayMs = ms
	if e.prepared {
		e.updatePreDelay()
	}
}

// SetModRate scales the delay modulation rate (0.1..5, unity = mode default).
func (e *Engine) SetModRate(v float64) {
	v = core.ClampFinite(v, 0.1, 5)
	if v == e.modRate {
		return
	}
	e.modRate = v
	if e.prepared {
		e.updateModulation()
	}
}

// SetModDepth scales the delay modulation depth in 0..1.
func (e *Engine) SetModDepth(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.modDepth {
		return
	}
	e.modDepth = v
	if e.prepared {
		e.updateModulation()
	}
}

// SetBassMult sets the low-band decay-time multiplier (0.1..3).
func (e *Engine) SetBassMult(v float64) {
	v = core.ClampFinite(v, 0.1, 3)
	if v == e.bassMult {
		return
	}
	e.bassMult = v
	e.updateDecayBands()
}

// SetLowMidMult sets the low-mid-band decay-time multiplier (0.25..4).
func (e *Engine) SetLowMidMult(v float64) {
	v = core.ClampFinite(v, 0.25, 4)
	if v == e.lowMidMult {
		return
	}
	e.lowMidMult = v
	e.updateDecayBands()
}

// SetMidMult sets the mid-band decay-time multiplier (0.25..4).
func (e *Engine) SetMidMult(v float64) {
	v = core.ClampFinite(v, 0.25, 4)
	if v == e.midMult {
		return
	}
	e.midMult = v
	e.updateDecayBands()
}

// SetHighMult sets the high-band decay-time multiplier (0.25..4).
func (e *Engine) SetHighMult(v float64) {
	v = core.ClampFinite(v, 0.25, 4)
	if v == e.highMult {
		return
	}
	e.highMult = v
	e.updateDecayBands()
}

// SetTrebleRatio further scales the high-band decay (0.3..2) on top of the
// high multiplier, matching the decay tilt control of classic hardware.
func (e *Engine) SetTrebleRatio(v float64) {
	v = core.ClampFinite(v, 0.3, 2)
	if v == e.trebleRatio {
		return
	}
	e.trebleRatio = v
	e.updateDecayBands()
}

// SetBassFreq sets the low/low-mid decay crossover in Hz (100..1000).
func (e *Engine) SetBassFreq(freq float64) {
	freq = core.ClampFinite(freq, 100, 1000)
	if freq == e.bassFreq {
		return
	}
	e.bassFreq = freq
	e.updateDecayCrossovers()
}

// SetLowMidFreq sets the low-mid/mid decay crossover in Hz (100..8000).
func (e *Engine) SetLowMidFreq(freq float64) {
	freq = core.ClampFinite(freq, 100, 8000)
	if freq == e.lowMidFreq {
		return
	}
	e.lowMidFreq = freq
	e.updateDecayCrossovers()
}

// SetHighFreq sets the mid/high decay crossover in Hz (1000..12000).
func (e *Engine) SetHighFreq(freq float64) {
	freq = core.ClampFinite(freq, 1000, 12000)
	if freq == e.highFreq {
		return
	}
	e.highFreq = freq
	e.updateDecayCrossovers()
}

// SetEarlyLateBalance cross-fades the wet signal between early-reflection
// dominant (0, close/small) and late-tail dominant (1, far/large) with equal
// power at the midpoint.
func (e *Engine) SetEarlyLateBalance(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.earlyLateBalance {
		return
	}
	e.earlyLateBalance = v
	e.updateBalance()
}

// SetERShape flattens (1) or steepens (0) the early reflection gain envelope.
func (e *Engine) SetERShape(v float64) {
	e.erShape = core.ClampFinite(v, 0, 1)
	if e.prepared {
		e.left.early.setShape(e.erShape)
		e.right.early.setShape(e.erShape)
	}
}

// SetERSpread stretches the spacing of the early reflection taps.
func (e *Engine) SetERSpread(v float64) {
	e.erSpread = core.ClampFinite(v, 0, 1)
	if e.prepared {
		e.left.early.setSpread(e.erSpread)
		e.right.early.setSpread(e.erSpread)
	}
}

// SetERBassCut sets the highpass under the early reflections in Hz; values
// at or below 20 Hz disable it.
func (e *Engine) SetERBassCut(freq float64) {
	e.erBassCut = core.ClampFinite(freq, 0, 1000)
	if e.prepared {
		e.left.early.setBassCut(e.erBassCut)
		e.right.early.setBassCut(e.erBassCut)
	}
}

// SetLowCut sets the wet-path low-cut frequency in Hz (20..500).
func (e *Engine) SetLowCut(freq float64) {
	freq = core.ClampFinite(freq, 20, 500)
	if freq == e.lowCutFreq {
		return
	}
	e.lowCutFreq = freq
	if e.prepared {
		e.left.eq.setLowCut(freq)
		e.right.eq.setLowCut(freq)
	}
}

// SetHighCut sets the wet-path high-cut frequency in Hz (1000..20000).
func (e *Engine) SetHighCut(freq float64) {
	freq = core.ClampFinite(freq, 1000, 20000)
	if freq == e.highCutFreq {
		return
	}
	e.highCutFreq = freq
	if e.prepared {
		e.left.eq.setHighCut(freq)
		e.right.eq.setHighCut(freq)
	}
}

// SetOutputEQ1 tunes the first wet-path parametric band.
func (e *Engine) SetOutputEQ1(freq, gainDB, q float64) {
	freq = core.ClampFinite(freq, 100, 8000)
	gainDB = core.ClampFinite(gainDB, -12, 12)
	q = core.ClampFinite(q, 0.3, 8)
	if freq == e.eq1Freq && gainDB == e.eq1GainDB && q == e.eq1Q {
		return
	}
	e.eq1Freq, e.eq1GainDB, e.eq1Q = freq, gainDB, q
	if e.prepared {
		e.left.eq.setPeak1(freq, gainDB, q)
		e.right.eq.setPeak1(freq, gainDB, q)
	}
}

// SetOutputEQ2 tunes the second wet-path parametric band.
func (e *Engine) SetOutputEQ2(freq, gainDB, q float64) {
	freq = core.ClampFinite(freq, 100, 8000)
	gainDB = core.ClampFinite(gainDB, -12, 12)
	q = core.ClampFinite(q, 0.3, 8)
	if freq == e.eq2Freq && gainDB == e.eq2GainDB && q == e.eq2Q {
		return
	}
	e.eq2Freq, e.eq2GainDB, e.eq2Q = freq, gainDB, q
	if e.prepared {
		e.left.eq.setPeak2(freq, gainDB, q)
		e.right.eq.setPeak2(freq, gainDB, q)
	}
}

// SetEarlyDiffusion scales the input diffuser chain feedback in 0..1.
func (e *Engine) SetEarlyDiffusion(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.earlyDiffusion {
		return
	}
	e.earlyDiffusion = v
	if e.prepared {
		e.updateInputDiffusion()
	}
}

// SetLateDiffusion scales the tank diffuser feedback in 0..1.
func (e *Engine) SetLateDiffusion(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.lateDiffusion {
		return
	}
	e.lateDiffusion = v
	if e.prepared {
		e.updateTankDiffusion()
	}
}

// SetStereoCoupling sets how much each channel's feedback bleeds into the
// other (0..0.5). 0 keeps the two tanks independent (widest), 0.5 fully
// shares energy (most mono-stable).
func (e *Engine) SetStereoCoupling(v float64) {
	e.stereoCoupling = core.ClampFinite(v, 0, 0.5)
}

// SetStereoInvert flips the right channel's wet polarity.
func (e *Engine) SetStereoInvert(invert bool) {
	e.stereoInvert = invert
}

// SetResonance adds metallic ring to the tail by raising the tank diffuser
// feedback beyond its normal range (0..1). Bounded well inside allpass
// stability.
func (e *Engine) SetResonance(v float64) {
	v = core.ClampFinite(v, 0, 1)
	if v == e.resonance {
		return
	}
	e.resonance = v
	if e.prepared {
		e.updateTankDiffusion()
	}
}

// SetFreeze toggles infinite sustain: slot feedback is pinned near unity and
// new input is muted. Disengaging resumes normal decay from the held energy.
func (e *Engine) SetFreeze(frozen bool) {
	e.freeze = frozen
}

// Freeze reports whether freeze mode is engaged.
func (e *Engine) Freeze() bool { return e.freeze }

// SetEnvelopeMode selects the wet-level envelope shaper behavior.
func (e *Engine) SetEnvelopeMode(m EnvelopeMode) {
	e.envelope.setMode(m)
}

// SetEnvelopeDepth blends the envelope shaping in 0..1.
func (e *Engine) SetEnvelopeDepth(v float64) {
	e.envelope.setDepth(v)
}

// SetEnvelopeHold sets the gate hold time in ms (10..2000).
func (e *Engine) SetEnvelopeHold(ms float64) {
	e.envelope.setHold(ms)
}

// SetEnvelopeRelease sets the shaper release/swell time in ms (10..3000).
func (e *Engine) SetEnvelopeRelease(ms float64) {
	e.envelope.setRelease(ms)
}

// SetEchoDelay sets the wet-path echo delay in ms (0..500); 0 disables it.
func (e *Engine) SetEchoDelay(ms float64) {
	e.echoDelayMs = core.ClampFinite(ms, 0, maxEchoMs)
	e.updateEcho()
}

// SetEchoFeedback sets the echo regeneration in 0..0.9.
func (e *Engine) SetEchoFeedback(v float64) {
	e.echoFeedback = core.ClampFinite(v, 0, maxEchoFeedback)
	e.updateEcho()
}

// SetEchoPingPong blends echo repeats between same-side (0) and alternating
// sides (1).
func (e *Engine) SetEchoPingPong(v float64) {
	e.echoPingPong = core.ClampFinite(v, 0, 1)
	e.updateEcho()
}

func (e *Engine) updateEcho() {
	if e.prepared {
		e.echo.setParameters(e.echoDelayMs, e.echoFeedback, e.echoPingPong)
	}
}

// applyAll pushes every cached parameter into the DSP graph. Called after
// Prepare and after a mode switch.
func (e *Engine) applyAll() {
	e.updateDelayTimes()
	e.updateDecayTime()
	e.updateDecayCrossovers()
	e.updateDecayBands()
	e.updateModulation()
	e.updateInputDiffusion()
	e.updateTankDiffusion()
	e.updatePreDelay()
	e.updateBalance()
	e.updateEcho()

	e.dampCoeff = core.Clamp(e.modeParams.dampingBase+e.damping*0.35, 0, 0.95)
	e.saturator.setDrive(e.modeParams.saturationDrive)

	for _, ch := range [2]*fdnChannel{&e.left, &e.right} {
		ch.early.setAmount(e.modeParams.earlyAmount)
		ch.early.setTimeScale(0.7 + e.size*0.6)
		ch.early.setShape(e.erShape)
		ch.early.setSpread(e.erSpread)
		ch.early.setBassCut(e.erBassCut)
		ch.eq.setShelf(e.modeParams.highShelfFreq, e.modeParams.highShelfGainDB)
		ch.eq.setLowCut(e.lowCutFreq)
		ch.eq.setHighCut(e.highCutFreq)
		ch.eq.setPeak1(e.eq1Freq, e.eq1GainDB, e.eq1Q)
		ch.eq.setPeak2(e.eq2Freq, e.eq2GainDB, e.eq2Q)
	}
	// Offset the right cluster slightly for stereo decorrelation.
	e.left.early.setOffset(e.modeParams.preDelayMs)
	e.right.early.setOffset(e.modeParams.preDelayMs + 1.5)
}

func (e *Engine) updateDelayTimes() {
	roomScale := 0.5 + e.roomSize*1.5

	for i := 0; i < numDelays; i++ {
		baseMs := e.modeParams.delayTimesMs[i] * roomScale

		l := baseMs * 0.001 * e.sampleRate
		r := baseMs * stereoOffsets[i] * 0.001 * e.sampleRate

		maxSamples := float64(e.left.lines[i].Len() - 3)
		e.left.delaySamples[i] = core.Clamp(l, 1, maxSamples)
		e.right.delaySamples[i] = core.Clamp(r, 1, maxSamples)
	}
}

func (e *Engine) updateDecayTime() {
	base := 0.1
	if e.size > 0 {
		base += mathPow(e.size, 1.5) * 9.9
	}
	e.rt60 = base * e.modeParams.decayMultiplier
	e.updateSlotGains()
}

func (e *Engine) updateSlotGains() {
	for i := 0; i < numDelays; i++ {
		e.left.slotGain[i] = slotFeedbackGain(e.left.delaySamples[i]/e.sampleRate, e.rt60)
		e.right.slotGain[i] = slotFeedbackGain(e.right.delaySamples[i]/e.sampleRate, e.rt60)
	}
}

func (e *Engine) updateDecayCrossovers() {
	if !e.prepared {
		return
	}
	for i := 0; i < numDelays; i++ {
		e.left.decays[i].setCrossovers(e.bassFreq, e.lowMidFreq, e.highFreq)
		e.right.decays[i].setCrossovers(e.bassFreq, e.lowMidFreq, e.highFreq)
	}
}

func (e *Engine) updateDecayBands() {
	if !e.prepared {
		return
	}

	low := e.modeParams.lowDecayMult * e.bassMult
	lowMid := e.lowMidMult
	mid := e.midMult
	high := e.modeParams.highDecayMult * e.highMult * e.trebleRatio

	for i := 0; i < numDelays; i++ {
		e.left.decays[i].setMultipliers(low, lowMid, mid, high)
		e.right.decays[i].setMultipliers(low, lowMid, mid, high)
	}
}

func (e *Engine) updateModulation() {
	rate := e.modeParams.modRate * e.modRate
	depthSamples := e.modeParams.modDepth * e.modDepth * 0.001 * e.sampleRate
	random := e.modeParams.modRandom * e.modDepth

	for i := 0; i < numDelays; i++ {
		// Spread the rates so no two slots breathe together.
		rateOffset := 0.8 + 0.4*float64(i)/float64(numDelays-1)
		e.left.mods[i].setParameters(rate*rateOffset, depthSamples, random)
		e.right.mods[i].setParameters(rate*rateOffset*1.07, depthSamples, random)
	}
}

func (e *Engine) updateInputDiffusion() {
	g := e.modeParams.diffusion * e.earlyDiffusion

	for i := 0; i < numInputDiffusers; i++ {
		e.left.inputDiffusers[i].setParameters(inputDiffuserTimesMs[i], g)
		e.right.inputDiffusers[i].setParameters(inputDiffuserTimesMs[i]*1.07, g)
	}
}

func (e *Engine) updateTankDiffusion() {
	g := core.Clamp(e.lateDiffusion*0.6+e.resonance*0.35, 0, 0.85)

	for i := 0; i < numTankDiffusers; i++ {
		e.left.tankDiffusers[i].setParameters(tankDiffuserTimesMs[i], g)
		e.right.tankDiffusers[i].setParameters(tankDiffuserTimesMs[i]*1.05, g)
	}
}

func (e *Engine) updatePreDelay() {
	totalMs := e.modeParams.preDelayMs + e.preDelayMs

	maxSamples := float64(e.left.preDelay.Len() - 2)
	e.left.preDelaySamples = core.Clamp(totalMs*0.001*e.sampleRate, 0, maxSamples)
	e.right.preDelaySamples = core.Clamp((totalMs+0.5)*0.001*e.sampleRate, 0, maxSamples)
}

func (e *Engine) updateBalance() {
	// Equal-power crossfade between the early cluster and the late tail.
	angle := e.earlyLateBalance * 0.5 * math.Pi
	e.earlyGain = math.Cos(angle)
	e.lateGain = math.Sin(angle)
}
