package reverb

import (
	"sync/atomic"
)

// Parameter indices for the smoothed control table.
const (
	pSize = iota
	pRoomSize
	pDamping
	pWidth
	pMix
	pPreDelay
	pModRate
	pModDepth
	pBassMult
	pLowMidMult
	pMidMult
	pHighMult
	pTrebleRatio
	pBassFreq
	pLowMidFreq
	pHighFreq
	pEarlyLateBalance
	pERShape
	pERSpread
	pERBassCut
	pLowCut
	pHighCut
	pEQ1Freq
	pEQ1Gain
	pEQ1Q
	pEQ2Freq
	pEQ2Gain
	pEQ2Q
	pEarlyDiffusion
	pLateDiffusion
	pStereoCoupling
	pResonance
	pEnvDepth
	pEnvHold
	pEnvRelease
	pEchoDelay
	pEchoFeedback
	pEchoPingPong

	numSmoothedParams
)

// paramDef describes one smoothed control: its default, its ramp length,
// and how it is pushed into the engine.
type paramDef struct {
	def   float64
	ramp  float64 // seconds
	apply func(*Engine, float64)
}

// Slow structural controls (sizes, delays, crossovers) ramp over 100 ms;
// everything else uses a 20 ms ramp, long enough to kill zipper noise and
// short enough to feel immediate.
const (
	fastRamp = 0.02
	slowRamp = 0.1
)

var paramDefs = [numSmoothedParams]paramDef{
	pSize:             {0.5, slowRamp, (*Engine).SetSize},
	pRoomSize:         {0.5, slowRamp, (*Engine).SetRoomSize},
	pDamping:          {0.5, fastRamp, (*Engine).SetDamping},
	pWidth:            {1, fastRamp, (*Engine).SetWidth},
	pMix:              {0.5, fastRamp, (*Engine).SetMix},
	pPreDelay:         {0, slowRamp, (*Engine).SetPreDelay},
	pModRate:          {1, fastRamp, (*Engine).SetModRate},
	pModDepth:         {0.5, fastRamp, (*Engine).SetModDepth},
	pBassMult:         {1, fastRamp, (*Engine).SetBassMult},
	pLowMidMult:       {1, fastRamp, (*Engine).SetLowMidMult},
	pMidMult:          {1, fastRamp, (*Engine).SetMidMult},
	pHighMult:         {1, fastRamp, (*Engine).SetHighMult},
	pTrebleRatio:      {1, fastRamp, (*Engine).SetTrebleRatio},
	pBassFreq:         {300, slowRamp, (*Engine).SetBassFreq},
	pLowMidFreq:       {1000, slowRamp, (*Engine).SetLowMidFreq},
	pHighFreq:         {4000, slowRamp, (*Engine).SetHighFreq},
	pEarlyLateBalance: {0.5, fastRamp, (*Engine).SetEarlyLateBalance},
	pERShape:          {0, fastRamp, (*Engine).SetERShape},
	pERSpread:         {0.5, fastRamp, (*Engine).SetERSpread},
	pERBassCut:        {0, slowRamp, (*Engine).SetERBassCut},
	pLowCut:           {20, slowRamp, (*Engine).SetLowCut},
	pHighCut:          {12000, slowRamp, (*Engine).SetHighCut},
	pEQ1Freq:          {500, slowRamp, applyEQ1},
	pEQ1Gain:          {0, fastRamp, applyEQ1},
	pEQ1Q:             {1, fastRamp, applyEQ1},
	pEQ2Freq:          {3000, slowRamp, applyEQ2},
	pEQ2Gain:          {0, fastRamp, applyEQ2},
	pEQ2Q:             {1, fastRamp, applyEQ2},
	pEarlyDiffusion:   {0.7, fastRamp, (*Engine).SetEarlyDiffusion},
	pLateDiffusion:    {0.5, fastRamp, (*Engine).SetLateDiffusion},
	pStereoCoupling:   {0, fastRamp, (*Engine).SetStereoCoupling},
	pResonance:        {0, fastRamp, (*Engine).SetResonance},
	pEnvDepth:         {0, fastRamp, (*Engine).SetEnvelopeDepth},
	pEnvHold:          {250, fastRamp, (*Engine).SetEnvelopeHold},
	pEnvRelease:       {250, fastRamp, (*Engine).SetEnvelopeRelease},
	pEchoDelay:        {0, slowRamp, (*Engine).SetEchoDelay},
	pEchoFeedback:     {0, fastRamp, (*Engine).SetEchoFeedback},
	pEchoPingPong:     {0, fastRamp, (*Engine).SetEchoPingPong},
}

// The parametric EQ bands take three arguments at once, so their per-value
// apply functions are completed in consumeSmoothed where all three smoothed
// values are available.
func applyEQ1(*Engine, float64) {}
func applyEQ2(*Engine, float64) {}

// Params wraps an Engine with a lock-free control surface. Control threads
// (UI, automation) store targets through the setters; the audio thread calls
// Process, which advances every smoother one step and pushes the values into
// the engine before rendering the sample. Output level metering flows the
// other way through audio-thread-written atomics.
type Params struct {
	engine *Engine

	targets   [numSmoothedParams]atomicFloat64
	smoothers [numSmoothedParams]Smoother

	mode         atomic.Int32
	envMode      atomic.Int32
	freeze       atomic.Bool
	stereoInvert atomic.Bool

	meterL atomicFloat64
	meterR atomicFloat64

	meterDecay float64
	peakL      float64
	peakR      float64
}

// NewParams returns a control surface bound to engine with all targets at
// their defaults.
func NewParams(engine *Engine) *Params {
	p := &Params{engine: engine}
	for i := range paramDefs {
		p.targets[i].Store(paramDefs[i].def)
	}

	return p
}

// Engine returns the wrapped engine.
func (p *Params) Engine() *Engine { return p.engine }

// Prepare prepares the engine and snaps all smoothers to their current
// targets. Must not run concurrently with Process.
func (p *Params) Prepare(sampleRate float64, maxBlockSize int) error {
	if err := p.engine.Prepare(sampleRate, maxBlockSize); err != nil {
		return err
	}

	for i := range p.smoothers {
		p.smoothers[i].Configure(p.targets[i].Load(), paramDefs[i].ramp, sampleRate)
	}

	// ~300 ms peak-meter fallback.
	p.meterDecay = 1 - 1/(0.3*sampleRate)

	p.engine.SetMode(Mode(p.mode.Load()))
	p.consumeSmoothed(true)

	return nil
}

// Control-thread setters. Values are stored as-is; the smoothers refuse
// non-finite targets and the engine clamps.

func (p *Params) SetSize(v float64)             { p.targets[pSize].Store(v) }
func (p *Params) SetRoomSize(v float64)         { p.targets[pRoomSize].Store(v) }
func (p *Params) SetDamping(v float64)          { p.targets[pDamping].Store(v) }
func (p *Params) SetWidth(v float64)            { p.targets[pWidth].Store(v) }
func (p *Params) SetMix(v float64)              { p.targets[pMix].Store(v) }
func (p *Params) SetPreDelay(ms float64)        { p.targets[pPreDelay].Store(ms) }
func (p *Params) SetModRate(v float64)          { p.targets[pModRate].Store(v) }
func (p *Params) SetModDepth(v float64)         { p.targets[pModDepth].Store(v) }
func (p *Params) SetBassMult(v float64)         { p.targets[pBassMult].Store(v) }
func (p *Params) SetLowMidMult(v float64)       { p.targets[pLowMidMult].Store(v) }
func (p *Params) SetMidMult(v float64)          { p.targets[pMidMult].Store(v) }
func (p *Params) SetHighMult(v float64)         { p.targets[pHighMult].Store(v) }
func (p *Params) SetTrebleRatio(v float64)      { p.targets[pTrebleRatio].Store(v) }
func (p *Params) SetBassFreq(v float64)         { p.targets[pBassFreq].Store(v) }
func (p *Params) SetLowMidFreq(v float64)       { p.targets[pLowMidFreq].Store(v) }
func (p *Params) SetHighFreq(v float64)         { p.targets[pHighFreq].Store(v) }
func (p *Params) SetEarlyLateBalance(v float64) { p.targets[pEarlyLateBalance].Store(v) }
func (p *Params) SetERShape(v float64)          { p.targets[pERShape].Store(v) }
func (p *Params) SetERSpread(v float64)         { p.targets[pERSpread].Store(v) }
func (p *Params) SetERBassCut(v float64)        { p.targets[pERBassCut].Store(v) }
func (p *Params) SetLowCut(v float64)           { p.targets[pLowCut].Store(v) }
func (p *Params) SetHighCut(v float64)          { p.targets[pHighCut].Store(v) }
func (p *Params) SetEarlyDiffusion(v float64)   { p.targets[pEarlyDiffusion].Store(v) }
func (p *Params) SetLateDiffusion(v float64)    { p.targets[pLateDiffusion].Store(v) }
func (p *Params) SetStereoCoupling(v float64)   { p.targets[pStereoCoupling].Store(v) }
func (p *Params) SetResonance(v float64)        { p.targets[pResonance].Store(v) }
func (p *Params) SetEnvelopeDepth(v float64)    { p.targets[pEnvDepth].Store(v) }
func (p *Params) SetEnvelopeHold(ms float64)    { p.targets[pEnvHold].Store(ms) }
func (p *Params) SetEnvelopeRelease(ms float64) { p.targets[pEnvRelease].Store(ms) }
func (p *Params) SetEchoDelay(ms float64)       { p.targets[pEchoDelay].Store(ms) }
func (p *Params) SetEchoFeedback(v float64)     { p.targets[pEchoFeedback].Store(v) }
func (p *Params) SetEchoPingPong(v float64)     { p.targets[pEchoPingPong].Store(v) }

// SetOutputEQ1 tunes the first wet-path parametric band.
func (p *Params) SetOutputEQ1(freq, gainDB, q float64) {
	p.targets[pEQ1Freq].Store(freq)
	p.targets[pEQ1Gain].Store(gainDB)
	p.targets[pEQ1Q].Store(q)
}

// SetOutputEQ2 tunes the second wet-path parametric band.
func (p *Params) SetOutputEQ2(freq, gainDB, q float64) {
	p.targets[pEQ2Freq].Store(freq)
	p.targets[pEQ2Gain].Store(gainDB)
	p.targets[pEQ2Q].Store(q)
}

// SetMode switches the reverb preset. Discrete: applied without smoothing at
// the next sample boundary.
func (p *Params) SetMode(m Mode) { p.mode.Store(int32(m)) }

// SetEnvelopeMode selects the wet-level envelope shaper behavior.
func (p *Params) SetEnvelopeMode(m EnvelopeMode) { p.envMode.Store(int32(m)) }

// SetFreeze toggles infinite sustain.
func (p *Params) SetFreeze(frozen bool) { p.freeze.Store(frozen) }

// SetStereoInvert flips the right channel's wet polarity.
func (p *Params) SetStereoInvert(invert bool) { p.stereoInvert.Store(invert) }

// Process advances all parameter smoothers one step, pushes them into the
// engine, renders one stereo sample and updates the output meters. Audio
// thread only.
func (p *Params) Process(inL, inR float64) (outL, outR float64) {
	p.engine.SetMode(Mode(p.mode.Load()))
	p.engine.SetEnvelopeMode(EnvelopeMode(p.envMode.Load()))
	p.engine.SetFreeze(p.freeze.Load())
	p.engine.SetStereoInvert(p.stereoInvert.Load())

	p.consumeSmoothed(false)

	outL, outR = p.engine.Process(inL, inR)
	p.updateMeters(outL, outR)

	return outL, outR
}

// consumeSmoothed advances every smoother one step and applies the values.
// With snap set, smoothers jump straight to their targets (used at prepare
// time so playback does not start mid-ramp).
func (p *Params) consumeSmoothed(snap bool) {
	for i := range p.smoothers {
		p.smoothers[i].SetTarget(p.targets[i].Load())
		if snap {
			p.smoothers[i].SnapTo(p.targets[i].Load())
		}

		v := p.smoothers[i].Next()
		paramDefs[i].apply(p.engine, v)
	}

	// The EQ bands need all three smoothed values at once.
	p.engine.SetOutputEQ1(
		p.smoothers[pEQ1Freq].Value(),
		p.smoothers[pEQ1Gain].Value(),
		p.smoothers[pEQ1Q].Value(),
	)
	p.engine.SetOutputEQ2(
		p.smoothers[pEQ2Freq].Value(),
		p.smoothers[pEQ2Gain].Value(),
		p.smoothers[pEQ2Q].Value(),
	)
}

func (p *Params) updateMeters(outL, outR float64) {
	absL, absR := outL, outR
	if absL < 0 {
		absL = -absL
	}
	if absR < 0 {
		absR = -absR
	}

	p.peakL *= p.meterDecay
	if absL > p.peakL {
		p.peakL = absL
	}
	p.peakR *= p.meterDecay
	if absR > p.peakR {
		p.peakR = absR
	}

	p.meterL.Store(p.peakL)
	p.meterR.Store(p.peakR)
}

// OutputLevels returns the decaying peak levels of the last rendered output.
// Safe to call from any thread.
func (p *Params) OutputLevels() (left, right float64) {
	return p.meterL.Load(), p.meterR.Load()
}
