package reverb

// Snapshot is the flat persisted parameter state: everything a host needs to
// save and restore so that load-then-process reproduces the saved engine's
// output deterministically. Signal state (delay contents, filter memories)
// is deliberately not part of it.
type Snapshot struct {
	Mode         Mode
	EnvelopeMode EnvelopeMode
	Freeze       bool
	StereoInvert bool

	Size             float64
	RoomSize         float64
	Damping          float64
	Width            float64
	Mix              float64
	PreDelayMs       float64
	ModRate          float64
	ModDepth         float64
	BassMult         float64
	LowMidMult       float64
	MidMult          float64
	HighMult         float64
	TrebleRatio      float64
	BassFreq         float64
	LowMidFreq       float64
	HighFreq         float64
	EarlyLateBalance float64
	ERShape          float64
	ERSpread         float64
	ERBassCut        float64
	LowCut           float64
	HighCut          float64
	EQ1Freq          float64
	EQ1Gain          float64
	EQ1Q             float64
	EQ2Freq          float64
	EQ2Gain          float64
	EQ2Q             float64
	EarlyDiffusion   float64
	LateDiffusion    float64
	StereoCoupling   float64
	Resonance        float64
	EnvelopeDepth    float64
	EnvelopeHoldMs   float64
	EnvelopeRelMs    float64
	EchoDelayMs      float64
	EchoFeedback     float64
	EchoPingPong     float64
}

// snapshotSlots maps each smoothed-parameter index to its Snapshot field.
func snapshotSlots(s *Snapshot) [numSmoothedParams]*float64 {
	return [numSmoothedParams]*float64{
		pSize:             &s.Size,
		pRoomSize:         &s.RoomSize,
		pDamping:          &s.Damping,
		pWidth:            &s.Width,
		pMix:              &s.Mix,
		pPreDelay:         &s.PreDelayMs,
		pModRate:          &s.ModRate,
		pModDepth:         &s.ModDepth,
		pBassMult:         &s.BassMult,
		pLowMidMult:       &s.LowMidMult,
		pMidMult:          &s.MidMult,
		pHighMult:         &s.HighMult,
		pTrebleRatio:      &s.TrebleRatio,
		pBassFreq:         &s.BassFreq,
		pLowMidFreq:       &s.LowMidFreq,
		pHighFreq:         &s.HighFreq,
		pEarlyLateBalance: &s.EarlyLateBalance,
		pERShape:          &s.ERShape,
		pERSpread:         &s.ERSpread,
		pERBassCut:        &s.ERBassCut,
		pLowCut:           &s.LowCut,
		pHighCut:          &s.HighCut,
		pEQ1Freq:          &s.EQ1Freq,
		pEQ1Gain:          &s.EQ1Gain,
		pEQ1Q:             &s.EQ1Q,
		pEQ2Freq:          &s.EQ2Freq,
		pEQ2Gain:          &s.EQ2Gain,
		pEQ2Q:             &s.EQ2Q,
		pEarlyDiffusion:   &s.EarlyDiffusion,
		pLateDiffusion:    &s.LateDiffusion,
		pStereoCoupling:   &s.StereoCoupling,
		pResonance:        &s.Resonance,
		pEnvDepth:         &s.EnvelopeDepth,
		pEnvHold:          &s.EnvelopeHoldMs,
		pEnvRelease:       &s.EnvelopeRelMs,
		pEchoDelay:        &s.EchoDelayMs,
		pEchoFeedback:     &s.EchoFeedback,
		pEchoPingPong:     &s.EchoPingPong,
	}
}

// Snapshot captures the current parameter targets. Safe to call from any
// thread.
func (p *Params) Snapshot() Snapshot {
	var s Snapshot
	slots := snapshotSlots(&s)
	for i := range slots {
		*slots[i] = p.targets[i].Load()
	}

	s.Mode = Mode(p.mode.Load())
	s.EnvelopeMode = EnvelopeMode(p.envMode.Load())
	s.Freeze = p.freeze.Load()
	s.StereoInvert = p.stereoInvert.Load()

	return s
}

// Restore replaces all parameter targets from a snapshot. Safe to call from
// any thread; the audio thread smooths toward the restored values. Follow
// with Prepare (or engine Reset) when the host wants playback to start from
// the restored state exactly rather than ramp into it.
func (p *Params) Restore(s Snapshot) {
	slots := snapshotSlots(&s)
	for i := range slots {
		p.targets[i].Store(*slots[i])
	}

	p.mode.Store(int32(s.Mode))
	p.envMode.Store(int32(s.EnvelopeMode))
	p.freeze.Store(s.Freeze)
	p.stereoInvert.Store(s.StereoInvert)
}
