package reverb

import (
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/core"
)

// EnvelopeMode selects how the wet signal's level follows the dry input
// envelope, for gated and reverse-style effects.
type EnvelopeMode int

const (
	// EnvelopeOff leaves the wet level untouched.
	EnvelopeOff EnvelopeMode = iota
	// EnvelopeGate holds the wet open while input is present, then cuts it
	// after the hold time with a release ramp.
	EnvelopeGate
	// EnvelopeReverse ramps the wet up over the hold time after each
	// trigger, imitating a reversed tail.
	EnvelopeReverse
	// EnvelopeSwell fades the wet in slowly whenever input appears.
	EnvelopeSwell
	// EnvelopeDucked pushes the wet down while input is loud and lets it
	// bloom back in the gaps.
	EnvelopeDucked

	numEnvelopeModes
)

// gateThreshold is the follower level that counts as "input present".
const gateThreshold = 0.01

// envelopeShaper derives a wet-path gain from a dry-input envelope follower.
// depth blends between untouched (0) and fully shaped (1) wet level.
type envelopeShaper struct {
	sampleRate float64

	mode  EnvelopeMode
	depth float64

	holdSamples    int
	releaseSamples int

	follower      float64
	followAttack  float64
	followRelease float64

	holdCounter int
	shapePhase  float64
	gain        float64
}

func (s *envelopeShaper) init(sampleRate float64) {
	s.sampleRate = sampleRate
	s.holdSamples = int(0.25 * sampleRate)
	s.releaseSamples = int(0.25 * sampleRate)
	// ~2 ms attack, ~50 ms release follower.
	s.followAttack = 1 - mathExp(-1/(0.002*sampleRate))
	s.followRelease = 1 - mathExp(-1/(0.05*sampleRate))
	s.gain = 1
}

func (s *envelopeShaper) setMode(mode EnvelopeMode) {
	if mode < EnvelopeOff || mode >= numEnvelopeModes {
		mode = EnvelopeOff
	}
	if mode == s.mode {
		return
	}
	s.mode = mode
	s.holdCounter = 0
	s.shapePhase = 0
}

func (s *envelopeShaper) setDepth(depth float64) {
	s.depth = core.ClampFinite(depth, 0, 1)
}

func (s *envelopeShaper) setHold(ms float64) {
	ms = core.ClampFinite(ms, 10, 2000)
	s.holdSamples = int(ms * 0.001 * s.sampleRate)
}

func (s *envelopeShaper) setRelease(ms float64) {
	ms = core.ClampFinite(ms, 10, 3000)
	s.releaseSamples = int(ms * 0.001 * s.sampleRate)
}

// next advances the shaper one sample from the dry input level and returns
// the wet gain to apply.
func (s *envelopeShaper) next(dryLevel float64) float64 {
	in := math.Abs(dryLevel)
	if in > s.follower {
		s.follower += (in - s.follower) * s.followAttack
	} else {
		s.follower += (in - s.follower) * s.followRelease
	}

	if s.mode == EnvelopeOff || s.depth == 0 {
		s.gain = 1
		return 1
	}

	var shaped float64
	active := s.follower > gateThreshold

	switch s.mode {
	case EnvelopeGate:
		if active {
			s.holdCounter = s.holdSamples
			shaped = 1
		} else if s.holdCounter > 0 {
			s.holdCounter--
			shaped = 1
		} else {
			shaped = 0
		}

	case EnvelopeReverse:
		if active {
			s.shapePhase += 1 / float64(s.holdSamples)
			if s.shapePhase > 1 {
				s.shapePhase = 1
			}
		} else {
			s.shapePhase = 0
		}
		// Squared ramp reads as a backwards swell.
		shaped = s.shapePhase * s.shapePhase

	case EnvelopeSwell:
		if active {
			s.shapePhase += 1 / float64(s.releaseSamples)
			if s.shapePhase > 1 {
				s.shapePhase = 1
			}
		} else {
			s.shapePhase -= 1 / float64(s.releaseSamples)
			if s.shapePhase < 0 {
				s.shapePhase = 0
			}
		}
		shaped = s.shapePhase

	case EnvelopeDucked:
		shaped = 1 - core.Clamp(s.follower*4, 0, 1)

	default:
		shaped = 1
	}

	target := 1 - s.depth + s.depth*shaped

	// Smooth the gain over roughly the release time so mode transitions and
	// gate edges never click.
	rate := 1 / float64(s.releaseSamples)
	if target > s.gain {
		s.gain += rate
		if s.gain > target {
			s.gain = target
		}
	} else {
		s.gain -= rate
		if s.gain < target {
			s.gain = target
		}
	}

	return s.gain
}

func (s *envelopeShaper) reset() {
	s.follower = 0
	s.holdCounter = 0
	s.shapePhase = 0
	s.gain = 1
}
