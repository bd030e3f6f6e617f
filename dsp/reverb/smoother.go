package reverb

import (
	"math"
	"sync/atomic"
)

// Smoother ramps a parameter value linearly toward its target, one step per
// sample, so control changes never step audibly. The zero value is unusable;
// call Configure first.
type Smoother struct {
	current   float64
	target    float64
	step      float64
	remaining int
	rampLen   int
}

// Configure sets the ramp length in seconds at the given sample rate and
// snaps the smoother to v.
func (s *Smoother) Configure(v, rampSeconds, sampleRate float64) {
	s.rampLen = int(rampSeconds * sampleRate)
	if s.rampLen < 1 {
		s.rampLen = 1
	}
	s.SnapTo(v)
}

// SetTarget starts a ramp from the current value toward v. Non-finite
// targets are ignored: the smoother cannot ramp toward them and must never
// feed NaN into the engine.
func (s *Smoother) SetTarget(v float64) {
	if v == s.target || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	s.target = v
	s.remaining = s.rampLen
	s.step = (v - s.current) / float64(s.rampLen)
}

// SnapTo jumps to v immediately with no ramp.
func (s *Smoother) SnapTo(v float64) {
	s.current = v
	s.target = v
	s.step = 0
	s.remaining = 0
}

// Next advances one sample and returns the smoothed value. Call exactly once
// per sample; every use of the parameter within that sample must reuse the
// returned value. The ramp counts samples rather than comparing accumulated
// floats, so the final ramp sample lands exactly on the target.
func (s *Smoother) Next() float64 {
	if s.remaining == 0 {
		return s.current
	}

	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
		s.step = 0
	} else {
		s.current += s.step
	}

	return s.current
}

// Value returns the current smoothed value without advancing.
func (s *Smoother) Value() float64 {
	return s.current
}

// IsRamping reports whether the smoother has not yet reached its target.
func (s *Smoother) IsRamping() bool {
	return s.remaining > 0
}

// atomicFloat64 stores a float64 with atomic load/store semantics. Control
// threads store targets, the audio thread loads them; neither side blocks.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}
