package reverb

import "testing"

func TestEnvelopeOffIsUnity(t *testing.T) {
	var s envelopeShaper
	s.init(44100)
	s.setMode(EnvelopeOff)
	s.setDepth(1)

	for i := 0; i < 4096; i++ {
		if g := s.next(0.5); g != 1 {
			t.Fatalf("sample %d: gain %g in off mode", i, g)
		}
	}
}

func TestEnvelopeGateClosesAfterHold(t *testing.T) {
	var s envelopeShaper
	s.init(44100)
	s.setMode(EnvelopeGate)
	s.setDepth(1)
	s.setHold(50)
	s.setRelease(10)

	// Loud input holds the gate open.
	var g float64
	for i := 0; i < 4410; i++ {
		g = s.next(0.8)
	}
	if g < 0.99 {
		t.Fatalf("gate gain %g with input present, want ~1", g)
	}

	// Silence: after hold plus release plus follower decay the gate closes.
	for i := 0; i < 44100; i++ {
		g = s.next(0)
	}
	if g > 0.01 {
		t.Fatalf("gate gain %g one second after input stopped, want ~0", g)
	}
}

func TestEnvelopeDuckedLowersWetUnderInput(t *testing.T) {
	var s envelopeShaper
	s.init(44100)
	s.setMode(EnvelopeDucked)
	s.setDepth(1)

	var loud float64
	for i := 0; i < 44100; i++ {
		loud = s.next(0.9)
	}
	if loud > 0.1 {
		t.Fatalf("ducked gain %g under loud input, want near 0", loud)
	}

	var quiet float64
	for i := 0; i < 44100; i++ {
		quiet = s.next(0)
	}
	if quiet < 0.99 {
		t.Fatalf("ducked gain %g in silence, want ~1", quiet)
	}
}

func TestEnvelopeDepthBlends(t *testing.T) {
	var s envelopeShaper
	s.init(44100)
	s.setMode(EnvelopeGate)
	s.setDepth(0.5)
	s.setHold(10)
	s.setRelease(10)

	// Fully closed gate at depth 0.5 still passes half the wet level.
	var g float64
	for i := 0; i < 88200; i++ {
		g = s.next(0)
	}
	if g < 0.49 || g > 0.51 {
		t.Fatalf("gain %g with closed gate at half depth, want 0.5", g)
	}
}

func TestEnvelopeGainIsSmoothed(t *testing.T) {
	var s envelopeShaper
	s.init(44100)
	s.setMode(EnvelopeGate)
	s.setDepth(1)
	s.setHold(10)
	s.setRelease(100)

	// Open the gate, then cut the input. The gain must ramp, never step.
	for i := 0; i < 4410; i++ {
		s.next(0.8)
	}
	prev := s.next(0)
	for i := 0; i < 44100; i++ {
		g := s.next(0)
		if d := prev - g; d < 0 || d > 0.001 {
			t.Fatalf("sample %d: gain step %g, want smooth decrease", i, d)
		}
		prev = g
	}
}

func TestEnvelopeInvalidModeFallsBackToOff(t *testing.T) {
	var s envelopeShaper
	s.init(44100)
	s.setMode(EnvelopeMode(99))
	s.setDepth(1)

	if g := s.next(0.5); g != 1 {
		t.Fatalf("gain %g for invalid mode, want 1", g)
	}
}
