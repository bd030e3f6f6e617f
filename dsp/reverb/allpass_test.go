package reverb

import (
	"math"
	"testing"
)

func TestDiffuserImpulseResponse(t *testing.T) {
	d, err := newDiffuser(1000, 50)
	if err != nil {
		t.Fatalf("newDiffuser: %v", err)
	}

	const g = 0.5
	d.setParameters(10, g) // 10 samples at 1 kHz

	// y[0] = -g, then the stored impulse recirculates: y[10] = 1,
	// y[20] = g, y[30] = g^2, ...
	want := map[int]float64{
		0:  -g,
		10: 1,
		20: g,
		30: g * g,
		40: g * g * g,
	}

	for i := 0; i < 50; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		y := d.process(x)

		if w, ok := want[i]; ok {
			if math.Abs(y-w) > 1e-12 {
				t.Fatalf("sample %d: got=%g want=%g", i, y, w)
			}
		} else if math.Abs(y) > 1e-12 {
			t.Fatalf("sample %d: expected silence, got %g", i, y)
		}
	}
}

func TestDiffuserGainClamped(t *testing.T) {
	d, err := newDiffuser(44100, 50)
	if err != nil {
		t.Fatalf("newDiffuser: %v", err)
	}

	d.setParameters(5, 10)
	if d.gain != maxDiffuserGain {
		t.Fatalf("gain = %g, want clamp at %g", d.gain, maxDiffuserGain)
	}
	d.setParameters(5, -10)
	if d.gain != -maxDiffuserGain {
		t.Fatalf("gain = %g, want clamp at %g", d.gain, -maxDiffuserGain)
	}
}

func TestDiffuserStableAtMaxGain(t *testing.T) {
	d, err := newDiffuser(44100, 50)
	if err != nil {
		t.Fatalf("newDiffuser: %v", err)
	}
	d.setParameters(13.7, maxDiffuserGain)

	// Feed an impulse and confirm the recirculation dies out.
	var tail float64
	for i := 0; i < 44100; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		y := d.process(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("non-finite output at sample %d", i)
		}
		if i > 40000 {
			tail += y * y
		}
	}
	if tail > 1e-6 {
		t.Fatalf("tail energy %g after 1 s, allpass not decaying", tail)
	}
}

func TestDiffuserResetClearsState(t *testing.T) {
	d, err := newDiffuser(1000, 50)
	if err != nil {
		t.Fatalf("newDiffuser: %v", err)
	}
	d.setParameters(10, 0.6)

	d.process(1)
	d.reset()

	for i := 0; i < 40; i++ {
		if y := d.process(0); y != 0 {
			t.Fatalf("sample %d after reset: %g, want 0", i, y)
		}
	}
}
