package reverb

import (
	"math"
	"testing"
)

func TestDCBlockerRemovesDC(t *testing.T) {
	var d dcBlocker
	d.init(44100)

	var y float64
	for i := 0; i < 441000; i++ {
		y = d.process(1)
	}
	if math.Abs(y) > 1e-3 {
		t.Fatalf("DC residue %g after 10 s", y)
	}
}

func TestDCBlockerPassesAudio(t *testing.T) {
	var d dcBlocker
	d.init(44100)

	// A 1 kHz tone should come through near unity.
	w := 2 * math.Pi * 1000 / 44100.0
	var peak float64
	for i := 0; i < 44100; i++ {
		y := d.process(math.Sin(w * float64(i)))
		if i > 22050 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	if peak < 0.95 || peak > 1.05 {
		t.Fatalf("1 kHz peak %g through DC blocker, want ~1", peak)
	}
}

func TestSaturatorTransparentBelowKnee(t *testing.T) {
	var s feedbackSaturator
	s.setDrive(0.5)

	for _, x := range []float64{0, 0.1, -0.3, 0.6, -0.64} {
		if y := s.process(x); y != x {
			t.Fatalf("process(%g) = %g below knee, want identity", x, y)
		}
	}
}

func TestSaturatorBoundedAboveKnee(t *testing.T) {
	var s feedbackSaturator
	s.setDrive(1)

	for _, x := range []float64{0.6, 1, 2, 10, 100} {
		y := s.process(x)
		if y <= s.threshold || y >= 1.5 {
			t.Fatalf("process(%g) = %g, want in (%g, 1.5)", x, y, s.threshold)
		}
		if ny := s.process(-x); ny != -y {
			t.Fatalf("process(%g) = %g, not odd-symmetric with %g", -x, ny, y)
		}
	}
}

func TestSaturatorZeroDriveIsBypass(t *testing.T) {
	var s feedbackSaturator
	s.setDrive(0)

	for _, x := range []float64{0.5, 5, -20} {
		if y := s.process(x); y != x {
			t.Fatalf("process(%g) = %g with zero drive, want identity", x, y)
		}
	}
}

func TestOutputEQFlatByDefaultInBand(t *testing.T) {
	var eq outputEQ
	eq.init(44100)

	// Defaults: 20 Hz low cut, 12 kHz high cut, no shelf or peak gain.
	// A 1 kHz tone passes essentially untouched.
	w := 2 * math.Pi * 1000 / 44100.0
	var peak float64
	for i := 0; i < 44100; i++ {
		y := eq.process(math.Sin(w * float64(i)))
		if i > 22050 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	if peak < 0.9 || peak > 1.1 {
		t.Fatalf("1 kHz peak %g through default EQ, want ~1", peak)
	}
}

func TestOutputEQLowCutAttenuates(t *testing.T) {
	var eq outputEQ
	eq.init(44100)
	eq.setLowCut(500)

	w := 2 * math.Pi * 60 / 44100.0
	var peak float64
	for i := 0; i < 88200; i++ {
		y := eq.process(math.Sin(w * float64(i)))
		if i > 44100 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	if peak > 0.2 {
		t.Fatalf("60 Hz peak %g with 500 Hz low cut, want strong attenuation", peak)
	}
}

func TestOutputEQPeakBoosts(t *testing.T) {
	var eq outputEQ
	eq.init(44100)
	eq.setPeak1(1000, 6, 1)

	w := 2 * math.Pi * 1000 / 44100.0
	var peak float64
	for i := 0; i < 44100; i++ {
		y := eq.process(math.Sin(w * float64(i)))
		if i > 22050 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}

	want := math.Pow(10, 6.0/20)
	if peak < want*0.85 || peak > want*1.15 {
		t.Fatalf("1 kHz peak %g with +6 dB bell, want ~%g", peak, want)
	}
}
