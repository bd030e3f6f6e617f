package reverb

import (
	"math"
	"testing"
)

func TestStereoEchoDisabledIsTransparent(t *testing.T) {
	e, err := newStereoEcho(44100)
	if err != nil {
		t.Fatalf("newStereoEcho: %v", err)
	}
	e.setParameters(0, 0.5, 1)

	for i := 0; i < 1024; i++ {
		x := float64(i) * 0.001
		l, r := e.process(x, -x)
		if l != x || r != -x {
			t.Fatalf("sample %d: (%g, %g) want (%g, %g)", i, l, r, x, -x)
		}
	}
}

func TestStereoEchoRepeats(t *testing.T) {
	const sr = 1000.0

	e, err := newStereoEcho(sr)
	if err != nil {
		t.Fatalf("newStereoEcho: %v", err)
	}
	e.setParameters(100, 0.5, 0) // 100 samples, no ping-pong

	n := 350
	outL := make([]float64, n)
	for i := 0; i < n; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		outL[i], _ = e.process(x, 0)
	}

	want := map[int]float64{
		0:   1,    // dry
		100: 1,    // first repeat
		200: 0.5,  // second repeat
		300: 0.25, // third repeat
	}
	for i, w := range want {
		if math.Abs(outL[i]-w) > 1e-12 {
			t.Fatalf("sample %d: got=%g want=%g", i, outL[i], w)
		}
	}
}

func TestStereoEchoPingPongAlternatesSides(t *testing.T) {
	const sr = 1000.0

	e, err := newStereoEcho(sr)
	if err != nil {
		t.Fatalf("newStereoEcho: %v", err)
	}
	e.setParameters(100, 0.5, 1)

	n := 350
	outL := make([]float64, n)
	outR := make([]float64, n)
	for i := 0; i < n; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		outL[i], outR[i] = e.process(x, 0)
	}

	// First repeat stays left, the fed-back second repeat crosses right.
	if math.Abs(outL[100]-1) > 1e-12 || math.Abs(outR[100]) > 1e-12 {
		t.Fatalf("first repeat: L=%g R=%g, want L=1 R=0", outL[100], outR[100])
	}
	if math.Abs(outR[200]-0.5) > 1e-12 || math.Abs(outL[200]) > 1e-12 {
		t.Fatalf("second repeat: L=%g R=%g, want L=0 R=0.5", outL[200], outR[200])
	}
	if math.Abs(outL[300]-0.25) > 1e-12 {
		t.Fatalf("third repeat: L=%g, want 0.25", outL[300])
	}
}

func TestStereoEchoFeedbackClamped(t *testing.T) {
	e, err := newStereoEcho(44100)
	if err != nil {
		t.Fatalf("newStereoEcho: %v", err)
	}
	e.setParameters(50, 5, 0)

	if e.feedback != maxEchoFeedback {
		t.Fatalf("feedback = %g, want clamp at %g", e.feedback, maxEchoFeedback)
	}

	// Even at the clamp the repeats decay.
	var late float64
	for i := 0; i < 441000; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		l, _ := e.process(x, 0)
		if i > 400000 {
			late += l * l
		}
	}
	if late > 0.1 {
		t.Fatalf("late energy %g, echo not decaying at max feedback", late)
	}
}
