package reverb

import (
	"math"
	"testing"
)

func TestSlotFeedbackGain(t *testing.T) {
	tests := []struct {
		delaySec float64
		rt60     float64
		want     float64
	}{
		{0.05, 2.0, math.Pow(10, -3*0.05/2.0)},
		{0.1, 1.0, math.Pow(10, -3*0.1/1.0)},
		{0, 2.0, 0},          // zero delay contributes nothing
		{-1, 2.0, 0},         // negative delay contributes nothing
		{0.05, 0.01, math.Pow(10, -3*0.05/minRT60)}, // rt60 floored
	}

	for _, tt := range tests {
		got := slotFeedbackGain(tt.delaySec, tt.rt60)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("slotFeedbackGain(%g, %g) = %g, want %g", tt.delaySec, tt.rt60, got, tt.want)
		}
	}
}

func TestSlotFeedbackGainNeverReachesUnity(t *testing.T) {
	for _, rt60 := range []float64{0.1, 1, 10, 60, 1e6} {
		for _, d := range []float64{0.001, 0.01, 0.1, 0.4} {
			g := slotFeedbackGain(d, rt60)
			if g < 0 || g > 0.995 {
				t.Fatalf("gain %g outside [0, 0.995] for delay=%g rt60=%g", g, d, rt60)
			}
		}
	}
}

func TestBandDecayUniformMultipliers(t *testing.T) {
	f, err := newBandDecayFilter(44100)
	if err != nil {
		t.Fatalf("newBandDecayFilter: %v", err)
	}

	// With all multipliers at 1 every band carries baseGain, so a DC input
	// must settle at baseGain once the crossovers pass it through.
	const baseGain = 0.9
	var y float64
	for i := 0; i < 44100; i++ {
		y = f.process(1, baseGain)
	}
	if math.Abs(y-baseGain) > 1e-3 {
		t.Fatalf("DC response %g, want %g", y, baseGain)
	}
}

func TestBandDecayLowMultiplierShortensBass(t *testing.T) {
	f, err := newBandDecayFilter(44100)
	if err != nil {
		t.Fatalf("newBandDecayFilter: %v", err)
	}
	f.setMultipliers(0.5, 1, 1, 1)

	// baseGain^(1/0.5) = baseGain^2 < baseGain: DC settles lower.
	const baseGain = 0.9
	var y float64
	for i := 0; i < 44100; i++ {
		y = f.process(1, baseGain)
	}
	if math.Abs(y-baseGain*baseGain) > 1e-3 {
		t.Fatalf("DC response %g, want %g", y, baseGain*baseGain)
	}
}

func TestBandDecayZeroBaseGainIsSilent(t *testing.T) {
	f, err := newBandDecayFilter(44100)
	if err != nil {
		t.Fatalf("newBandDecayFilter: %v", err)
	}

	// Prime the crossovers, then drop baseGain to zero.
	for i := 0; i < 1024; i++ {
		f.process(1, 0.9)
	}
	for i := 0; i < 1024; i++ {
		if y := f.process(1, 0); y != 0 {
			t.Fatalf("sample %d: output %g with zero baseGain", i, y)
		}
	}
}

func TestBandDecayCrossoverNudge(t *testing.T) {
	f, err := newBandDecayFilter(44100)
	if err != nil {
		t.Fatalf("newBandDecayFilter: %v", err)
	}

	// Collapsed and reversed frequencies must come out strictly ascending.
	f.setCrossovers(800, 300, 1000)

	if !(f.freqs[0] < f.freqs[1] && f.freqs[1] < f.freqs[2]) {
		t.Fatalf("crossovers not ascending after nudge: %v", f.freqs)
	}
	if f.freqs[1] < f.freqs[0]*1.1-1e-9 || f.freqs[2] < f.freqs[1]*1.1-1e-9 {
		t.Fatalf("crossovers closer than 1.1x spacing: %v", f.freqs)
	}
}

func TestBandDecayGainCeiling(t *testing.T) {
	f, err := newBandDecayFilter(44100)
	if err != nil {
		t.Fatalf("newBandDecayFilter: %v", err)
	}
	f.setMultipliers(4, 4, 4, 4)

	f.process(1, 0.995)
	for i, g := range f.gains {
		if g > maxBandGain {
			t.Fatalf("band %d gain %g above ceiling %g", i, g, maxBandGain)
		}
	}
}
