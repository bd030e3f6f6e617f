package reverb

import "testing"

func TestModeStringsDistinct(t *testing.T) {
	seen := map[string]Mode{}
	for m := ModePlate; m < numModes; m++ {
		if !m.Valid() {
			t.Fatalf("mode %d not valid", m)
		}
		s := m.String()
		if s == "" {
			t.Fatalf("mode %d has empty name", m)
		}
		if prev, ok := seen[s]; ok {
			t.Fatalf("modes %d and %d share name %q", prev, m, s)
		}
		seen[s] = m
	}

	if Mode(-1).Valid() || Mode(numModes).Valid() {
		t.Fatal("out-of-range mode reported valid")
	}
}

func TestModePresetsSane(t *testing.T) {
	for m := ModePlate; m < numModes; m++ {
		p := modePresets[m]

		prev := 0.0
		for i, d := range p.delayTimesMs {
			if d <= prev {
				t.Fatalf("%s: delay %d (%g ms) not strictly ascending", m, i, d)
			}
			prev = d
		}

		// Longest base delay, scaled by the maximum room-size factor (2x),
		// must fit the slot buffers.
		if p.delayTimesMs[numDelays-1]*2 > slotBufferSeconds*1000 {
			t.Fatalf("%s: longest delay %g ms overruns %g ms buffers", m, p.delayTimesMs[numDelays-1]*2, slotBufferSeconds*1000)
		}

		if p.decayMultiplier <= 0 {
			t.Fatalf("%s: decayMultiplier %g", m, p.decayMultiplier)
		}
		if p.diffusion < 0 || p.diffusion > 1 {
			t.Fatalf("%s: diffusion %g outside [0, 1]", m, p.diffusion)
		}
		if p.dampingBase < 0 || p.dampingBase > 0.95 {
			t.Fatalf("%s: dampingBase %g outside [0, 0.95]", m, p.dampingBase)
		}
		if p.preDelayMs < 0 || p.preDelayMs > maxEarlyOffsetMs {
			t.Fatalf("%s: preDelayMs %g outside [0, %g]", m, p.preDelayMs, maxEarlyOffsetMs)
		}
		if p.erToLate < 0 {
			t.Fatalf("%s: erToLate %g negative", m, p.erToLate)
		}
		if p.lowDecayMult <= 0 || p.highDecayMult <= 0 {
			t.Fatalf("%s: band decay multipliers %g/%g", m, p.lowDecayMult, p.highDecayMult)
		}
		if p.saturationDrive < 0 || p.saturationDrive > 1 {
			t.Fatalf("%s: saturationDrive %g outside [0, 1]", m, p.saturationDrive)
		}
	}
}

func TestModeDecayMultiplierOrdering(t *testing.T) {
	// Small rooms decay faster than large halls; the presets encode that.
	if modePresets[ModeRoom].decayMultiplier >= modePresets[ModeHall].decayMultiplier {
		t.Fatal("Room should decay faster than Hall")
	}
	if modePresets[ModeHall].decayMultiplier >= modePresets[ModeCathedral].decayMultiplier {
		t.Fatal("Hall should decay faster than Cathedral")
	}
	if modePresets[ModeAmbience].decayMultiplier >= modePresets[ModeRoom].decayMultiplier {
		t.Fatal("Ambience should decay faster than Room")
	}
}
