package reverb

import (
	"math"
	"testing"
)

func prepareParams(t *testing.T) *Params {
	t.Helper()

	p := NewParams(NewEngine())
	if err := p.Prepare(testSampleRate, 512); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	return p
}

func TestParamsDefaultsReachEngine(t *testing.T) {
	p := prepareParams(t)

	if got := p.Engine().Mode(); got != ModePlate {
		t.Fatalf("default mode %v, want %v", got, ModePlate)
	}

	// Prepare snaps smoothers, so the engine already carries the defaults.
	if p.smoothers[pMix].Value() != paramDefs[pMix].def {
		t.Fatalf("mix smoother at %g, want default %g", p.smoothers[pMix].Value(), paramDefs[pMix].def)
	}
	if p.smoothers[pSize].IsRamping() {
		t.Fatal("smoother ramping right after Prepare")
	}
}

func TestParamsSmoothTowardTarget(t *testing.T) {
	p := prepareParams(t)

	p.SetDamping(1)

	// fastRamp at 44.1 kHz is 882 steps.
	steps := int(fastRamp*testSampleRate) + 2
	prev := paramDefs[pDamping].def
	for i := 0; i < steps; i++ {
		p.Process(0, 0)
		v := p.smoothers[pDamping].Value()
		if v < prev-1e-15 {
			t.Fatalf("step %d: smoothed value %g moved away from target", i, v)
		}
		prev = v
	}

	if prev != 1 {
		t.Fatalf("smoothed damping %g after full ramp, want 1", prev)
	}
}

func TestParamsDiscreteApplyAtSampleBoundary(t *testing.T) {
	p := prepareParams(t)

	p.SetMode(ModeCathedral)
	p.SetEnvelopeMode(EnvelopeGate)
	p.SetFreeze(true)
	p.SetStereoInvert(true)

	p.Process(0, 0)

	e := p.Engine()
	if e.Mode() != ModeCathedral {
		t.Fatalf("mode %v after Process, want Cathedral", e.Mode())
	}
	if !e.Freeze() {
		t.Fatal("freeze not applied after Process")
	}
}

func TestParamsMetersFollowOutput(t *testing.T) {
	p := prepareParams(t)
	p.SetMix(0) // dry passthrough makes the expected level exact

	for i := 0; i < int(fastRamp*testSampleRate)*2; i++ {
		p.Process(0, 0)
	}
	for i := 0; i < 1024; i++ {
		p.Process(0.5, -0.25)
	}

	l, r := p.OutputLevels()
	if math.Abs(l-0.5) > 1e-6 {
		t.Fatalf("left meter %g, want 0.5", l)
	}
	if math.Abs(r-0.25) > 1e-6 {
		t.Fatalf("right meter %g, want 0.25", r)
	}

	// Silence: the peak decays.
	for i := 0; i < int(testSampleRate); i++ {
		p.Process(0, 0)
	}
	l, _ = p.OutputLevels()
	if l > 0.05 {
		t.Fatalf("left meter %g one second into silence, want decay", l)
	}
}

func TestParamsSnapshotCoversEveryParam(t *testing.T) {
	var s Snapshot
	slots := snapshotSlots(&s)
	for i, ptr := range slots {
		if ptr == nil {
			t.Fatalf("smoothed param %d has no snapshot field", i)
		}
	}

	// Distinct values survive the round trip per slot.
	p := NewParams(NewEngine())
	for i := range p.targets {
		p.targets[i].Store(float64(i) + 0.25)
	}
	snap := p.Snapshot()

	q := NewParams(NewEngine())
	q.Restore(snap)
	for i := range q.targets {
		if got, want := q.targets[i].Load(), float64(i)+0.25; got != want {
			t.Fatalf("param %d restored as %g, want %g", i, got, want)
		}
	}
}

func TestParamsSnapshotDiscreteState(t *testing.T) {
	p := NewParams(NewEngine())
	p.SetMode(ModeDirtyHall)
	p.SetEnvelopeMode(EnvelopeSwell)
	p.SetFreeze(true)
	p.SetStereoInvert(true)

	snap := p.Snapshot()
	if snap.Mode != ModeDirtyHall || snap.EnvelopeMode != EnvelopeSwell || !snap.Freeze || !snap.StereoInvert {
		t.Fatalf("snapshot discrete state wrong: %+v", snap)
	}

	q := NewParams(NewEngine())
	q.Restore(snap)
	if Mode(q.mode.Load()) != ModeDirtyHall || !q.freeze.Load() {
		t.Fatal("discrete state not restored")
	}
}
