package delay

import (
	"math"
	"testing"
)

func TestNewRejectsInvalidSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size 0")
	}
	if _, err := New(-5); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestIntegerDelay(t *testing.T) {
	line, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 8; i++ {
		line.Write(float64(i))
	}

	// Write position has wrapped; delay 1 is the most recent sample.
	if got := line.Read(1); got != 7 {
		t.Fatalf("Read(1) = %g, want 7", got)
	}
	if got := line.Read(4); got != 4 {
		t.Fatalf("Read(4) = %g, want 4", got)
	}
}

func TestReadClampsDelay(t *testing.T) {
	line, _ := New(4)
	line.Write(1)
	line.Write(2)
	line.Write(3)
	line.Write(4)

	if got := line.Read(100); got != line.Read(3) {
		t.Fatalf("expected out-of-range delay clamped, got %g", got)
	}
	if got := line.Read(-1); got != line.Read(0) {
		t.Fatalf("expected negative delay clamped, got %g", got)
	}
}

func TestReadLinearOnRamp(t *testing.T) {
	line, _ := New(16)
	for i := 0; i < 16; i++ {
		line.Write(float64(i))
	}

	// On a ramp, linear interpolation is exact between neighbors.
	got := line.ReadLinear(2.5)
	want := 0.5 * (line.Read(2) + line.Read(3))
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("ReadLinear(2.5) = %g, want %g", got, want)
	}
}

func TestReadFractionalOnRamp(t *testing.T) {
	line, _ := New(32)
	for i := 0; i < 32; i++ {
		line.Write(float64(i))
	}

	got := line.ReadFractional(5.25)
	want := 0.75*line.Read(5) + 0.25*line.Read(6)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("ReadFractional(5.25) = %g, want %g", got, want)
	}
}

func TestSetSizeClearsState(t *testing.T) {
	line, _ := New(8)
	line.Write(1)
	line.Write(2)

	if err := line.SetSize(16); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if line.Len() != 16 {
		t.Fatalf("Len = %d, want 16", line.Len())
	}
	for i := 0; i < 16; i++ {
		if got := line.Read(i); got != 0 {
			t.Fatalf("expected cleared buffer, Read(%d) = %g", i, got)
		}
	}

	if err := line.SetSize(0); err == nil {
		t.Fatal("expected error for size 0")
	}
}

func TestResetClearsBuffer(t *testing.T) {
	line, _ := New(4)
	line.Write(0.7)
	line.Reset()

	for i := 0; i < 4; i++ {
		if got := line.Read(i); got != 0 {
			t.Fatalf("expected zero after Reset, Read(%d) = %g", i, got)
		}
	}
}

func TestThiranReaderDelaysImpulse(t *testing.T) {
	line, _ := New(64)
	reader := &ThiranReader{}

	// Feed an impulse and accumulate the reader output energy. A 10.5 sample
	// delay through the allpass must preserve the impulse energy (unit
	// magnitude response).
	energy := 0.0
	for n := 0; n < 64; n++ {
		x := 0.0
		if n == 0 {
			x = 1
		}
		line.Write(x)
		out := reader.Read(line, 10.5)
		energy += out * out
	}

	if math.Abs(energy-1) > 1e-3 {
		t.Fatalf("allpass read energy = %g, want ~1", energy)
	}
}

func TestThiranReaderResetClearsState(t *testing.T) {
	line, _ := New(16)
	reader := &ThiranReader{}

	line.Write(1)
	reader.Read(line, 2.5)
	reader.Reset()
	line.Reset()

	for n := 0; n < 8; n++ {
		line.Write(0)
		if got := reader.Read(line, 2.5); got != 0 {
			t.Fatalf("expected silence after reset, got %g", got)
		}
	}
}
