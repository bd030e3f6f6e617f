// Package delay implements circular delay lines with integer and
// fractional-sample reads.
package delay

import (
	"fmt"
	"math"

	"github.com/dusk-audio/algo-reverb/dsp/interp"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// SetSize reallocates the buffer to size samples and clears state. It is not
// real-time safe and is intended for prepare-time reconfiguration.
func (d *Line) SetSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("delay size must be > 0: %d", size)
	}

	if size != len(d.buffer) {
		d.buffer = make([]float64, size)
	} else {
		for i := range d.buffer {
			d.buffer[i] = 0
		}
	}
	d.writePos = 0

	return nil
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Out-of-range delays are clamped to
// the buffer extent.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	if delay > size-1 {
		delay = size - 1
	}
	readPos := (d.writePos - delay + size) % size
	return d.buffer[readPos]
}

// ReadLinear reads with two-point linear interpolation.
func (d *Line) ReadLinear(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	maxDelay := float64(size - 2)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	return interp.Linear(t, d.Read(p), d.Read(p+1))
}

// ReadFractional reads with cubic Hermite interpolation.
func (d *Line) ReadFractional(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	maxDelay := float64(size - 3)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	xm1 := d.Read(maxInt(0, p-1))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// ThiranReader reads a delay line at a fractional position through a
// first-order allpass. Unlike Hermite interpolation the allpass has unit
// magnitude at all frequencies, which keeps a modulated feedback loop from
// breathing in level as the delay time moves.
type ThiranReader struct {
	prevIn  float64
	prevOut float64
}

// Read returns the sample of line at the fractional delay. The integer part
// is read directly and the fractional part is realized by the allpass state
// held in the reader. Call once per sample per line.
func (t *ThiranReader) Read(line *Line, delay float64) float64 {
	size := line.Len()
	if size == 0 {
		return 0
	}
	if delay < 1 {
		delay = 1
	}
	maxDelay := float64(size - 2)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	frac := delay - float64(p)

	a := interp.ThiranCoefficient(frac)
	in := line.Read(p)
	out := a*in + t.prevIn - a*t.prevOut

	t.prevIn = in
	t.prevOut = out

	return out
}

// Reset clears the allpass state.
func (t *ThiranReader) Reset() {
	t.prevIn = 0
	t.prevOut = 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
