// Package crossover implements Linkwitz-Riley crossover networks for
// splitting a signal into complementary frequency bands.
package crossover

import (
	"fmt"

	"github.com/dusk-audio/algo-reverb/dsp/filter/biquad"
	"github.com/dusk-audio/algo-reverb/dsp/filter/design"
)

// Crossover is a two-way Linkwitz-Riley crossover network that splits
// an input signal into complementary lowpass and highpass outputs.
//
// The lowpass and highpass outputs sum to an allpass-filtered version
// of the input (flat magnitude response). Polarity correction for
// orders congruent to 2 mod 4 (LR2, LR6, ...) is handled automatically.
type Crossover struct {
	lp    *biquad.Chain
	hp    *biquad.Chain
	freq  float64
	order int
	sr    float64
}

// New creates a two-way Linkwitz-Riley crossover at the given frequency
// and order. Orders 2 and 4 are supported.
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("crossover: sample rate must be positive, got %v", sampleRate)
	}
	if freq <= 0 || freq >= sampleRate/2 {
		return nil, fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	lpCoeffs := design.LinkwitzRileyLP(freq, order, sampleRate)
	hpCoeffs := design.LinkwitzRileyHP(freq, order, sampleRate)
	if lpCoeffs == nil || hpCoeffs == nil {
		return nil, fmt.Errorf("crossover: unsupported order %d (want 2 or 4)", order)
	}

	hpGain := 1.0
	if design.LinkwitzRileyNeedsHPInvert(order) {
		hpGain = -1
	}

	return &Crossover{
		lp:    biquad.NewChain(lpCoeffs),
		hp:    biquad.NewChain(hpCoeffs, biquad.WithGain(hpGain)),
		freq:  freq,
		order: order,
		sr:    sampleRate,
	}, nil
}

// ProcessSample filters one input sample and returns the lowpass and
// highpass outputs. Their sum is allpass (flat magnitude response).
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.lp.ProcessSample(x), c.hp.ProcessSample(x)
}

// SetFrequency retunes the crossover in place, preserving filter state.
func (c *Crossover) SetFrequency(freq float64) error {
	if freq <= 0 || freq >= c.sr/2 {
		return fmt.Errorf("crossover: frequency must be in (0, %v), got %v", c.sr/2, freq)
	}

	c.lp.UpdateCoefficients(design.LinkwitzRileyLP(freq, c.order, c.sr), c.lp.Gain())
	c.hp.UpdateCoefficients(design.LinkwitzRileyHP(freq, c.order, c.sr), c.hp.Gain())
	c.freq = freq

	return nil
}

// Freq returns the crossover frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// Order returns the Linkwitz-Riley order (always even).
func (c *Crossover) Order() int { return c.order }

// SampleRate returns the sample rate in Hz.
func (c *Crossover) SampleRate() float64 { return c.sr }

// Reset clears the internal filter states of both LP and HP chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}

// MultiBand is a multi-way crossover network built from cascaded two-way
// Linkwitz-Riley crossovers. It splits an input signal into N+1 frequency
// bands for N crossover frequencies.
//
// The bands are ordered from lowest to highest frequency. Each stage's
// highpass output feeds the next stage's input. Reconstruction is exact for
// two bands and degrades gracefully as crossover points move closer; the
// error is negligible when crossovers are spaced at least an octave apart.
type MultiBand struct {
	stages []*Crossover
	bands  int
}

// NewMultiBand creates a multi-way crossover from the given crossover
// frequencies and order. Frequencies must be in strictly ascending order
// and all within (0, sampleRate/2).
//
// For N frequencies, the crossover produces N+1 output bands.
func NewMultiBand(freqs []float64, order int, sampleRate float64) (*MultiBand, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("crossover: at least one frequency is required")
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return nil, fmt.Errorf("crossover: frequencies must be strictly ascending, got %.1f after %.1f", freqs[i], freqs[i-1])
		}
	}

	stages := make([]*Crossover, len(freqs))
	for i, f := range freqs {
		xo, err := New(f, order, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("crossover: stage %d: %w", i, err)
		}
		stages[i] = xo
	}

	return &MultiBand{
		stages: stages,
		bands:  len(freqs) + 1,
	}, nil
}

// NumBands returns the number of output bands.
func (m *MultiBand) NumBands() int { return m.bands }

// Stages returns the underlying two-way crossover stages.
func (m *MultiBand) Stages() []*Crossover { return m.stages }

// ProcessSampleInto filters one input sample and writes the per-band
// outputs into out, ordered from lowest to highest band. out must have
// NumBands() elements. Zero-alloc; safe to call per sample in an audio
// callback.
func (m *MultiBand) ProcessSampleInto(out []float64, x float64) {
	remainder := x
	for i, stage := range m.stages {
		lo, hi := stage.ProcessSample(remainder)
		out[i] = lo
		remainder = hi
	}
	out[m.bands-1] = remainder
}

// SetFrequencies retunes all crossover points in place. Frequencies must be
// strictly ascending and match the stage count.
func (m *MultiBand) SetFrequencies(freqs []float64) error {
	if len(freqs) != len(m.stages) {
		return fmt.Errorf("crossover: expected %d frequencies, got %d", len(m.stages), len(freqs))
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return fmt.Errorf("crossover: frequencies must be strictly ascending, got %.1f after %.1f", freqs[i], freqs[i-1])
		}
	}

	for i, f := range freqs {
		if err := m.stages[i].SetFrequency(f); err != nil {
			return fmt.Errorf("crossover: stage %d: %w", i, err)
		}
	}

	return nil
}

// Reset clears all internal filter states.
func (m *MultiBand) Reset() {
	for _, s := range m.stages {
		s.Reset()
	}
}
