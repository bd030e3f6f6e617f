// Package ir analyzes reverb impulse responses: Schroeder decay curves,
// reverberation times, windowed energy envelopes and tail spectra.
package ir

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidWindow     = errors.New("ir: window length must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// Metrics holds the decay measurements of one impulse response.
type Metrics struct {
	RT60      float64 // reverberation time in seconds (from T30, falling back to T20)
	EDT       float64 // early decay time, 0 to -10 dB extrapolated
	T20       float64 // RT from the -5 to -25 dB slope
	T30       float64 // RT from the -5 to -35 dB slope
	PeakIndex int     // sample index of the IR peak
}

// Analyzer computes decay metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer returns an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all decay metrics. The IR should start at or before the
// direct sound; analysis begins at the peak.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peakIdx := findPeak(ir)
	curve := a.schroeder(ir[peakIdx:])

	m := Metrics{
		PeakIndex: peakIdx,
		EDT:       a.reverbTime(curve, 0, -10),
		T20:       a.reverbTime(curve, -5, -25),
		T30:       a.reverbTime(curve, -5, -35),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}
	if m.RT60 == 0 {
		return m, ErrNoDecay
	}

	return m, nil
}

// DecayCurve returns the Schroeder backward integration of the squared IR in
// dB, normalized so the curve starts at 0 dB:
//
//	S(t) = 10*log10( sum_{i>=t} h[i]^2 / sum h[i]^2 )
func (a *Analyzer) DecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return a.schroeder(ir), nil
}

func (a *Analyzer) schroeder(ir []float64) []float64 {
	n := len(ir)
	curve := make([]float64, n)
	vecmath.MulBlock(curve, ir, ir)

	var cum float64
	for i := n - 1; i >= 0; i-- {
		cum += curve[i]
		curve[i] = cum
	}

	total := curve[0]
	if total <= 0 {
		return curve
	}

	for i := range curve {
		ratio := curve[i] / total
		if ratio <= 0 {
			curve[i] = -200
		} else {
			curve[i] = 10 * math.Log10(ratio)
		}
	}

	return curve
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB and
// extrapolates it to -60 dB. Returns 0 when the curve never reaches the range
// or does not decay.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	startIdx, endIdx := -1, -1
	for i, v := range curve {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}
		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}
	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(endIdx - startIdx + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

// EnvelopeRMS returns the RMS level of consecutive non-overlapping windows of
// windowLen samples. The trailing partial window is dropped.
func (a *Analyzer) EnvelopeRMS(ir []float64, windowLen int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if windowLen <= 0 {
		return nil, ErrInvalidWindow
	}

	squared := make([]float64, len(ir))
	vecmath.MulBlock(squared, ir, ir)

	var out []float64
	for start := 0; start+windowLen <= len(squared); start += windowLen {
		var sum float64
		for _, v := range squared[start : start+windowLen] {
			sum += v
		}
		out = append(out, math.Sqrt(sum/float64(windowLen)))
	}

	return out, nil
}

// TailSpectrum returns the magnitude spectrum of the IR segment starting at
// offset, over the next fftSize samples (zero-padded past the end). fftSize
// is rounded up to a power of two. The result holds bins 0..Nyquist.
func (a *Analyzer) TailSpectrum(ir []float64, offset, fftSize int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if offset < 0 {
		offset = 0
	}
	if fftSize < 2 {
		fftSize = 2
	}
	fftSize = nextPowerOf2(fftSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	for i := 0; i < fftSize && offset+i < len(ir); i++ {
		in[i] = complex(ir[offset+i], 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mags := make([]float64, bins)
	vecmath.Magnitude(mags, re, im)

	return mags, nil
}

func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0
	for i, v := range ir {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
