package reverb

import (
	"math"
	"math/rand"
)

// randomUpdateHz is how often the smoothed-random modulation source picks a
// new target value.
const randomUpdateHz = 30.0

// modulator generates the per-slot delay-time modulation signal: three sine
// LFOs at non-harmonically related rates (1x, golden ratio, 1/golden^2)
// summed with a slowly wandering random component. Each slot gets unique
// phase offsets and a unique random seed so no two slots breathe in sync.
type modulator struct {
	sampleRate float64

	phase1, phase2, phase3 float64
	inc1, inc2, inc3       float64

	depth        float64
	randomAmount float64

	rng           *rand.Rand
	randomTarget  float64
	randomCurrent float64
	randomCounter int
	randomPeriod  int
}

// initModulator seeds the phases and random generator from the slot index.
// Deterministic: the same index always yields the same modulation sequence,
// which keeps engine output reproducible for state round-trip tests.
func (m *modulator) init(sampleRate float64, index int) {
	m.sampleRate = sampleRate

	m.phase1 = math.Mod(float64(index)*0.25, 1)
	m.phase2 = math.Mod(float64(index)*0.41, 1)
	m.phase3 = math.Mod(float64(index)*0.67, 1)

	m.rng = rand.New(rand.NewSource(int64(42 + index*17)))
	m.randomTarget = 0
	m.randomCurrent = 0
	m.randomCounter = 0
	m.randomPeriod = int(sampleRate / randomUpdateHz)
	if m.randomPeriod < 1 {
		m.randomPeriod = 1
	}
}

// setParameters retunes the three LFO rates from a base rate in Hz.
// depth is the peak modulation amount (in the caller's units, here ms),
// randomAmount blends in the wandering component.
func (m *modulator) setParameters(baseRate, depth, randomAmount float64) {
	m.inc1 = baseRate / m.sampleRate
	m.inc2 = baseRate * 1.618 / m.sampleRate
	m.inc3 = baseRate * 0.382 / m.sampleRate
	m.depth = depth
	m.randomAmount = randomAmount
}

// next advances the modulator one sample and returns the modulation value.
func (m *modulator) next() float64 {
	lfo1 := math.Sin(m.phase1*2*math.Pi) * 0.5
	lfo2 := math.Sin(m.phase2*2*math.Pi) * 0.3
	lfo3 := math.Sin(m.phase3*2*math.Pi) * 0.2

	m.randomCounter++
	if m.randomCounter >= m.randomPeriod {
		m.randomCounter = 0
		m.randomTarget = m.rng.Float64()*2 - 1
	}
	m.randomCurrent += (m.randomTarget - m.randomCurrent) * 0.001

	out := (lfo1 + lfo2 + lfo3 + m.randomCurrent*m.randomAmount) * m.depth

	m.phase1 += m.inc1
	m.phase2 += m.inc2
	m.phase3 += m.inc3

	if m.phase1 >= 1 {
		m.phase1 -= 1
	}
	if m.phase2 >= 1 {
		m.phase2 -= 1
	}
	if m.phase3 >= 1 {
		m.phase3 -= 1
	}

	return out
}
