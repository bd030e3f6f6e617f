package reverb

// Mode selects a parameter preset for the reverb network. Modes differ only
// in data (delay tables, damping, modulation, decay shaping defaults); the
// processing graph is identical for all of them.
type Mode int

const (
	ModePlate Mode = iota
	ModeRoom
	ModeHall
	ModeChamber
	ModeCathedral
	ModeAmbience
	ModeBrightHall
	ModeChorusSpace
	ModeRandomSpace
	ModeDirtyHall

	numModes
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePlate:
		return "Plate"
	case ModeRoom:
		return "Room"
	case ModeHall:
		return "Hall"
	case ModeChamber:
		return "Chamber"
	case ModeCathedral:
		return "Cathedral"
	case ModeAmbience:
		return "Ambience"
	case ModeBrightHall:
		return "Bright Hall"
	case ModeChorusSpace:
		return "Chorus Space"
	case ModeRandomSpace:
		return "Random Space"
	case ModeDirtyHall:
		return "Dirty Hall"
	default:
		return "Unknown"
	}
}

// Valid reports whether m names a defined mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < numModes
}

// modeParameters holds the per-mode preset constants. Delay times are
// prime-derived milliseconds chosen to avoid harmonically related loop
// lengths (metallic ringing).
type modeParameters struct {
	delayTimesMs [numDelays]float64

	dampingBase     float64 // one-pole HF damping floor, 0..0.95
	highShelfGainDB float64 // wet-path tonal tilt
	highShelfFreq   float64

	modRate   float64 // Hz, scaled by the user rate
	modDepth  float64 // ms, scaled by the user depth
	modRandom float64 // random modulation blend 0..1

	diffusion   float64 // input diffuser feedback ceiling 0..1
	earlyAmount float64 // early reflection level 0..1
	preDelayMs  float64 // mode-intrinsic pre-delay added to the user value

	decayMultiplier float64 // scales the user RT60
	lowDecayMult    float64 // mode default bass decay tilt
	highDecayMult   float64 // mode default treble decay tilt

	saturationDrive float64 // feedback saturator drive 0..1
	erToLate        float64 // early reflection crossfeed into the tank
}

var modePresets = [numModes]modeParameters{
	ModePlate: {
		delayTimesMs:    [numDelays]float64{17.3, 23.9, 31.3, 41.7, 53.1, 67.3, 79.9, 97.3},
		dampingBase:     0.35,
		highShelfGainDB: 2.0,
		highShelfFreq:   7000,
		modRate:         1.8,
		modDepth:        1.0,
		modRandom:       0.35,
		diffusion:       0.75,
		earlyAmount:     0, // plates have no discrete first bounces
		preDelayMs:      0,
		decayMultiplier: 1.2,
		lowDecayMult:    1.15,
		highDecayMult:   0.9,
		saturationDrive: 0.06,
		erToLate:        0,
	},
	ModeRoom: {
		delayTimesMs:    [numDelays]float64{13.1, 19.7, 27.1, 33.7, 41.3, 49.9, 59.3, 67.9},
		dampingBase:     0.45,
		highShelfGainDB: 0,
		highShelfFreq:   8000,
		modRate:         1.2,
		modDepth:        0.6,
		modRandom:       0.25,
		diffusion:       0.6,
		earlyAmount:     0.15,
		preDelayMs:      12,
		decayMultiplier: 0.9,
		lowDecayMult:    1.2,
		highDecayMult:   0.7,
		saturationDrive: 0.05,
		erToLate:        0.2,
	},
	ModeHall: {
		delayTimesMs:    [numDelays]float64{41.3, 53.9, 67.1, 79.9, 97.3, 113.9, 131.3, 149.9},
		dampingBase:     0.5,
		highShelfGainDB: -1.5,
		highShelfFreq:   5000,
		modRate:         0.6,
		modDepth:        0.8,
		modRandom:       0.2,
		diffusion:       0.8,
		earlyAmount:     0.12,
		preDelayMs:      25,
		decayMultiplier: 1.4,
		lowDecayMult:    1.3,
		highDecayMult:   0.6,
		saturationDrive: 0.03,
		erToLate:        0.15,
	},
	ModeChamber: {
		delayTimesMs:    [numDelays]float64{23.3, 31.9, 43.1, 53.7, 61.7, 73.1, 83.3, 96.1},
		dampingBase:     0.4,
		highShelfGainDB: -0.5,
		highShelfFreq:   6500,
		modRate:         0.9,
		modDepth:        0.7,
		modRandom:       0.2,
		diffusion:       0.85,
		earlyAmount:     0.18,
		preDelayMs:      15,
		decayMultiplier: 1.1,
		lowDecayMult:    1.2,
		highDecayMult:   0.75,
		saturationDrive: 0.04,
		erToLate:        0.25,
	},
	ModeCathedral: {
		delayTimesMs:    [numDelays]float64{59.3, 73.1, 89.9, 107.3, 127.1, 143.3, 163.9, 181.1},
		dampingBase:     0.55,
		highShelfGainDB: -3.0,
		highShelfFreq:   3500,
		modRate:         0.4,
		modDepth:        0.9,
		modRandom:       0.15,
		diffusion:       0.85,
		earlyAmount:     0.1,
		preDelayMs:      40,
		decayMultiplier: 1.8,
		lowDecayMult:    1.4,
		highDecayMult:   0.5,
		saturationDrive: 0.02,
		erToLate:        0.1,
	},
	ModeAmbience: {
		delayTimesMs:    [numDelays]float64{7.1, 11.3, 15.7, 19.9, 24.1, 29.3, 34.7, 39.7},
		dampingBase:     0.5,
		highShelfGainDB: 0,
		highShelfFreq:   9000,
		modRate:         1.5,
		modDepth:        0.4,
		modRandom:       0.3,
		diffusion:       0.7,
		earlyAmount:     0.35,
		preDelayMs:      4,
		decayMultiplier: 0.5,
		lowDecayMult:    1.0,
		highDecayMult:   0.8,
		saturationDrive: 0.03,
		erToLate:        0.4,
	},
	ModeBrightHall: {
		delayTimesMs:    [numDelays]float64{41.3, 53.9, 67.1, 79.9, 97.3, 113.9, 131.3, 149.9},
		dampingBase:     0.25,
		highShelfGainDB: 3.0,
		highShelfFreq:   8000,
		modRate:         0.7,
		modDepth:        0.8,
		modRandom:       0.2,
		diffusion:       0.8,
		earlyAmount:     0.12,
		preDelayMs:      25,
		decayMultiplier: 1.4,
		lowDecayMult:    1.1,
		highDecayMult:   0.95,
		saturationDrive: 0.02,
		erToLate:        0.15,
	},
	ModeChorusSpace: {
		delayTimesMs:    [numDelays]float64{37.3, 47.9, 59.9, 71.3, 83.3, 101.9, 115.1, 133.7},
		dampingBase:     0.45,
		highShelfGainDB: 0.5,
		highShelfFreq:   7000,
		modRate:         2.4, // deep chorused tail is the point of this mode
		modDepth:        2.2,
		modRandom:       0.4,
		diffusion:       0.8,
		earlyAmount:     0.1,
		preDelayMs:      18,
		decayMultiplier: 1.3,
		lowDecayMult:    1.2,
		highDecayMult:   0.8,
		saturationDrive: 0.04,
		erToLate:        0.15,
	},
	ModeRandomSpace: {
		delayTimesMs:    [numDelays]float64{31.3, 43.7, 61.3, 71.9, 89.9, 103.1, 127.3, 139.7},
		dampingBase:     0.45,
		highShelfGainDB: 0,
		highShelfFreq:   7000,
		modRate:         1.1,
		modDepth:        1.4,
		modRandom:       0.9, // mostly random wander instead of periodic LFOs
		diffusion:       0.75,
		earlyAmount:     0.12,
		preDelayMs:      20,
		decayMultiplier: 1.3,
		lowDecayMult:    1.2,
		highDecayMult:   0.75,
		saturationDrive: 0.04,
		erToLate:        0.2,
	},
	ModeDirtyHall: {
		delayTimesMs:    [numDelays]float64{41.3, 53.9, 67.1, 79.9, 97.3, 113.9, 131.3, 149.9},
		dampingBase:     0.55,
		highShelfGainDB: -2.0,
		highShelfFreq:   4500,
		modRate:         0.6,
		modDepth:        1.0,
		modRandom:       0.3,
		diffusion:       0.75,
		earlyAmount:     0.12,
		preDelayMs:      25,
		decayMultiplier: 1.4,
		lowDecayMult:    1.3,
		highDecayMult:   0.6,
		saturationDrive: 0.35, // driven feedback path is what makes it dirty
		erToLate:        0.15,
	},
}
