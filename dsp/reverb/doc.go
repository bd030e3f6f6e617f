// Package reverb implements a stereo feedback delay network (FDN) reverb.
//
// The engine couples eight modulated delay lines per channel through an
// orthogonal Hadamard matrix. Each feedback tap passes through a four-band
// decay filter so low, low-mid, mid and high frequencies decay at
// independent rates, the way real rooms absorb treble faster than bass.
// Allpass diffuser chains smear the input before it enters the network and
// two tank diffusers thicken the recirculating tail.
//
// Engine is the raw DSP graph: setters clamp silently and take effect
// immediately. Params wraps it with atomic targets and per-sample linear
// smoothing for lock-free control from a UI or automation thread.
package reverb
