// Package biquad implements second-order IIR filter sections in Direct
// Form II Transposed, plus ordered cascades of sections for higher-order
// filters. Coefficients are produced by the design package.
package biquad
