// Package biquad provides the second-order IIR runtime used to shape
// synthetic EEG artifacts.
//
// A [Section] runs Direct Form II Transposed for one set of [Coefficients].
// A [Chain] cascades sections for higher orders, e.g. the two-section
// Butterworth band-pass that turns a blink impulse train into a smooth
// ocular waveform. Coefficient design lives in dsp/filter/design/pass.
package biquad
