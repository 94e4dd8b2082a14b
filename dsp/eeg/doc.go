// Package eeg synthesizes multi-band EEG-like test signals.
//
// A recording is modelled as the sum of five canonical bands (delta, theta,
// alpha, beta, gamma). Each band sample is amp[i]*sin(2*pi*f[i]*t[i]) where
// both the amplitude and the instantaneous frequency are drawn afresh for
// every index, which yields a noisy, non-stationary waveform rather than a
// tone. A band-pass filtered impulse train models eye blinks, and the
// multichannel mode mixes that artifact into an alpha baseline at per-channel
// gains.
//
// The time axis holds SampleCount = round(SampleRate*End) points spread evenly over
// [Start, End]. With Start != 0 the spacing is (End-Start)/(SampleCount-1),
// not 1/SampleRate. Blink spacing is defined in samples and follows
// SampleCount, not elapsed time.
//
// All randomness comes from a [Source]. Seed one with [NewSource] or
// [WithSeed] for reproducible output; the default draws from the
// process-wide math/rand generator.
package eeg
