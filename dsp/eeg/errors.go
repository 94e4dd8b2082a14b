package eeg

import "errors"

var (
	// ErrInvalidConfig reports a non-physical time window or sample rate.
	ErrInvalidConfig = errors.New("eeg: invalid config")
	// ErrInvalidFilter reports blink filter cutoffs at or above Nyquist.
	ErrInvalidFilter = errors.New("eeg: invalid filter")
	// ErrInvalidBand reports a band with an empty or negative frequency range.
	ErrInvalidBand = errors.New("eeg: invalid band")
	// ErrInvalidChannels reports an empty or ambiguous channel gain list.
	ErrInvalidChannels = errors.New("eeg: invalid channels")
)
