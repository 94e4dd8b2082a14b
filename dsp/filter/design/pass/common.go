// Package pass designs Butterworth pass-band filters as cascades of biquad
// sections for the biquad runtime.
package pass

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when a design request is not realizable.
var ErrInvalidParams = errors.New("pass: invalid parameters")

// warp prewarps freq (Hz) for the bilinear transform: 2*fs*tan(pi*freq/fs).
func warp(freq, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freq/sampleRate)
}

func validateBand(order int, lowHz, highHz, sampleRate float64) error {
	if order <= 0 {
		return fmt.Errorf("%w: order must be > 0: %d", ErrInvalidParams, order)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidParams, sampleRate)
	}

	nyquist := sampleRate / 2
	if lowHz >= nyquist || highHz >= nyquist {
		return fmt.Errorf("%w: cutoffs %g/%g Hz must be below nyquist %g Hz", ErrInvalidParams, lowHz, highHz, nyquist)
	}
	if lowHz <= 0 || highHz <= lowHz {
		return fmt.Errorf("%w: need 0 < low < high, got %g/%g Hz", ErrInvalidParams, lowHz, highHz)
	}

	return nil
}
