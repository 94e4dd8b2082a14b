package eeg

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eeg/dsp/signal"
)

// TimeConfig describes the sampling grid of a synthetic recording.
type TimeConfig struct {
	SampleRate int
	Start      float64
	End        float64
}

// SampleCount returns SampleRate * End rounded to the nearest integer, so
// that 0.29 s at 100 Hz is 29 samples. Start does not shorten the recording.
func (c TimeConfig) SampleCount() int {
	return int(math.Round(float64(c.SampleRate) * c.End))
}

// Nyquist returns half the sample rate in Hz.
func (c TimeConfig) Nyquist() float64 {
	return float64(c.SampleRate) / 2
}

// Validate checks that the configuration describes a non-empty window.
func (c TimeConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidConfig, c.SampleRate)
	}
	if math.IsNaN(c.Start) || math.IsNaN(c.End) || math.IsInf(c.Start, 0) || math.IsInf(c.End, 0) {
		return fmt.Errorf("%w: time window must be finite: [%g, %g]", ErrInvalidConfig, c.Start, c.End)
	}
	if c.Start < 0 {
		return fmt.Errorf("%w: start must be >= 0: %g", ErrInvalidConfig, c.Start)
	}
	if c.End <= c.Start {
		return fmt.Errorf("%w: end %g must be after start %g", ErrInvalidConfig, c.End, c.Start)
	}
	if c.SampleCount() <= 0 {
		return fmt.Errorf("%w: window [%g, %g] at %d Hz yields no samples", ErrInvalidConfig, c.Start, c.End, c.SampleRate)
	}
	return nil
}

// Axis returns SampleCount points evenly spaced over [Start, End].
func (c TimeConfig) Axis() ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return signal.Linspace(c.Start, c.End, c.SampleCount())
}
