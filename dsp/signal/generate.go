// Package signal provides the deterministic building blocks of synthetic
// recordings: time axes, impulse trains and peak scaling.
package signal

import (
	"fmt"
	"math"
)

// Linspace returns n evenly spaced points over [start, end], both inclusive.
// The spacing is (end-start)/(n-1), independent of any sample rate.
func Linspace(start, end float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("linspace points must be > 0: %d", n)
	}
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return nil, fmt.Errorf("linspace bounds must be finite: [%f, %f]", start, end)
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out, nil
	}

	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end

	return out, nil
}

// ImpulseTrain returns n zero samples with value placed at offset and every
// period samples after it.
func ImpulseTrain(n, offset, period int, value float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("impulse train samples must be > 0: %d", n)
	}
	if period <= 0 {
		return nil, fmt.Errorf("impulse train period must be > 0: %d", period)
	}
	if offset < 0 {
		return nil, fmt.Errorf("impulse train offset must be >= 0: %d", offset)
	}

	out := make([]float64, n)
	for i := offset; i < n; i += period {
		out[i] = value
	}

	return out, nil
}

// Peak returns max(|x|) over data, or 0 for an empty slice.
func Peak(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}
	return maxAbs
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	maxAbs := Peak(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
