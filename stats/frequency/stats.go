// Package frequency derives spectral features from a one-sided power
// spectral density, as produced by measure/bandpower.
//
// Bin k of a density slice lies at k*resolution Hz.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultEdgeFraction is the power fraction used for the spectral edge.
const DefaultEdgeFraction = 0.95

// Stats holds spectral shape descriptors.
type Stats struct {
	BinCount int
	// Power is the integrated density.
	Power float64
	// PeakFrequency is the frequency of the largest bin in Hz.
	PeakFrequency float64
	Centroid      float64 // power-weighted mean frequency (Hz)
	Spread        float64 // power-weighted standard deviation around Centroid (Hz)
	// EdgeFrequency is the frequency below which DefaultEdgeFraction of the
	// power lies (SEF95).
	EdgeFrequency float64
	// Entropy is the Shannon entropy of the normalised density divided by
	// log(BinCount), 0..1.
	Entropy float64
	// Flatness is the geometric over the arithmetic mean, 0..1.
	Flatness float64
}

func binFreq(k int, resolution float64) float64 {
	return float64(k) * resolution
}

// Calculate computes all descriptors. A density without power yields the
// zero Stats apart from BinCount.
func Calculate(density []float64, resolution float64) Stats {
	s := Stats{BinCount: len(density)}
	total := floats.Sum(density)
	if len(density) == 0 || total <= 0 || resolution <= 0 {
		return s
	}

	s.Power = total * resolution
	s.PeakFrequency = binFreq(floats.MaxIdx(density), resolution)
	s.Centroid = centroid(density, resolution, total)
	s.Spread = spread(density, resolution, s.Centroid, total)
	s.EdgeFrequency = edge(density, resolution, DefaultEdgeFraction, total)
	s.Entropy = entropy(density, total)
	s.Flatness = Flatness(density)

	return s
}

// CalculateRange restricts Calculate to bins with lowHz <= f < highHz.
// Frequencies in the result stay absolute.
func CalculateRange(density []float64, resolution, lowHz, highHz float64) Stats {
	first, last := binRange(len(density), resolution, lowHz, highHz)
	if first >= last {
		return Stats{}
	}

	s := Calculate(density[first:last], resolution)
	if s.Power > 0 {
		offset := binFreq(first, resolution)
		s.PeakFrequency += offset
		s.Centroid += offset
		s.EdgeFrequency += offset
	}
	return s
}

// PeakFrequency returns the frequency of the largest bin in [lowHz, highHz),
// e.g. the individual alpha frequency for 8-13 Hz. It returns 0 when the range
// holds no bins.
func PeakFrequency(density []float64, resolution, lowHz, highHz float64) float64 {
	first, last := binRange(len(density), resolution, lowHz, highHz)
	if first >= last {
		return 0
	}
	return binFreq(first+floats.MaxIdx(density[first:last]), resolution)
}

// EdgeFrequency returns the frequency below which fraction of the power lies.
func EdgeFrequency(density []float64, resolution, fraction float64) float64 {
	total := floats.Sum(density)
	if total <= 0 {
		return 0
	}
	return edge(density, resolution, fraction, total)
}

// Flatness returns the spectral flatness (Wiener entropy). Any empty bin
// makes it zero.
func Flatness(density []float64) float64 {
	if len(density) == 0 {
		return 0
	}
	for _, p := range density {
		if p <= 0 {
			return 0
		}
	}
	mean := stat.Mean(density, nil)
	if mean == 0 {
		return 0
	}
	return stat.GeometricMean(density, nil) / mean
}

func binRange(n int, resolution, lowHz, highHz float64) (int, int) {
	if resolution <= 0 {
		return 0, 0
	}
	first := max(int(math.Ceil(lowHz/resolution)), 0)
	last := min(int(math.Ceil(highHz/resolution)), n)
	return first, last
}

func centroid(density []float64, resolution, total float64) float64 {
	weighted := 0.0
	for k, p := range density {
		weighted += binFreq(k, resolution) * p
	}
	return weighted / total
}

func spread(density []float64, resolution, cent, total float64) float64 {
	acc := 0.0
	for k, p := range density {
		d := binFreq(k, resolution) - cent
		acc += d * d * p
	}
	return math.Sqrt(acc / total)
}

func edge(density []float64, resolution, fraction, total float64) float64 {
	target := fraction * total
	cum := 0.0
	for k, p := range density {
		cum += p
		if cum >= target {
			return binFreq(k, resolution)
		}
	}
	return binFreq(len(density)-1, resolution)
}

func entropy(density []float64, total float64) float64 {
	if len(density) < 2 {
		return 0
	}
	p := make([]float64, len(density))
	floats.ScaleTo(p, 1/total, density)
	return stat.Entropy(p) / math.Log(float64(len(p)))
}
