// Package time summarizes the time-domain shape of EEG channels.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
)

// Stats holds time-domain statistics of one signal.
type Stats struct {
	Length     int
	Mean       float64
	RMS        float64
	Max        float64
	MaxPos     int
	Min        float64
	MinPos     int
	Peak       float64 // max(|max|, |min|)
	PeakToPeak float64
	// CrestFactor is Peak/RMS, zero for a silent signal.
	CrestFactor   float64
	ZeroCrossings int
	Variance      float64 // population variance
	Skewness      float64
	// Kurtosis is the excess kurtosis, 0 for a Gaussian.
	Kurtosis float64
}

// Calculate computes all statistics of signal. An empty signal yields the
// zero Stats.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	s := Stats{Length: n}
	s.MaxPos = floats.MaxIdx(signal)
	s.MinPos = floats.MinIdx(signal)
	s.Max = signal[s.MaxPos]
	s.Min = signal[s.MinPos]
	s.Peak = math.Max(math.Abs(s.Max), math.Abs(s.Min))
	s.PeakToPeak = s.Max - s.Min
	s.RMS = RMS(signal)
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}
	s.ZeroCrossings = ZeroCrossings(signal)

	var unbiased float64
	s.Mean, unbiased = stat.MeanVariance(signal, nil)
	if n > 1 {
		s.Variance = unbiased * float64(n-1) / float64(n)
	}
	// Higher moments are undefined for a constant signal.
	if s.Variance > 0 && n > 3 {
		s.Skewness = stat.Skew(signal, nil)
		s.Kurtosis = stat.ExKurtosis(signal, nil)
	}

	return s
}

// RMS returns the root mean square of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// ZeroCrossings counts sign changes between adjacent samples. Exact zeros
// do not count as a crossing.
func ZeroCrossings(signal []float64) int {
	count := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}
	return count
}

// ChannelStats pairs a channel name with its statistics.
type ChannelStats struct {
	Name string
	Stats
}

// CalculateTable computes Stats for every column of table in column order.
func CalculateTable(table *eeg.ChannelTable) []ChannelStats {
	if table == nil {
		return nil
	}
	out := make([]ChannelStats, table.NumChannels())
	for c, col := range table.Columns {
		out[c] = ChannelStats{Name: table.Names[c], Stats: Calculate(col)}
	}
	return out
}
