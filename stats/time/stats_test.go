package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	n := samplesPerCycle * numCycles
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestCalculateSine(t *testing.T) {
	x := generateSine(2, 10, 1000, 5)
	s := Calculate(x)

	if s.Length != 500 {
		t.Fatalf("Length = %d, want 500", s.Length)
	}
	if !almostEqual(s.Mean, 0, 1e-12) {
		t.Fatalf("Mean = %v, want 0", s.Mean)
	}
	if !almostEqual(s.RMS, 2/math.Sqrt2, 1e-9) {
		t.Fatalf("RMS = %v, want %v", s.RMS, 2/math.Sqrt2)
	}
	if !almostEqual(s.Peak, 2, 1e-9) || !almostEqual(s.PeakToPeak, 4, 1e-9) {
		t.Fatalf("Peak = %v, PeakToPeak = %v", s.Peak, s.PeakToPeak)
	}
	if !almostEqual(s.CrestFactor, math.Sqrt2, 1e-9) {
		t.Fatalf("CrestFactor = %v, want sqrt(2)", s.CrestFactor)
	}
	if !almostEqual(s.Variance, 2, 1e-9) {
		t.Fatalf("Variance = %v, want 2", s.Variance)
	}
	// Excess kurtosis of a sine is -1.5.
	if !almostEqual(s.Kurtosis, -1.5, 2e-2) {
		t.Fatalf("Kurtosis = %v, want -1.5", s.Kurtosis)
	}
}

func TestCalculateExtremes(t *testing.T) {
	s := Calculate([]float64{0.5, -3, 1, 2.5, -1})
	if s.Max != 2.5 || s.MaxPos != 3 {
		t.Fatalf("Max = %v at %d", s.Max, s.MaxPos)
	}
	if s.Min != -3 || s.MinPos != 1 {
		t.Fatalf("Min = %v at %d", s.Min, s.MinPos)
	}
	if s.Peak != 3 {
		t.Fatalf("Peak = %v, want 3", s.Peak)
	}
	if s.ZeroCrossings != 3 {
		t.Fatalf("ZeroCrossings = %d, want 3", s.ZeroCrossings)
	}
}

func TestCalculateDegenerate(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v", s)
	}

	s := Calculate([]float64{3, 3, 3, 3, 3})
	if s.Mean != 3 || s.Variance != 0 || s.Skewness != 0 || s.Kurtosis != 0 {
		t.Fatalf("constant signal stats = %+v", s)
	}
	if !almostEqual(s.CrestFactor, 1, tolerance) {
		t.Fatalf("CrestFactor = %v, want 1", s.CrestFactor)
	}

	if s := Calculate([]float64{0, 0}); s.CrestFactor != 0 {
		t.Fatalf("silent CrestFactor = %v, want 0", s.CrestFactor)
	}
}

func TestZeroCrossingsIgnoresZeros(t *testing.T) {
	if got := ZeroCrossings([]float64{1, 0, -1, 0, 1}); got != 0 {
		t.Fatalf("ZeroCrossings = %d, want 0", got)
	}
}

func TestCalculateTable(t *testing.T) {
	cfg := eeg.TimeConfig{SampleRate: 256, Start: 0, End: 4}
	table, err := eeg.SynthesizeMultichannel(cfg, eeg.DefaultChannels(), eeg.NewSource(11))
	if err != nil {
		t.Fatalf("SynthesizeMultichannel() error = %v", err)
	}

	stats := CalculateTable(table)
	if len(stats) != 3 {
		t.Fatalf("len = %d, want 3", len(stats))
	}
	for i, cs := range stats {
		if cs.Name != table.Names[i] || cs.Length != table.Rows() {
			t.Fatalf("stats[%d] = %s/%d", i, cs.Name, cs.Length)
		}
	}
	if stats[2].Stats != Calculate(table.Columns[2]) {
		t.Fatalf("parietal stats differ from Calculate on the column")
	}
	if got := CalculateTable(nil); got != nil {
		t.Fatalf("CalculateTable(nil) = %v", got)
	}
}
