package eeg

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eeg/internal/testutil"
)

// lfilter runs the direct-form difference equation with a[0] = 1.
func lfilter(b, a, x []float64) []float64 {
	y := make([]float64, len(x))
	for n := range x {
		acc := 0.0
		for k := range b {
			if n-k >= 0 {
				acc += b[k] * x[n-k]
			}
		}
		for k := 1; k < len(a); k++ {
			if n-k >= 0 {
				acc -= a[k] * y[n-k]
			}
		}
		y[n] = acc
	}
	return y
}

func TestBlinkArtifactMatchesTransferFunction(t *testing.T) {
	// butter(2, [1/128, 10/128], "band") at 256 Hz.
	b := []float64{0.010519214416921914, 0, -0.02103842883384383, 0, 0.010519214416921914}
	a := []float64{1, -3.678480019417159, 5.09032297314544, -3.14352141611057, 0.7317097232970797}

	cfg := TimeConfig{SampleRate: 256, Start: 0, End: 10}
	got, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}

	n := cfg.SampleCount()
	train := make([]float64, n)
	for i := n / 2; i < n; i += 200 {
		train[i] = -1
	}
	testutil.RequireSliceNearlyEqual(t, got, lfilter(b, a, train), 1e-9)
}

func TestBlinkArtifactShape(t *testing.T) {
	cfg := TimeConfig{SampleRate: 256, Start: 0, End: 10}
	x, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}
	if len(x) != cfg.SampleCount() {
		t.Fatalf("len = %d, want %d", len(x), cfg.SampleCount())
	}
	testutil.RequireFinite(t, x)

	onset := cfg.SampleCount() / 2
	for i := 0; i < onset; i++ {
		if x[i] != 0 {
			t.Fatalf("x[%d] = %v before the first blink", i, x[i])
		}
	}
	if x[onset] >= 0 {
		t.Fatalf("x[%d] = %v, want a negative onset", onset, x[onset])
	}
}

func TestBlinkArtifactDeterministic(t *testing.T) {
	cfg := TimeConfig{SampleRate: 128, Start: 0, End: 8}
	a, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}
	b, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, a, b, 0)

	// Start shifts the axis but not the sample count, so the artifact is
	// unchanged.
	shifted, err := GenerateBlinkArtifact(TimeConfig{SampleRate: 128, Start: 3, End: 8})
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, a, shifted, 0)
}

func TestBlinkArtifactInvalidFilter(t *testing.T) {
	for _, rate := range []int{1, 10, 16, 19, 20} {
		_, err := GenerateBlinkArtifact(TimeConfig{SampleRate: rate, Start: 0, End: 10})
		if !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("rate %d: error = %v, want ErrInvalidFilter", rate, err)
		}
	}

	if _, err := GenerateBlinkArtifact(TimeConfig{SampleRate: 21, Start: 0, End: 10}); err != nil {
		t.Fatalf("rate 21: unexpected error %v", err)
	}
}

func TestBlinkArtifactInvalidConfig(t *testing.T) {
	_, err := GenerateBlinkArtifact(TimeConfig{SampleRate: 256, Start: 5, End: 5})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestBlinkArtifactWithOptions(t *testing.T) {
	cfg := TimeConfig{SampleRate: 100, Start: 0, End: 4}
	x, err := GenerateBlinkArtifactWith(cfg, BlinkOptions{Period: 50, Value: 2, LowHz: 0.5, HighHz: 5, Order: 3})
	if err != nil {
		t.Fatalf("GenerateBlinkArtifactWith() error = %v", err)
	}

	onset := cfg.SampleCount() / 2
	if x[onset-1] != 0 || x[onset] <= 0 {
		t.Fatalf("unexpected onset: x[%d]=%v x[%d]=%v", onset-1, x[onset-1], onset, x[onset])
	}

	_, err = GenerateBlinkArtifactWith(cfg, BlinkOptions{HighHz: 60})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("error = %v, want ErrInvalidFilter", err)
	}
}

func TestBlinkArtifactPolarity(t *testing.T) {
	// Negative impulses yield a dominant negative deflection that stays well
	// below the unfiltered impulse height.
	cfg := TimeConfig{SampleRate: 256, Start: 0, End: 4}
	x, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if -lo <= hi {
		t.Fatalf("min %v does not dominate max %v", lo, hi)
	}
	testutil.RequireBounded(t, x, 0.5)
}

func TestBlinkFilter(t *testing.T) {
	cfg := TimeConfig{SampleRate: 256, Start: 0, End: 4}
	chain, err := BlinkFilter(cfg, BlinkOptions{})
	if err != nil {
		t.Fatalf("BlinkFilter() error = %v", err)
	}
	if chain.NumSections() != 2 || chain.Order() != 4 || !chain.Stable() {
		t.Fatalf("sections=%d order=%d stable=%v", chain.NumSections(), chain.Order(), chain.Stable())
	}
	for _, edge := range []float64{DefaultBlinkLowHz, DefaultBlinkHighHz} {
		if got := chain.MagnitudeDB(edge, 256); math.Abs(got+10*math.Log10(2)) > 1e-7 {
			t.Fatalf("|H(%v)| = %v dB, want -3.01 dB", edge, got)
		}
	}

	// Up to the second blink the artifact is the scaled impulse response.
	x, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		t.Fatalf("GenerateBlinkArtifact() error = %v", err)
	}
	onset := cfg.SampleCount() / 2
	ir := chain.ImpulseResponse(DefaultBlinkPeriod)
	want := make([]float64, len(ir))
	for i, v := range ir {
		want[i] = DefaultBlinkValue * v
	}
	testutil.RequireSliceNearlyEqual(t, x[onset:onset+DefaultBlinkPeriod], want, 1e-12)

	if _, err := BlinkFilter(TimeConfig{}, BlinkOptions{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}
