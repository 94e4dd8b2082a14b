package window

import (
	"math"
	"testing"
)

func TestGenerateHannSymmetric(t *testing.T) {
	w := Generate(TypeHann, 5)
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestGeneratePeriodic(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	want := []float64{0, 0.5, 1, 0.5}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestPowerGain(t *testing.T) {
	if g := PowerGain(Generate(TypeRectangular, 16)); g != 1 {
		t.Fatalf("rectangular gain = %v, want 1", g)
	}
	// Periodic Hann has mean(w^2) = 3/8.
	if g := PowerGain(Generate(TypeHann, 1024, WithPeriodic())); math.Abs(g-0.375) > 1e-12 {
		t.Fatalf("hann gain = %v, want 0.375", g)
	}
	if PowerGain(nil) != 0 {
		t.Fatal("expected 0 for empty window")
	}
}

func TestParse(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		got, err := Parse(typ.String())
		if err != nil || got != typ {
			t.Fatalf("Parse(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := Parse("kaiser"); err == nil {
		t.Fatal("expected error for unknown window")
	}
}
