package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// n=0: y=0.25, d0=0.55, d1=0.24
	// n=1: y=0.55, d0=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.048, d1=-0.014
	// n=3: y=0.048
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.1, B2: -0.3, A1: -0.9, A2: 0.3}
	ref := NewSection(c)
	blk := NewSection(c)

	input := []float64{1, -0.5, 0.25, 0, 0.8, -1, 0.3, 0.1, 0}
	buf := append([]float64(nil), input...)
	blk.ProcessBlock(buf)

	for i, x := range input {
		want := ref.ProcessSample(x)
		if !almostEqual(buf[i], want, eps) {
			t.Fatalf("index %d: block=%v sample=%v", i, buf[i], want)
		}
	}
	if ref.State() != blk.State() {
		t.Fatalf("state diverged: %v vs %v", ref.State(), blk.State())
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, B1: 0.5, A1: -0.5})
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	s.Reset()
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state after reset: %v", st)
	}
}

func TestState_SaveRestore(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)
	saved := s.State()
	a := s.ProcessSample(0.3)

	s.SetState(saved)
	if b := s.ProcessSample(0.3); a != b {
		t.Fatalf("restored state output %v, want %v", b, a)
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{name: "fir", c: Coefficients{B0: 1}, want: true},
		{name: "damped", c: Coefficients{B0: 1, A1: -0.2, A2: 0.04}, want: true},
		{name: "on circle", c: Coefficients{B0: 1, A2: 1}, want: false},
		{name: "outside", c: Coefficients{B0: 1, A1: -2.5, A2: 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable() = %v, want %v (poles %v)", got, tt.want, tt.c.Poles())
			}
		})
	}
}
