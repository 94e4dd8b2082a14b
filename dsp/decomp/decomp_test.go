package decomp

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
)

func TestDecomposeCorrelatedPair(t *testing.T) {
	x := make([]float64, 200)
	y := make([]float64, 200)
	for i := range x {
		x[i] = math.Sin(0.1*float64(i)) + 0.5
		y[i] = 2 * x[i]
	}

	c, err := Decompose([][]float64{x, y}, 2, MethodPCA)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if c.Len() != 2 || c.Method != MethodPCA {
		t.Fatalf("got %d components via %s", c.Len(), c.Method)
	}
	if c.Explained[0] < 1-1e-9 {
		t.Fatalf("first component explains %v, want 1", c.Explained[0])
	}

	want := []float64{1 / math.Sqrt(5), 2 / math.Sqrt(5)}
	sign := math.Copysign(1, c.Vectors[0][0])
	for i, w := range want {
		if got := sign * c.Vectors[0][i]; math.Abs(got-w) > 1e-9 {
			t.Fatalf("vector[0][%d] = %v, want %v", i, got, w)
		}
	}

	// Scores along the first component are centred.
	mean := 0.0
	for _, v := range c.Scores[0] {
		mean += v
	}
	if math.Abs(mean/float64(len(c.Scores[0]))) > 1e-9 {
		t.Fatalf("score mean = %v, want 0", mean)
	}
}

func TestDecomposeMultichannelIsRankTwo(t *testing.T) {
	cfg := eeg.TimeConfig{SampleRate: 256, Start: 0, End: 4}
	table, err := eeg.SynthesizeMultichannel(cfg, eeg.DefaultChannels(), eeg.NewSource(9))
	if err != nil {
		t.Fatalf("SynthesizeMultichannel() error = %v", err)
	}

	c, err := Decompose(table.Columns, 3, MethodPCA)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if got := c.Explained[0] + c.Explained[1]; got < 1-1e-9 {
		t.Fatalf("two components explain %v, want 1", got)
	}
	for k := 1; k < c.Len(); k++ {
		if c.Variances[k] > c.Variances[k-1] {
			t.Fatalf("variances not descending: %v", c.Variances)
		}
	}
	for k, s := range c.Scores {
		if len(s) != table.Rows() {
			t.Fatalf("scores[%d] has %d rows, want %d", k, len(s), table.Rows())
		}
	}
}

func TestDecomposeErrors(t *testing.T) {
	col := []float64{1, 2, 3, 4}
	tests := []struct {
		name    string
		columns [][]float64
		n       int
		method  Method
		want    error
	}{
		{"ica", [][]float64{col, col}, 1, MethodICA, ErrUnsupportedMethod},
		{"zero components", [][]float64{col, col}, 0, MethodPCA, ErrInvalidComponents},
		{"too many components", [][]float64{col, col}, 3, MethodPCA, ErrInvalidComponents},
		{"no channels", nil, 1, MethodPCA, ErrInvalidData},
		{"ragged", [][]float64{col, col[:3]}, 1, MethodPCA, ErrInvalidData},
		{"single sample", [][]float64{{1}}, 1, MethodPCA, ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.columns, tt.n, tt.method)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"pca": MethodPCA, "PCA": MethodPCA, " ica ": MethodICA} {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParseMethod(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMethod("nmf"); !errors.Is(err, ErrUnsupportedMethod) {
		t.Fatalf("ParseMethod(nmf) error = %v", err)
	}
}
