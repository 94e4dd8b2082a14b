// Package decomp separates multichannel recordings into components.
//
// Only principal component analysis is implemented. Independent component
// analysis is accepted as a method name and rejected with
// ErrUnsupportedMethod so that callers can select it once a backend exists.
package decomp

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrUnsupportedMethod is returned for methods without a backend.
	ErrUnsupportedMethod = errors.New("decomp: unsupported method")
	// ErrInvalidComponents is returned when the component count is outside
	// [1, channels].
	ErrInvalidComponents = errors.New("decomp: invalid component count")
	// ErrInvalidData is returned for empty or ragged input.
	ErrInvalidData = errors.New("decomp: invalid data")
)

// Method selects a decomposition algorithm.
type Method int

const (
	MethodPCA Method = iota
	MethodICA
)

func (m Method) String() string {
	switch m {
	case MethodPCA:
		return "pca"
	case MethodICA:
		return "ica"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "pca" or "ica" (any case) to a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pca":
		return MethodPCA, nil
	case "ica":
		return MethodICA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, name)
}

// Components is the result of a decomposition.
type Components struct {
	Method Method
	// Vectors holds one unit-length loading vector per component, each with
	// one weight per input channel.
	Vectors [][]float64
	// Variances holds the variance along each component, descending.
	Variances []float64
	// Explained holds Variances divided by the total variance of the data.
	Explained []float64
	// Scores holds the centred data projected onto each component, one
	// column per component.
	Scores [][]float64
}

// Len returns the number of components.
func (c *Components) Len() int { return len(c.Vectors) }

// Decompose extracts n components from columns, one slice per channel.
func Decompose(columns [][]float64, n int, method Method) (*Components, error) {
	rows, err := validate(columns)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(columns) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidComponents, n, len(columns))
	}

	switch method {
	case MethodPCA:
		return pca(columns, rows, n)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}

func validate(columns [][]float64) (int, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("%w: no channels", ErrInvalidData)
	}
	rows := len(columns[0])
	if rows < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidData, rows)
	}
	for c, col := range columns {
		if len(col) != rows {
			return 0, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrInvalidData, c, len(col), rows)
		}
	}
	return rows, nil
}

func pca(columns [][]float64, rows, n int) (*Components, error) {
	channels := len(columns)

	// Observations are rows, channels are variables.
	data := mat.NewDense(rows, channels, nil)
	for c, col := range columns {
		data.SetCol(c, col)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("%w: principal component analysis did not converge", ErrInvalidData)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)
	if _, cols := vecs.Dims(); n > cols {
		return nil, fmt.Errorf("%w: %d exceeds rank bound %d", ErrInvalidComponents, n, cols)
	}

	total := 0.0
	for _, v := range vars {
		total += v
	}

	out := &Components{
		Method:    MethodPCA,
		Vectors:   make([][]float64, n),
		Variances: make([]float64, n),
		Explained: make([]float64, n),
		Scores:    make([][]float64, n),
	}
	for k := range n {
		out.Vectors[k] = mat.Col(nil, k, &vecs)
		out.Variances[k] = vars[k]
		if total > 0 {
			out.Explained[k] = vars[k] / total
		}
	}

	centred := mat.DenseCopyOf(data)
	for c := range channels {
		mean := stat.Mean(columns[c], nil)
		for r := range rows {
			centred.Set(r, c, centred.At(r, c)-mean)
		}
	}

	var scores mat.Dense
	scores.Mul(centred, vecs.Slice(0, channels, 0, n))
	for k := range n {
		out.Scores[k] = mat.Col(nil, k, &scores)
	}

	return out, nil
}
