package eeg

import "math/rand"

// Source draws uniformly distributed values from [low, high).
//
// Implementations are used sequentially and need not be safe for concurrent
// use.
type Source interface {
	Uniform(low, high float64) float64
}

// SourceFunc adapts a function to Source.
type SourceFunc func(low, high float64) float64

// Uniform calls f(low, high).
func (f SourceFunc) Uniform(low, high float64) float64 { return f(low, high) }

type randSource struct {
	rng *rand.Rand
}

// NewSource returns a Source seeded deterministically.
func NewSource(seed int64) Source {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Uniform(low, high float64) float64 {
	return low + (high-low)*s.rng.Float64()
}

type globalSource struct{}

// GlobalSource returns a Source backed by the process-wide math/rand
// generator. Its output is not reproducible.
func GlobalSource() Source { return globalSource{} }

func (globalSource) Uniform(low, high float64) float64 {
	return low + (high-low)*rand.Float64()
}
