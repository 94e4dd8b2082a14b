package eeg

import (
	"fmt"
	"strings"
)

// Band names a canonical EEG frequency band.
type Band string

const (
	Delta Band = "delta"
	Theta Band = "theta"
	Alpha Band = "alpha"
	Beta  Band = "beta"
	Gamma Band = "gamma"
)

// Amplitude range shared by every band.
const (
	AmplitudeLow  = -10.0
	AmplitudeHigh = 10.0
)

// BandSpec is a named frequency range in Hz.
type BandSpec struct {
	Name Band
	Low  float64
	High float64
}

// Validate checks Low < High and Low >= 0.
func (b BandSpec) Validate() error {
	if b.Low < 0 || b.High <= b.Low {
		return fmt.Errorf("%w: %s range [%g, %g] Hz", ErrInvalidBand, b.Name, b.Low, b.High)
	}
	return nil
}

var catalog = [...]BandSpec{
	{Name: Delta, Low: 0.5, High: 4},
	{Name: Theta, Low: 4, High: 8},
	{Name: Alpha, Low: 8, High: 13},
	{Name: Beta, Low: 13, High: 30},
	{Name: Gamma, Low: 30, High: 140},
}

// Bands returns the band catalog ordered from delta to gamma.
func Bands() []BandSpec {
	out := make([]BandSpec, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupBand resolves a band by case-insensitive name.
func LookupBand(name string) (BandSpec, error) {
	n := Band(strings.ToLower(strings.TrimSpace(name)))
	for _, b := range catalog {
		if b.Name == n {
			return b, nil
		}
	}
	return BandSpec{}, fmt.Errorf("%w: unknown band %q", ErrInvalidBand, name)
}

func mustBand(name Band) BandSpec {
	b, err := LookupBand(string(name))
	if err != nil {
		panic(err)
	}
	return b
}
