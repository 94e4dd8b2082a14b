package eeg

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Signal is a single-channel sequence of samples.
type Signal []float64

// BandSignal is one generated band component.
type BandSignal struct {
	Band    BandSpec
	Samples Signal
}

// Composite holds every band component of a synthesis run and their sum.
type Composite struct {
	Bands []BandSignal
	Sum   Signal
}

// GenerateBand draws one band over the time axis of cfg.
//
// For every index i an amplitude is drawn from [AmplitudeLow, AmplitudeHigh]
// and rounded to two decimals, and a frequency is drawn from
// [band.Low, band.High]. All amplitudes are drawn before the frequencies.
// Sample i is amp[i]*sin(2*pi*f[i]*t[i]), so |x[i]| <= 10.
func GenerateBand(cfg TimeConfig, band BandSpec, src Source) (Signal, error) {
	axis, err := cfg.Axis()
	if err != nil {
		return nil, err
	}
	return generateBand(axis, band, sourceOrGlobal(src))
}

// Synthesize generates all catalog bands over the same axis and returns
// their elementwise sum. The result is not normalized.
func Synthesize(cfg TimeConfig, src Source) (Signal, error) {
	comp, err := SynthesizeBands(cfg, src)
	if err != nil {
		return nil, err
	}
	return comp.Sum, nil
}

// SynthesizeBands is Synthesize but keeps the individual band components.
// Bands are generated in catalog order.
func SynthesizeBands(cfg TimeConfig, src Source) (Composite, error) {
	axis, err := cfg.Axis()
	if err != nil {
		return Composite{}, err
	}
	return synthesizeBands(axis, sourceOrGlobal(src))
}

func synthesizeBands(axis []float64, src Source) (Composite, error) {
	comp := Composite{
		Bands: make([]BandSignal, 0, len(catalog)),
		Sum:   make(Signal, len(axis)),
	}

	for _, band := range catalog {
		x, err := generateBand(axis, band, src)
		if err != nil {
			return Composite{}, err
		}
		vecmath.AddBlockInPlace(comp.Sum, x)
		comp.Bands = append(comp.Bands, BandSignal{Band: band, Samples: x})
	}

	return comp, nil
}

func generateBand(axis []float64, band BandSpec, src Source) (Signal, error) {
	if err := band.Validate(); err != nil {
		return nil, err
	}

	n := len(axis)
	amps := make([]float64, n)
	for i := range amps {
		amps[i] = math.RoundToEven(src.Uniform(AmplitudeLow, AmplitudeHigh)*100) / 100
	}

	out := make(Signal, n)
	for i, t := range axis {
		f := src.Uniform(band.Low, band.High)
		out[i] = amps[i] * math.Sin(2*math.Pi*f*t)
	}

	return out, nil
}

func sourceOrGlobal(src Source) Source {
	if src == nil {
		return GlobalSource()
	}
	return src
}
