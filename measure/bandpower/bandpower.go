// Package bandpower estimates how the power of a synthetic EEG recording is
// distributed across the canonical frequency bands.
package bandpower

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
	"github.com/cwbudde/algo-eeg/dsp/window"
)

// ErrInvalidInput is returned for empty signals or non-positive sample rates.
var ErrInvalidInput = errors.New("bandpower: invalid input")

// Config holds spectral estimation parameters.
type Config struct {
	SampleRate float64
	// FFTSize is rounded up to a power of two no shorter than the signal.
	// Zero selects the next power of two.
	FFTSize int
	// Window tapers the signal before the FFT. The zero value is rectangular.
	Window window.Type
	// Periodic selects the DFT-even form of Window.
	Periodic bool
}

// Spectrum is a one-sided power spectral density.
type Spectrum struct {
	// Resolution is the bin spacing in Hz.
	Resolution float64
	// Density holds power per Hz for bins 0..FFTSize/2.
	Density []float64
}

// Freq returns the centre frequency of bin k.
func (s Spectrum) Freq(k int) float64 {
	return float64(k) * s.Resolution
}

// Integrate sums the density over bins with lowHz <= f < highHz.
func (s Spectrum) Integrate(lowHz, highHz float64) float64 {
	power := 0.0
	for k, p := range s.Density {
		f := s.Freq(k)
		if f >= lowHz && f < highHz {
			power += p * s.Resolution
		}
	}
	return power
}

// Total returns the power over every bin.
func (s Spectrum) Total() float64 {
	power := 0.0
	for _, p := range s.Density {
		power += p * s.Resolution
	}
	return power
}

// Result is the power found in one band.
type Result struct {
	Band eeg.BandSpec
	// Power is the mean-square contribution of the band.
	Power float64
	// Relative is Power divided by the total power of the signal.
	Relative float64
}

// Estimate computes the one-sided PSD of signal.
//
// The density is scaled so that Total() equals sum((x*w)^2)/sum(w^2), i.e.
// the mean square of the signal for the rectangular window.
func Estimate(signal []float64, cfg Config) (Spectrum, error) {
	if len(signal) == 0 {
		return Spectrum{}, fmt.Errorf("%w: empty signal", ErrInvalidInput)
	}
	if cfg.SampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidInput, cfg.SampleRate)
	}

	fftSize := nextPowerOf2(max(cfg.FFTSize, len(signal)))

	var wopts []window.Option
	if cfg.Periodic {
		wopts = append(wopts, window.WithPeriodic())
	}
	coeffs := window.Generate(cfg.Window, len(signal), wopts...)
	wsum := window.PowerGain(coeffs) * float64(len(coeffs))
	if wsum == 0 {
		return Spectrum{}, fmt.Errorf("%w: window has no energy", ErrInvalidInput)
	}

	tapered := make([]float64, len(signal))
	copy(tapered, signal)
	vecmath.MulBlockInPlace(tapered, coeffs)

	in := make([]complex128, fftSize)
	for i, x := range tapered {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("fft forward: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	density := make([]float64, bins)
	vecmath.Power(density, re, im)

	scale := 1 / (cfg.SampleRate * wsum)
	for k := range density {
		density[k] *= scale
		// Fold negative frequencies; DC and Nyquist have no mirror.
		if k > 0 && k < fftSize/2 {
			density[k] *= 2
		}
	}

	return Spectrum{
		Resolution: cfg.SampleRate / float64(fftSize),
		Density:    density,
	}, nil
}

// Analyze integrates the PSD of signal over each band. A nil bands slice
// selects the EEG catalog.
func Analyze(signal []float64, cfg Config, bands []eeg.BandSpec) ([]Result, error) {
	spec, err := Estimate(signal, cfg)
	if err != nil {
		return nil, err
	}
	return AnalyzeSpectrum(spec, bands), nil
}

// AnalyzeSpectrum integrates an estimated PSD over each band. A nil bands
// slice selects the EEG catalog.
func AnalyzeSpectrum(spec Spectrum, bands []eeg.BandSpec) []Result {
	if bands == nil {
		bands = eeg.Bands()
	}

	total := spec.Total()
	results := make([]Result, len(bands))
	for i, b := range bands {
		p := spec.Integrate(b.Low, b.High)
		results[i] = Result{Band: b, Power: p}
		if total > 0 {
			results[i].Relative = p / total
		}
	}
	return results
}

// Dominant returns the result with the largest power.
func Dominant(results []Result) (Result, bool) {
	if len(results) == 0 {
		return Result{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Power > best.Power {
			best = r
		}
	}
	return best, true
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
