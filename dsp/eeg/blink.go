package eeg

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-eeg/dsp/filter/biquad"
	"github.com/cwbudde/algo-eeg/dsp/filter/design/pass"
	"github.com/cwbudde/algo-eeg/dsp/signal"
)

// Blink artifact defaults.
const (
	DefaultBlinkPeriod = 200
	DefaultBlinkValue  = -1.0
	DefaultBlinkLowHz  = 1.0
	DefaultBlinkHighHz = 10.0
	DefaultBlinkOrder  = 2
)

// BlinkOptions shapes the blink artifact. Zero fields take the defaults.
type BlinkOptions struct {
	// Period is the spacing between blinks in samples.
	Period int
	// Value is the impulse height before filtering.
	Value float64
	// LowHz and HighHz are the band-pass cutoffs.
	LowHz, HighHz float64
	// Order is the Butterworth prototype order.
	Order int
}

func (o BlinkOptions) withDefaults() BlinkOptions {
	if o.Period <= 0 {
		o.Period = DefaultBlinkPeriod
	}
	if o.Value == 0 {
		o.Value = DefaultBlinkValue
	}
	if o.LowHz == 0 {
		o.LowHz = DefaultBlinkLowHz
	}
	if o.HighHz == 0 {
		o.HighHz = DefaultBlinkHighHz
	}
	if o.Order <= 0 {
		o.Order = DefaultBlinkOrder
	}
	return o
}

// GenerateBlinkArtifact models eye blinks as an impulse train of -1 starting
// at SampleCount/2 with one blink every 200 samples, filtered causally from
// rest by a 2nd-order Butterworth band-pass between 1 and 10 Hz.
//
// It fails with ErrInvalidFilter when a cutoff is not below Nyquist, i.e.
// for sample rates of 20 Hz and less.
func GenerateBlinkArtifact(cfg TimeConfig) (Signal, error) {
	return GenerateBlinkArtifactWith(cfg, BlinkOptions{})
}

// GenerateBlinkArtifactWith is GenerateBlinkArtifact with custom shaping.
func GenerateBlinkArtifactWith(cfg TimeConfig, opts BlinkOptions) (Signal, error) {
	chain, err := BlinkFilter(cfg, opts)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	n := cfg.SampleCount()
	train, err := signal.ImpulseTrain(n, n/2, opts.Period, opts.Value)
	if err != nil {
		return nil, fmt.Errorf("blink impulse train: %w", err)
	}

	return chain.Filter(train), nil
}

// BlinkFilter returns the zero-state band-pass cascade that shapes the blink
// artifact for cfg and opts.
func BlinkFilter(cfg TimeConfig, opts BlinkOptions) (*biquad.Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	nyq := cfg.Nyquist()
	if opts.LowHz >= nyq || opts.HighHz >= nyq {
		return nil, fmt.Errorf("%w: cutoffs %g/%g Hz must be below nyquist %g Hz", ErrInvalidFilter, opts.LowHz, opts.HighHz, nyq)
	}

	sections, err := pass.ButterworthBP(opts.Order, opts.LowHz, opts.HighHz, float64(cfg.SampleRate))
	if errors.Is(err, pass.ErrInvalidParams) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if err != nil {
		return nil, err
	}

	chain := biquad.NewChain(sections)
	if !chain.Stable() {
		return nil, fmt.Errorf("%w: %d-order %g-%g Hz design at %d Hz is unstable",
			ErrInvalidFilter, opts.Order, opts.LowHz, opts.HighHz, cfg.SampleRate)
	}
	return chain, nil
}
