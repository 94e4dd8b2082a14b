package eeg

// Synthesizer binds a TimeConfig and a random Source. Every call draws fresh
// values; nothing but the Source state carries over between calls.
//
// A Synthesizer is not safe for concurrent use.
type Synthesizer struct {
	cfg  TimeConfig
	axis []float64
	src  Source
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSource sets the random source. A nil source selects GlobalSource.
func WithSource(src Source) Option {
	return func(s *Synthesizer) {
		s.src = src
	}
}

// WithSeed uses a deterministic source seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.src = NewSource(seed)
	}
}

// Configure validates the time window and precomputes the time axis.
func Configure(sampleRate int, start, end float64, opts ...Option) (*Synthesizer, error) {
	return New(TimeConfig{SampleRate: sampleRate, Start: start, End: end}, opts...)
}

// New is Configure for an existing TimeConfig.
func New(cfg TimeConfig, opts ...Option) (*Synthesizer, error) {
	axis, err := cfg.Axis()
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{cfg: cfg, axis: axis}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.src = sourceOrGlobal(s.src)

	return s, nil
}

// Config returns the stored time configuration.
func (s *Synthesizer) Config() TimeConfig { return s.cfg }

// SampleCount returns the number of samples per generated signal.
func (s *Synthesizer) SampleCount() int { return len(s.axis) }

// Axis returns a copy of the time axis in seconds.
func (s *Synthesizer) Axis() []float64 {
	out := make([]float64, len(s.axis))
	copy(out, s.axis)
	return out
}

// GenerateBand draws one band. See the package-level GenerateBand.
func (s *Synthesizer) GenerateBand(band BandSpec) (Signal, error) {
	return generateBand(s.axis, band, s.src)
}

// Synthesize returns the sum of all catalog bands.
func (s *Synthesizer) Synthesize() (Signal, error) {
	comp, err := synthesizeBands(s.axis, s.src)
	if err != nil {
		return nil, err
	}
	return comp.Sum, nil
}

// SynthesizeBands returns every band component and their sum.
func (s *Synthesizer) SynthesizeBands() (Composite, error) {
	return synthesizeBands(s.axis, s.src)
}

// BlinkArtifact returns the default filtered blink impulse train.
func (s *Synthesizer) BlinkArtifact() (Signal, error) {
	return GenerateBlinkArtifact(s.cfg)
}

// SynthesizeMultichannel mixes the blink artifact into an alpha baseline at
// each channel's gain.
func (s *Synthesizer) SynthesizeMultichannel(gains []ChannelGain) (*ChannelTable, error) {
	return synthesizeMultichannel(s.cfg, s.axis, gains, s.src)
}
