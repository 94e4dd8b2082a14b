// Package config loads and stores the YAML configuration of eegsynth.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Channel is one entry of the channel catalog.
type Channel struct {
	Name string  `yaml:"name"`
	Gain float64 `yaml:"gain"`
}

// Config is the on-disk configuration.
type Config struct {
	SampleRate int     `yaml:"sampleRate"`
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
	// Seed selects a deterministic source. Zero uses the global source.
	Seed     int64     `yaml:"seed,omitempty"`
	Channels []Channel `yaml:"channels"`
}

// Default returns 10 s at 256 Hz with the frontal/central/parietal catalog.
func Default() Config {
	cfg := Config{SampleRate: 256, Start: 0, End: 10}
	for _, c := range eeg.DefaultChannels() {
		cfg.Channels = append(cfg.Channels, Channel{Name: c.Name, Gain: c.Gain})
	}
	return cfg
}

// Read decodes YAML from r on top of the defaults without validating, so
// that callers can apply overrides first. Unknown keys are errors.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cannot decode configuration: %w", err)
	}
	return cfg, nil
}

// Load is Read followed by Validate.
func Load(r io.Reader) (Config, error) {
	cfg, err := Read(r)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile reads the configuration at fn without validating it. A missing
// file yields Default when ignoreNotFound is set.
func ReadFile(fn string, ignoreNotFound bool) (Config, error) {
	return fromFile(fn, ignoreNotFound, Read)
}

// LoadFile is ReadFile followed by Validate.
func LoadFile(fn string, ignoreNotFound bool) (Config, error) {
	return fromFile(fn, ignoreNotFound, Load)
}

func fromFile(fn string, ignoreNotFound bool, decode func(io.Reader) (Config, error)) (Config, error) {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	cfg, err := decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}
	return cfg, nil
}

// Save encodes cfg as YAML with two-space indentation.
func (c Config) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// SaveFile writes cfg to fn, creating parent directories.
func (c Config) SaveFile(fn string) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0o700); err != nil {
		return fmt.Errorf("cannot create directory for configuration file %q: %w", fn, err)
	}

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := c.Save(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}
	return nil
}

// TimeConfig returns the time window part of the configuration.
func (c Config) TimeConfig() eeg.TimeConfig {
	return eeg.TimeConfig{SampleRate: c.SampleRate, Start: c.Start, End: c.End}
}

// ChannelGains converts the channel catalog.
func (c Config) ChannelGains() []eeg.ChannelGain {
	gains := make([]eeg.ChannelGain, len(c.Channels))
	for i, ch := range c.Channels {
		gains[i] = eeg.ChannelGain{Name: ch.Name, Gain: ch.Gain}
	}
	return gains
}

// Validate checks the time window and the channel catalog.
func (c Config) Validate() error {
	if err := c.TimeConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Channels))
	for i, ch := range c.Channels {
		if ch.Name == "" {
			return fmt.Errorf("%w: channel %d has no name", ErrInvalid, i)
		}
		if seen[ch.Name] {
			return fmt.Errorf("%w: duplicate channel %q", ErrInvalid, ch.Name)
		}
		seen[ch.Name] = true
	}
	return nil
}
