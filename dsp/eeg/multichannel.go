package eeg

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// ChannelGain pairs a channel name with its blink gain.
type ChannelGain struct {
	Name string
	Gain float64
}

// DefaultChannels returns the frontal/central/parietal catalog, ordered from
// the strongest to the weakest ocular contamination.
func DefaultChannels() []ChannelGain {
	return []ChannelGain{
		{Name: "frontal", Gain: 200},
		{Name: "central", Gain: 100},
		{Name: "parietal", Gain: 10},
	}
}

// ChannelTable stores one column per channel in request order.
type ChannelTable struct {
	Names   []string
	Columns [][]float64
}

// Rows returns the number of samples per channel.
func (t *ChannelTable) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

// NumChannels returns the number of columns.
func (t *ChannelTable) NumChannels() int { return len(t.Columns) }

// Column returns the samples of the named channel.
func (t *ChannelTable) Column(name string) ([]float64, bool) {
	for i, n := range t.Names {
		if n == name {
			return t.Columns[i], true
		}
	}
	return nil, false
}

// Row returns sample i of every channel in column order.
func (t *ChannelTable) Row(i int) []float64 {
	row := make([]float64, len(t.Columns))
	for c := range t.Columns {
		row[c] = t.Columns[c][i]
	}
	return row
}

// SynthesizeMultichannel generates one alpha-band signal and one blink
// artifact, then builds column c as gains[c].Gain*blink + alpha.
func SynthesizeMultichannel(cfg TimeConfig, gains []ChannelGain, src Source) (*ChannelTable, error) {
	axis, err := cfg.Axis()
	if err != nil {
		return nil, err
	}
	return synthesizeMultichannel(cfg, axis, gains, sourceOrGlobal(src))
}

func synthesizeMultichannel(cfg TimeConfig, axis []float64, gains []ChannelGain, src Source) (*ChannelTable, error) {
	if err := validateGains(gains); err != nil {
		return nil, err
	}

	alpha, err := generateBand(axis, mustBand(Alpha), src)
	if err != nil {
		return nil, err
	}
	blink, err := GenerateBlinkArtifact(cfg)
	if err != nil {
		return nil, err
	}

	table := &ChannelTable{
		Names:   make([]string, len(gains)),
		Columns: make([][]float64, len(gains)),
	}
	for i, g := range gains {
		col := make([]float64, len(alpha))
		vecmath.ScaleBlock(col, blink, g.Gain)
		vecmath.AddBlockInPlace(col, alpha)

		table.Names[i] = g.Name
		table.Columns[i] = col
	}

	return table, nil
}

func validateGains(gains []ChannelGain) error {
	if len(gains) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidChannels)
	}

	seen := make(map[string]struct{}, len(gains))
	for _, g := range gains {
		if g.Name == "" {
			return fmt.Errorf("%w: empty channel name", ErrInvalidChannels)
		}
		if _, dup := seen[g.Name]; dup {
			return fmt.Errorf("%w: duplicate channel %q", ErrInvalidChannels, g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}
