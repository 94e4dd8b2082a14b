package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"

	"github.com/cwbudde/algo-eeg/dsp/decomp"
	"github.com/cwbudde/algo-eeg/dsp/eeg"
	"github.com/cwbudde/algo-eeg/dsp/signal"
	"github.com/cwbudde/algo-eeg/dsp/window"
	"github.com/cwbudde/algo-eeg/internal/config"
	"github.com/cwbudde/algo-eeg/internal/export"
	"github.com/cwbudde/algo-eeg/measure/bandpower"
	"github.com/cwbudde/algo-eeg/stats/frequency"
	timestats "github.com/cwbudde/algo-eeg/stats/time"
)

type cli struct {
	stdout io.Writer

	configFile string
	rate       int
	start      float64
	end        float64
	seed       int64
	rateSet    bool
	startSet   bool
	endSet     bool
	seedSet    bool

	out        string
	format     string
	channels   channelsValue
	input      string
	windowName string
	periodic   bool
	normalize  float64
	components int
	method     string
}

func newApplication(stdout io.Writer) (*kingpin.Application, *cli) {
	c := &cli{stdout: stdout}

	app := kingpin.New("eegsynth", "Generates synthetic EEG recordings.")
	app.Flag("config", "YAML configuration file. Flags override its values.").
		Short('c').
		StringVar(&c.configFile)
	app.Flag("rate", "Sample rate in Hz.").
		IsSetByUser(&c.rateSet).
		IntVar(&c.rate)
	app.Flag("start", "Start of the time window in seconds.").
		IsSetByUser(&c.startSet).
		Float64Var(&c.start)
	app.Flag("end", "End of the time window in seconds.").
		IsSetByUser(&c.endSet).
		Float64Var(&c.end)
	app.Flag("seed", "Seed for reproducible output. 0 draws from the global source.").
		IsSetByUser(&c.seedSet).
		Int64Var(&c.seed)

	synth := app.Command("synth", "Synthesize a single-channel signal as CSV.")
	synth.Flag("out", "Output file, stdout when empty.").Short('o').StringVar(&c.out)
	synth.Flag("normalize", "Scale the output to this peak amplitude. 0 keeps raw values.").Float64Var(&c.normalize)

	multi := app.Command("multichannel", "Synthesize a blink-contaminated multichannel table.")
	multi.Flag("out", "Output file, stdout when empty.").Short('o').StringVar(&c.out)
	multi.Flag("format", "Output format.").Default("csv").EnumVar(&c.format, "csv", "edf")
	multi.Flag("channel", "Channel as name=gain, repeatable. Replaces the configured catalog.").SetValue(&c.channels)

	blink := app.Command("blink", "Write the blink artifact as CSV.")
	blink.Flag("out", "Output file, stdout when empty.").Short('o').StringVar(&c.out)
	blink.Flag("normalize", "Scale the output to this peak amplitude. 0 keeps raw values.").Float64Var(&c.normalize)

	app.Command("filter", "Print the response of the blink band-pass filter.")

	bp := app.Command("bandpower", "Print the power in each EEG band.")
	bp.Flag("input", "Analyze the first column of this CSV file instead of a synthesized signal.").StringVar(&c.input)
	bp.Flag("window", "Window applied before the FFT.").Default("hann").StringVar(&c.windowName)
	bp.Flag("periodic", "Use the periodic form of the window.").BoolVar(&c.periodic)

	dec := app.Command("decompose", "Decompose the multichannel table into components.")
	dec.Flag("components", "Number of components.").Default("2").IntVar(&c.components)
	dec.Flag("method", "Decomposition method (pca or ica).").Default("pca").StringVar(&c.method)

	app.Command("stats", "Print time-domain statistics of each channel.")

	return app, c
}

func (c *cli) run(app *kingpin.Application, args []string) error {
	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var opts []eeg.Option
	if cfg.Seed != 0 {
		opts = append(opts, eeg.WithSeed(cfg.Seed))
	}
	s, err := eeg.New(cfg.TimeConfig(), opts...)
	if err != nil {
		return err
	}
	log.With("rate", cfg.SampleRate).
		With("samples", s.SampleCount()).
		With("seed", cfg.Seed).
		Debug("Configured synthesizer.")

	switch cmd {
	case "synth":
		return c.synth(s)
	case "multichannel":
		return c.multichannel(s, cfg)
	case "blink":
		return c.blink(s)
	case "bandpower":
		return c.bandpower(s)
	case "decompose":
		return c.decompose(s, cfg)
	case "stats":
		return c.stats(s, cfg)
	case "filter":
		return c.filter(s)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (c *cli) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if c.configFile != "" {
		var err error
		if cfg, err = config.ReadFile(c.configFile, false); err != nil {
			return config.Config{}, err
		}
	}

	if c.rateSet {
		cfg.SampleRate = c.rate
	}
	if c.startSet {
		cfg.Start = c.start
	}
	if c.endSet {
		cfg.End = c.end
	}
	if c.seedSet {
		cfg.Seed = c.seed
	}
	if len(c.channels) > 0 {
		cfg.Channels = c.channels
	}

	return cfg, cfg.Validate()
}

func (c *cli) synth(s *eeg.Synthesizer) error {
	x, err := s.Synthesize()
	if err != nil {
		return err
	}
	log.With("samples", len(x)).Info("Synthesized signal.")
	return c.writeSignal(x)
}

func (c *cli) blink(s *eeg.Synthesizer) error {
	artifact, err := s.BlinkArtifact()
	if err != nil {
		return err
	}
	log.With("samples", len(artifact)).Info("Generated blink artifact.")
	return c.writeSignal(artifact)
}

func (c *cli) writeSignal(x []float64) error {
	if c.normalize < 0 {
		return fmt.Errorf("--normalize must be >= 0: %g", c.normalize)
	}
	if c.normalize > 0 {
		log.With("from", signal.Peak(x)).
			With("to", c.normalize).
			Debug("Normalizing peak.")
		var err error
		if x, err = signal.Normalize(x, c.normalize); err != nil {
			return err
		}
	}
	return c.writeOutput(func(w io.Writer) error {
		return export.WriteSignalCSV(w, x)
	})
}

func (c *cli) filter(s *eeg.Synthesizer) error {
	cfg := s.Config()
	chain, err := eeg.BlinkFilter(cfg, eeg.BlinkOptions{})
	if err != nil {
		return err
	}

	// One second of impulse response covers the 1 Hz lower edge.
	ir := chain.ImpulseResponse(cfg.SampleRate)
	if _, err := fmt.Fprintf(c.stdout, "Butterworth band-pass %g-%g Hz, order %d, %d sections, impulse peak %.6f\n\n",
		eeg.DefaultBlinkLowHz, eeg.DefaultBlinkHighHz, chain.Order(), chain.NumSections(), signal.Peak(ir),
	); err != nil {
		return err
	}

	rate := float64(cfg.SampleRate)
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Frequency [Hz]\tMagnitude [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--------------\t--------------\n"); err != nil {
		return err
	}
	for _, f := range []float64{0.25, 0.5, 1, 2, 3, 5, 10, 15, 20, 40} {
		if f >= rate/2 {
			break
		}
		if _, err := fmt.Fprintf(tw, "%g\t%.2f\n", f, chain.MagnitudeDB(f, rate)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (c *cli) multichannel(s *eeg.Synthesizer, cfg config.Config) error {
	table, err := s.SynthesizeMultichannel(cfg.ChannelGains())
	if err != nil {
		return err
	}
	log.With("channels", table.Names).
		With("samples", table.Rows()).
		With("format", c.format).
		Info("Synthesized multichannel table.")

	if c.format != "edf" {
		return c.writeOutput(func(w io.Writer) error {
			return export.WriteTableCSV(w, table)
		})
	}

	if c.out == "" {
		return fmt.Errorf("edf output needs --out")
	}
	f, err := os.OpenFile(c.out, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open output file %q: %w", c.out, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return export.WriteEDF(f, table, cfg.SampleRate, export.EDFOptions{})
}

func (c *cli) bandpower(s *eeg.Synthesizer) error {
	wt, err := window.Parse(strings.ToLower(c.windowName))
	if err != nil {
		return err
	}

	var samples []float64
	if c.input != "" {
		if samples, err = readFirstColumn(c.input); err != nil {
			return err
		}
	} else if samples, err = s.Synthesize(); err != nil {
		return err
	}

	spec, err := bandpower.Estimate(samples, bandpower.Config{
		SampleRate: float64(s.Config().SampleRate),
		Window:     wt,
		Periodic:   c.periodic,
	})
	if err != nil {
		return err
	}
	results := bandpower.AnalyzeSpectrum(spec, nil)
	if dom, ok := bandpower.Dominant(results); ok {
		log.With("band", dom.Band.Name).Info("Found dominant band.")
	}

	if err := printBandPower(c.stdout, results); err != nil {
		return err
	}
	return printSpectralFeatures(c.stdout, spec)
}

func (c *cli) decompose(s *eeg.Synthesizer, cfg config.Config) error {
	method, err := decomp.ParseMethod(c.method)
	if err != nil {
		return err
	}
	table, err := s.SynthesizeMultichannel(cfg.ChannelGains())
	if err != nil {
		return err
	}
	comps, err := decomp.Decompose(table.Columns, c.components, method)
	if err != nil {
		return err
	}
	return printComponents(c.stdout, table.Names, comps)
}

func (c *cli) stats(s *eeg.Synthesizer, cfg config.Config) error {
	table, err := s.SynthesizeMultichannel(cfg.ChannelGains())
	if err != nil {
		return err
	}
	return printStats(c.stdout, timestats.CalculateTable(table))
}

func (c *cli) writeOutput(write func(io.Writer) error) error {
	if c.out == "" {
		return write(c.stdout)
	}

	f, err := os.Create(c.out)
	if err != nil {
		return fmt.Errorf("cannot open output file %q: %w", c.out, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	log.With("file", c.out).Info("Wrote output.")
	return f.Close()
}

func readFirstColumn(fn string) ([]float64, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	table, err := export.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %q: %w", fn, err)
	}
	if table.NumChannels() == 0 {
		return nil, fmt.Errorf("input file %q has no columns", fn)
	}
	return table.Columns[0], nil
}

func printBandPower(w io.Writer, results []bandpower.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Band\tRange [Hz]\tPower\tRelative [%%]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t----------\t-----\t------------\n"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(tw, "%s\t%g-%g\t%.4f\t%.2f\n",
			r.Band.Name, r.Band.Low, r.Band.High, r.Power, 100*r.Relative,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printSpectralFeatures(w io.Writer, spec bandpower.Spectrum) error {
	fs := frequency.Calculate(spec.Density, spec.Resolution)
	band, err := eeg.LookupBand(string(eeg.Alpha))
	if err != nil {
		return err
	}
	alpha := frequency.PeakFrequency(spec.Density, spec.Resolution, band.Low, band.High)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value float64
	}{
		{"Peak frequency [Hz]", fs.PeakFrequency},
		{"Alpha peak [Hz]", alpha},
		{"Centroid [Hz]", fs.Centroid},
		{"Spread [Hz]", fs.Spread},
		{"SEF95 [Hz]", fs.EdgeFrequency},
		{"Spectral entropy", fs.Entropy},
	}
	if _, err := fmt.Fprintln(tw); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%.4f\n", r.label, r.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printStats(w io.Writer, stats []timestats.ChannelStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tMean\tRMS\tPeak\tPeak pos\tCrest\tZero crossings\tSkewness\tKurtosis\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t----\t---\t----\t--------\t-----\t--------------\t--------\t--------\n"); err != nil {
		return err
	}
	for _, cs := range stats {
		pos := cs.MaxPos
		if math.Abs(cs.Min) > math.Abs(cs.Max) {
			pos = cs.MinPos
		}
		if _, err := fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%d\t%.3f\t%d\t%.3f\t%.3f\n",
			cs.Name, cs.Mean, cs.RMS, cs.Peak, pos, cs.CrestFactor, cs.ZeroCrossings, cs.Skewness, cs.Kurtosis,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printComponents(w io.Writer, names []string, comps *decomp.Components) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Component\tVariance\tExplained [%%]\t%s\n", strings.Join(names, "\t")); err != nil {
		return err
	}
	for k := range comps.Len() {
		loadings := make([]string, len(comps.Vectors[k]))
		for i, v := range comps.Vectors[k] {
			loadings[i] = strconv.FormatFloat(v, 'f', 4, 64)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%.4f\t%.2f\t%s\n",
			k+1, comps.Variances[k], 100*comps.Explained[k], strings.Join(loadings, "\t"),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// channelsValue collects repeated --channel name=gain flags in order.
type channelsValue []config.Channel

func (v *channelsValue) Set(s string) error {
	name, gain, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("channel %q must be name=gain", s)
	}
	g, err := strconv.ParseFloat(strings.TrimSpace(gain), 64)
	if err != nil {
		return fmt.Errorf("channel %q: invalid gain: %w", s, err)
	}
	*v = append(*v, config.Channel{Name: strings.TrimSpace(name), Gain: g})
	return nil
}

func (v *channelsValue) String() string {
	parts := make([]string, len(*v))
	for i, ch := range *v {
		parts[i] = fmt.Sprintf("%s=%g", ch.Name, ch.Gain)
	}
	return strings.Join(parts, ",")
}

func (v *channelsValue) IsCumulative() bool { return true }
