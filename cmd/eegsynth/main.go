// Command eegsynth generates synthetic EEG recordings.
//
// Usage:
//
//	eegsynth [flags] <command> [command flags]
//
// Examples:
//
//	eegsynth --rate 256 --end 10 synth --out eeg.csv
//	eegsynth --seed 7 multichannel --format edf --out eeg.edf
//	eegsynth multichannel --channel fp1=150 --channel oz=5
//	eegsynth blink
//	eegsynth bandpower --window hann
//	eegsynth decompose --components 2
//	eegsynth stats
package main

import (
	"os"

	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"
)

func main() {
	// Samples go to stdout, so logs must not.
	consumer.Default = consumer.NewWriter(os.Stderr)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(),
		"json": formatter.NewJson(),
	}

	app, c := newApplication(os.Stdout)
	app.Flag("log.level", "Minimum level of log messages.").
		SetValue(lv.Level)
	app.Flag("log.format", "Format of log messages (text or json).").
		Default("text").
		SetValue(lv.Consumer.Formatter)

	if err := c.run(app, os.Args[1:]); err != nil {
		log.WithError(err).Error("Command failed.")
		os.Exit(1)
	}
}
