package export

import (
	"io"
	"math"
	"time"

	"github.com/OpenPSG/edf"
	"github.com/pkg/errors"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
	"github.com/cwbudde/algo-eeg/dsp/signal"
)

const (
	digitalMax = 32767
	// maxRecordBytes is the data record limit enforced by the EDF writer.
	maxRecordBytes = 61440
)

// EDFOptions describes the recording written to the EDF header.
type EDFOptions struct {
	PatientID   string
	RecordingID string
	StartTime   time.Time
	// Dimension is the physical unit label, "uV" when empty.
	Dimension string
	// Transducer is written for every signal.
	Transducer string
}

func (o EDFOptions) withDefaults() EDFOptions {
	if o.PatientID == "" {
		o.PatientID = "X X X X"
	}
	if o.RecordingID == "" {
		o.RecordingID = "Startdate X X X eegsynth"
	}
	if o.StartTime.IsZero() {
		o.StartTime = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if o.Dimension == "" {
		o.Dimension = "uV"
	}
	if o.Transducer == "" {
		o.Transducer = "synthetic"
	}
	return o
}

// WriteEDF writes table as one-second data records at sampleRate. The last
// record is zero-padded when the table does not fill it. Every channel shares
// the symmetric physical range given by the table peak.
func WriteEDF(ws io.WriteSeeker, table *eeg.ChannelTable, sampleRate int, opts EDFOptions) error {
	if table == nil || table.NumChannels() == 0 || table.Rows() == 0 {
		return errors.New("export: empty channel table")
	}
	if sampleRate <= 0 {
		return errors.Errorf("export: sample rate must be > 0: %d", sampleRate)
	}
	if size := table.NumChannels() * sampleRate * 2; size > maxRecordBytes {
		return errors.Errorf("export: data record of %d bytes exceeds %d", size, maxRecordBytes)
	}
	opts = opts.withDefaults()

	peak := physicalPeak(table)
	hdr := edf.Header{
		Version:            edf.Version0,
		PatientID:          opts.PatientID,
		RecordingID:        opts.RecordingID,
		StartTime:          opts.StartTime,
		DataRecordDuration: time.Second,
		SignalCount:        table.NumChannels(),
		Signals:            make([]edf.Signal, table.NumChannels()),
	}
	for c, name := range table.Names {
		hdr.Signals[c] = edf.Signal{
			Label:             name,
			TransducerType:    opts.Transducer,
			PhysicalDimension: opts.Dimension,
			PhysicalMin:       -peak,
			PhysicalMax:       peak,
			DigitalMin:        -digitalMax,
			DigitalMax:        digitalMax,
			SamplesPerRecord:  sampleRate,
		}
	}

	ew, err := edf.Create(ws, hdr)
	if err != nil {
		return errors.Wrap(err, "create edf")
	}

	rows := table.Rows()
	record := make([][]float64, table.NumChannels())
	for c := range record {
		record[c] = make([]float64, sampleRate)
	}
	for start := 0; start < rows; start += sampleRate {
		end := min(start+sampleRate, rows)
		for c, col := range table.Columns {
			n := copy(record[c], col[start:end])
			clear(record[c][n:])
		}
		if err := ew.WriteRecord(record); err != nil {
			return errors.Wrapf(err, "write edf record %d", start/sampleRate)
		}
	}

	return errors.Wrap(ew.Close(), "finalize edf")
}

// ReadEDF reads rows samples of every channel back from an EDF file written
// by WriteEDF. Channel names are taken from names.
func ReadEDF(r io.ReadSeeker, names []string, rows int) (*eeg.ChannelTable, error) {
	er, err := edf.Open(r)
	if err != nil {
		return nil, errors.Wrap(err, "open edf")
	}

	table := &eeg.ChannelTable{
		Names:   append([]string(nil), names...),
		Columns: make([][]float64, len(names)),
	}
	for c := range names {
		sr, err := er.Signal(c)
		if err != nil {
			return nil, errors.Wrapf(err, "edf signal %d", c)
		}
		col := make([]float64, rows)
		n, err := sr.Read(col)
		if err != nil && !(errors.Is(err, io.EOF) && n == rows) {
			return nil, errors.Wrapf(err, "read edf signal %q", names[c])
		}
		table.Columns[c] = col
	}
	return table, nil
}

// physicalPeak rounds the largest magnitude up to the two decimals the EDF
// header stores, so no sample falls outside the range.
func physicalPeak(table *eeg.ChannelTable) float64 {
	peak := 0.0
	for _, col := range table.Columns {
		peak = math.Max(peak, signal.Peak(col))
	}
	if peak == 0 {
		return 1
	}
	return math.Ceil(peak*100) / 100
}
