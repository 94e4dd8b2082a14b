// Package export writes synthesized signals to CSV and EDF files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/cwbudde/algo-eeg/dsp/eeg"
)

// SignalColumn is the header of a single-channel CSV file.
const SignalColumn = "eeg signal"

// WriteSignalCSV writes one sample per row under the "eeg signal" header.
func WriteSignalCSV(w io.Writer, signal []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{SignalColumn}); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	row := make([]string, 1)
	for i, v := range signal {
		row[0] = formatSample(v)
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write csv row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteTableCSV writes the channel names as header and one row per sample.
func WriteTableCSV(w io.Writer, table *eeg.ChannelTable) error {
	if table == nil || table.NumChannels() == 0 {
		return errors.New("export: empty channel table")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(table.Names); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	row := make([]string, table.NumChannels())
	for i := range table.Rows() {
		for c, col := range table.Columns {
			row[c] = formatSample(col[i])
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write csv row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// ReadCSV parses a file written by WriteSignalCSV or WriteTableCSV.
func ReadCSV(r io.Reader) (*eeg.ChannelTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("export: csv has no header")
	}

	header := records[0]
	table := &eeg.ChannelTable{
		Names:   append([]string(nil), header...),
		Columns: make([][]float64, len(header)),
	}
	for c := range table.Columns {
		table.Columns[c] = make([]float64, 0, len(records)-1)
	}
	for i, rec := range records[1:] {
		for c, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parse row %d column %q", i, header[c])
			}
			table.Columns[c] = append(table.Columns[c], v)
		}
	}
	return table, nil
}

func formatSample(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
