package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Column headers used by recordings
const (
	TimeColumn   = "Time (s)"
	WeightColumn = "Weight (g)"
)

var ErrMissingColumn = errors.New("missing column")

// ReadCSV reads a recording. Columns are found by header name so extra columns are allowed
func ReadCSV(r io.Reader) (Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	timeIdx, weightIdx := -1, -1
	for i, name := range header {
		switch name {
		case TimeColumn:
			timeIdx = i
		case WeightColumn:
			weightIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, TimeColumn)
	}
	if weightIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, WeightColumn)
	}

	var series Series
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}
		if len(record) <= max(timeIdx, weightIdx) {
			return nil, fmt.Errorf("line %d: expected at least %d fields", line, max(timeIdx, weightIdx)+1)
		}

		t, err := strconv.ParseFloat(record[timeIdx], 64)
		if err != nil || !finite(t) {
			return nil, fmt.Errorf("line %d: invalid time %q", line, record[timeIdx])
		}
		w, err := strconv.ParseFloat(record[weightIdx], 64)
		if err != nil || !finite(w) {
			return nil, fmt.Errorf("line %d: invalid weight %q", line, record[weightIdx])
		}

		series = append(series, Sample{Time: t, Weight: w})
	}

	return series, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// WriteCSV writes the Series with the TimeColumn and WeightColumn headers
func (s Series) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{TimeColumn, WeightColumn})
	if err != nil {
		return err
	}

	for _, sample := range s {
		err = writer.Write([]string{
			strconv.FormatFloat(sample.Time, 'f', 2, 64),
			strconv.FormatFloat(sample.Weight, 'f', 3, 64),
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
