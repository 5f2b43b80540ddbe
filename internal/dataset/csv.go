package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads samples from a file with one "label,v1,...,vN" row per
// sample. A leading header row is skipped when its first field is not a
// number. maxSamples limits the rows read; 0 reads all.
func LoadCSV(path string, spec Spec, maxSamples int) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	set, err := ReadCSV(f, spec, maxSamples)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader, spec Spec, maxSamples int) (*Set, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	set := &Set{Spec: spec}
	for row := 1; maxSamples <= 0 || len(set.Samples) < maxSamples; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if row == 1 && isHeader(record) {
			continue
		}
		s, err := parseRecord(spec, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		set.Samples = append(set.Samples, s)
	}
	return set, nil
}

// ParseLine parses a single CSV row.
func ParseLine(spec Spec, line string) (Sample, error) {
	return parseRecord(spec, strings.Split(strings.TrimSpace(line), ","))
}

// ParseValues parses a row of raw values without a label.
func ParseValues(spec Spec, line string) ([]float64, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != spec.Shape().NumElements() {
		return nil, fmt.Errorf("%w: %d values, want %d", ErrInvalidSample, len(fields), spec.Shape().NumElements())
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %v", ErrInvalidSample, i+1, err)
		}
		values[i] = Normalize(v)
	}
	return values, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	return err != nil
}

func parseRecord(spec Spec, record []string) (Sample, error) {
	want := spec.Shape().NumElements() + 1
	if len(record) != want {
		return Sample{}, fmt.Errorf("%w: got %d fields, want %d", ErrInvalidSample, len(record), want)
	}
	label, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return Sample{}, fmt.Errorf("%w: label: %v", ErrInvalidSample, err)
	}
	raw := make([]float64, len(record)-1)
	for i, f := range record[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: column %d: %v", ErrInvalidSample, i+2, err)
		}
		raw[i] = v
	}
	return NewSample(spec, label, raw)
}
