package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
)

// Header is the column layout of the CSV format.
var Header = []string{"blood_pressure", "cholesterol", "heart_rate", "age", "smoking", "glucose", "chd"}

// LoadCSV reads a data set from path. See ReadCSV.
func LoadCSV(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses rows of seven numeric columns. A first row whose first
// field is not a number is treated as a header and skipped.
func ReadCSV(r io.Reader) (Set, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = len(Header)
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return Set{}, fmt.Errorf("read dataset: %w", err)
	}

	var s Set
	for i, row := range rows {
		if i == 0 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64); err != nil {
				continue
			}
		}
		var v [7]float64
		for j, field := range row {
			x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Set{}, fmt.Errorf("dataset row %d column %s: %w", i+1, Header[j], err)
			}
			v[j] = x
		}
		s.Features = append(s.Features, fuzzify.MeasurementFromVector([6]float64(v[:6])))
		s.Targets = append(s.Targets, v[6])
	}
	return s, nil
}

// WriteCSV writes s with a header row.
func WriteCSV(w io.Writer, s Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write dataset header: %w", err)
	}
	for _, row := range s.Rows() {
		rec := make([]string, len(row))
		for j, x := range row {
			rec[j] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write dataset row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
