// Package write serializes linked close approaches to result files.
//
// The CSV and JSON encoders are deliberately independent: CSV output is
// string-typed and substitutes display placeholders for missing values,
// while JSON output keeps native types, nulls and NaN.
package write

import (
	"encoding/csv"
	"io"
	"iter"
	"math"
	"os"
	"strconv"

	"github.com/star/neotrack/internal/neo"
)

// CSVHeader is the column order of tabular result files.
var CSVHeader = []string{
	"datetime_utc",
	"distance_au",
	"velocity_km_s",
	"designation",
	"name",
	"diameter_km",
	"potentially_hazardous",
}

// WriteCSV creates or truncates filename and writes results to it as CSV.
// It returns the number of records written.
func WriteCSV(results iter.Seq[*neo.CloseApproach], filename string) (n int, err error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, &neo.FileAccessError{Op: "write", Path: filename, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return EncodeCSV(f, results)
}

// EncodeCSV writes a header row and one row per approach, in sequence order.
// Floats use the shortest exact decimal form without an exponent, so a
// diameter of 10 is written as "10" rather than "10.0", and 1e-05 as "0.00001".
func EncodeCSV(w io.Writer, results iter.Seq[*neo.CloseApproach]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, err
	}

	n := 0
	for a := range results {
		row, err := csvRow(a)
		if err != nil {
			return n, err
		}
		if err := cw.Write(row); err != nil {
			return n, err
		}
		n++
	}

	cw.Flush()
	return n, cw.Error()
}

func csvRow(a *neo.CloseApproach) ([]string, error) {
	if a.NEO == nil {
		return nil, &neo.LinkMismatchError{Designation: a.Designation}
	}

	name := "None"
	if a.NEO.Name != nil {
		name = *a.NEO.Name
	}

	return []string{
		a.TimeStr(),
		csvFloat(a.Distance),
		csvFloat(a.Velocity),
		a.NEO.Designation,
		name,
		csvFloat(a.NEO.Diameter),
		csvBool(a.NEO.Hazardous),
	}, nil
}

func csvFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func csvBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
