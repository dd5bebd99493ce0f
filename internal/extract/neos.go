// Package extract loads the NEO catalog and close-approach datasets into
// unlinked neo entities.
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/star/neotrack/internal/neo"
)

// Catalog column names.
const (
	ColDesignation = "pdes"
	ColName        = "name"
	ColHazardous   = "pha"
	ColDiameter    = "diameter"
)

// LoadNEOs reads the NEO catalog CSV at path.
func LoadNEOs(path string) ([]*neo.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &neo.FileAccessError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	neos, err := ParseNEOs(f)
	if err != nil {
		var pe *neo.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return neos, nil
}

// ParseNEOs reads a header row followed by one NEO per record, in source order.
// Columns are located by header name; extra columns are ignored.
func ParseNEOs(r io.Reader) ([]*neo.NearEarthObject, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			err = errors.New("empty catalog")
		}
		return nil, &neo.ParseError{Err: fmt.Errorf("reading header: %w", err)}
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}
	var idx [4]int
	for i, name := range []string{ColDesignation, ColName, ColHazardous, ColDiameter} {
		col, ok := cols[name]
		if !ok {
			return nil, &neo.ParseError{Field: name, Err: neo.ErrMissingColumn}
		}
		idx[i] = col
	}

	var neos []*neo.NearEarthObject
	for rec := 1; ; rec++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &neo.ParseError{Record: rec, Err: err}
		}

		n, perr := newNEO(row[idx[0]], row[idx[1]], row[idx[2]], row[idx[3]])
		if perr != nil {
			perr.Record = rec
			return nil, perr
		}
		neos = append(neos, n)
	}

	return neos, nil
}

func newNEO(designation, name, pha, diameter string) (*neo.NearEarthObject, *neo.ParseError) {
	if designation == "" {
		return nil, &neo.ParseError{Field: ColDesignation, Err: neo.ErrEmptyDesignation}
	}

	n := &neo.NearEarthObject{
		Designation: designation,
		Hazardous:   pha == "Y",
		Diameter:    math.NaN(),
	}
	if name != "" {
		n.Name = &name
	}
	if diameter != "" {
		d, err := strconv.ParseFloat(diameter, 64)
		if err != nil {
			return nil, &neo.ParseError{Field: ColDiameter, Err: err}
		}
		n.Diameter = d
	}
	return n, nil
}
