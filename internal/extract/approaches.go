package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/star/neotrack/internal/neo"
	"github.com/star/neotrack/internal/timeutil"
)

// DataKey names the top-level array holding close-approach rows.
const DataKey = "data"

// Positions of the fields read from each close-approach row. Rows are
// positional, so a change in the upstream column order is not detectable here.
const (
	IdxDesignation = 0
	IdxTime        = 3
	IdxDistance    = 4
	IdxVelocity    = 7

	minRowLen = IdxVelocity + 1
)

// LoadApproaches reads the close-approach JSON document at path.
func LoadApproaches(path string) ([]*neo.CloseApproach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &neo.FileAccessError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	approaches, err := ParseApproaches(f)
	if err != nil {
		var pe *neo.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return approaches, nil
}

// ParseApproaches decodes a document of the form {"data": [[...], ...]} into
// unlinked close approaches, in source order.
func ParseApproaches(r io.Reader) ([]*neo.CloseApproach, error) {
	dec := json.NewDecoder(r)
	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, &neo.ParseError{Err: fmt.Errorf("decoding document: %w", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &neo.ParseError{Err: neo.ErrTrailingData}
	}

	raw, ok := doc[DataKey]
	if !ok {
		return nil, &neo.ParseError{Field: DataKey, Err: neo.ErrMissingKey}
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &neo.ParseError{Field: DataKey, Err: neo.ErrNullValue}
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &neo.ParseError{Field: DataKey, Err: err}
	}

	approaches := make([]*neo.CloseApproach, 0, len(rows))
	for i, row := range rows {
		a, err := newApproach(row)
		if err != nil {
			err.Record = i + 1
			return nil, err
		}
		approaches = append(approaches, a)
	}

	return approaches, nil
}

func newApproach(row []json.RawMessage) (*neo.CloseApproach, *neo.ParseError) {
	if len(row) < minRowLen {
		return nil, &neo.ParseError{Err: fmt.Errorf("%w: %d fields, need %d", neo.ErrShortRow, len(row), minRowLen)}
	}

	designation, err := fieldString(row[IdxDesignation])
	if err != nil {
		return nil, &neo.ParseError{Field: "des", Err: err}
	}
	if designation == "" {
		return nil, &neo.ParseError{Field: "des", Err: neo.ErrEmptyDesignation}
	}

	rawTime, err := fieldString(row[IdxTime])
	if err != nil {
		return nil, &neo.ParseError{Field: "cd", Err: err}
	}
	ts, err := timeutil.ParseCADTime(rawTime)
	if err != nil {
		return nil, &neo.ParseError{Field: "cd", Err: err}
	}

	distance, err := fieldFloat(row[IdxDistance])
	if err != nil {
		return nil, &neo.ParseError{Field: "dist", Err: err}
	}
	velocity, err := fieldFloat(row[IdxVelocity])
	if err != nil {
		return nil, &neo.ParseError{Field: "v_rel", Err: err}
	}

	return &neo.CloseApproach{
		Designation: designation,
		Time:        ts,
		Distance:    distance,
		Velocity:    velocity,
	}, nil
}

// fieldString accepts a JSON string or number and returns its text.
func fieldString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return n.String(), nil
}

func fieldFloat(raw json.RawMessage) (float64, error) {
	s, err := fieldString(raw)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}
