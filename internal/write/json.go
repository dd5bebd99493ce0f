package write

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"iter"
	"math"
	"os"
	"strconv"

	"github.com/star/neotrack/internal/neo"
)

const jsonIndent = "  "

// WriteJSON creates or truncates filename and writes results to it as a
// pretty-printed JSON array. It returns the number of records written.
func WriteJSON(results iter.Seq[*neo.CloseApproach], filename string) (n int, err error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, &neo.FileAccessError{Op: "write", Path: filename, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return EncodeJSON(f, results)
}

// EncodeJSON writes results as a JSON array with one object per approach, in
// sequence order. Each object nests its NEO under "neo". An absent name is
// written as null and an unknown diameter as the bare token NaN, which
// encoding/json refuses to emit, so records are rendered here directly.
func EncodeJSON(w io.Writer, results iter.Seq[*neo.CloseApproach]) (int, error) {
	bw := bufio.NewWriter(w)
	var rec bytes.Buffer

	n := 0
	for a := range results {
		rec.Reset()
		if n == 0 {
			rec.WriteString("[\n")
		} else {
			rec.WriteString(",\n")
		}
		if err := appendApproach(&rec, a); err != nil {
			return n, err
		}
		if _, err := bw.Write(rec.Bytes()); err != nil {
			return n, err
		}
		n++
	}

	closing := "\n]\n"
	if n == 0 {
		closing = "[]\n"
	}
	if _, err := bw.WriteString(closing); err != nil {
		return n, err
	}
	return n, bw.Flush()
}

func appendApproach(buf *bytes.Buffer, a *neo.CloseApproach) error {
	if a.NEO == nil {
		return &neo.LinkMismatchError{Designation: a.Designation}
	}

	in1 := jsonIndent
	in2 := in1 + jsonIndent
	in3 := in2 + jsonIndent

	buf.WriteString(in1 + "{\n")
	writeMember(buf, in2, "datetime_utc", jsonString(a.TimeStr()), true)
	writeMember(buf, in2, "distance_au", jsonFloat(a.Distance), true)
	writeMember(buf, in2, "velocity_km_s", jsonFloat(a.Velocity), true)
	buf.WriteString(in2 + `"neo": {` + "\n")

	name := "null"
	if a.NEO.Name != nil {
		name = jsonString(*a.NEO.Name)
	}
	writeMember(buf, in3, "designation", jsonString(a.NEO.Designation), true)
	writeMember(buf, in3, "name", name, true)
	writeMember(buf, in3, "diameter_km", jsonFloat(a.NEO.Diameter), true)
	writeMember(buf, in3, "potentially_hazardous", strconv.FormatBool(a.NEO.Hazardous), false)

	buf.WriteString(in2 + "}\n")
	buf.WriteString(in1 + "}")
	return nil
}

func writeMember(buf *bytes.Buffer, indent, key, value string, more bool) {
	buf.WriteString(indent)
	buf.WriteString(jsonString(key))
	buf.WriteString(": ")
	buf.WriteString(value)
	if more {
		buf.WriteByte(',')
	}
	buf.WriteByte('\n')
}

func jsonString(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return string(bytes.TrimSuffix(b.Bytes(), []byte("\n")))
}

// jsonFloat formats like encoding/json, extended with the NaN and Infinity
// tokens accepted by Python-style JSON readers.
func jsonFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// e-09 becomes e-9.
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
