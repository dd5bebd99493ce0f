package extract

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star/neotrack/internal/neo"
)

// Trimmed excerpt of the JPL small-body catalog, including its unused columns.
const catalogCSV = `id,spkid,full_name,pdes,name,prefix,neo,pha,H,G,M1,M2,K1,K2,PC,diameter,extent,albedo
a0000433,2000433,"   433 Eros (A898 PA)",433,Eros,,Y,N,10.4,0.46,,,,,,16.84,34.4x11.2x11.2,0.25
a0000719,2000719,"   719 Albert (A911 TB)",719,Albert,,Y,N,15.5,,,,,,,,,
bK19A00B,3836085,"(2019 AB)",2019 AB,,,Y,Y,20.1,,,,,,,,,
bK20F00K,3986000,"(2020 FK)",2020 FK,,,Y,,25.3,,,,,,,0.046,,
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNEOs(t *testing.T) {
	path := writeTemp(t, "neos.csv", catalogCSV)

	neos, err := LoadNEOs(path)
	require.NoError(t, err)
	require.Len(t, neos, 4)

	// Source order is preserved.
	var got []string
	for _, n := range neos {
		got = append(got, n.Designation)
	}
	assert.Equal(t, []string{"433", "719", "2019 AB", "2020 FK"}, got)

	eros := neos[0]
	require.NotNil(t, eros.Name)
	assert.Equal(t, "Eros", *eros.Name)
	assert.Equal(t, 16.84, eros.Diameter)
	assert.False(t, eros.Hazardous)
	assert.Nil(t, eros.Approaches)

	albert := neos[1]
	assert.True(t, math.IsNaN(albert.Diameter))
	assert.False(t, albert.Hazardous)

	unnamed := neos[2]
	assert.Nil(t, unnamed.Name)
	assert.True(t, unnamed.Hazardous)
	assert.True(t, math.IsNaN(unnamed.Diameter))

	assert.False(t, neos[3].Hazardous, "empty pha flag is not hazardous")
	assert.Equal(t, 0.046, neos[3].Diameter)
}

func TestParseNEOsExampleRow(t *testing.T) {
	neos, err := ParseNEOs(strings.NewReader("pdes,name,pha,diameter\n433,Eros,N,\n"))
	require.NoError(t, err)
	require.Len(t, neos, 1)

	n := neos[0]
	assert.Equal(t, "433", n.Designation)
	require.NotNil(t, n.Name)
	assert.Equal(t, "Eros", *n.Name)
	assert.False(t, n.Hazardous)
	assert.False(t, n.Diameter == n.Diameter, "unknown diameter must not equal itself")
	assert.NotEqual(t, 0.0, n.Diameter)
}

func TestParseNEOsHazardFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"Y", true},
		{"N", false},
		{"y", false},
		{"", false},
		{"Yes", false},
		{" Y", false},
		{"1", false},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.raw), func(t *testing.T) {
			input := "pdes,name,pha,diameter\n433,Eros," + csvField(tt.raw) + ",1.0\n"
			neos, err := ParseNEOs(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, neos, 1)
			assert.Equal(t, tt.want, neos[0].Hazardous)
		})
	}
}

func csvField(s string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write([]string{s})
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

func TestParseNEOsColumnOrderIndependent(t *testing.T) {
	neos, err := ParseNEOs(strings.NewReader("diameter,pha,name,pdes\n0.5,Y,,2001 XY\n"))
	require.NoError(t, err)
	require.Len(t, neos, 1)
	assert.Equal(t, "2001 XY", neos[0].Designation)
	assert.Nil(t, neos[0].Name)
	assert.True(t, neos[0].Hazardous)
	assert.Equal(t, 0.5, neos[0].Diameter)
}

func TestParseNEOsByteOrderMark(t *testing.T) {
	neos, err := ParseNEOs(strings.NewReader("\ufeffpdes,name,pha,diameter\n433,Eros,N,16.84\n"))
	require.NoError(t, err)
	require.Len(t, neos, 1)
	assert.Equal(t, "433", neos[0].Designation)
}

func TestParseNEOsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		field   string
		record  int
		wantErr error
	}{
		{
			name:    "missing name column",
			input:   "pdes,pha,diameter\n433,N,1\n",
			field:   ColName,
			wantErr: neo.ErrMissingColumn,
		},
		{
			name:    "missing pha column",
			input:   "pdes,name,diameter\n433,Eros,1\n",
			field:   ColHazardous,
			wantErr: neo.ErrMissingColumn,
		},
		{
			name:    "malformed diameter",
			input:   "pdes,name,pha,diameter\n433,Eros,N,1\n719,Albert,N,big\n",
			field:   ColDiameter,
			record:  2,
			wantErr: strconv.ErrSyntax,
		},
		{
			name:    "empty designation",
			input:   "pdes,name,pha,diameter\n,Eros,N,1\n",
			field:   ColDesignation,
			record:  1,
			wantErr: neo.ErrEmptyDesignation,
		},
		{
			name:    "ragged row",
			input:   "pdes,name,pha,diameter\n433,Eros,N\n",
			record:  1,
			wantErr: csv.ErrFieldCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			neos, err := ParseNEOs(strings.NewReader(tt.input))
			assert.Nil(t, neos, "no partial results on failure")

			var pe *neo.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
			assert.Equal(t, tt.record, pe.Record)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParseNEOsEmptyInput(t *testing.T) {
	_, err := ParseNEOs(strings.NewReader(""))
	var pe *neo.ParseError
	require.ErrorAs(t, err, &pe)

	neos, err := ParseNEOs(strings.NewReader("pdes,name,pha,diameter\n"))
	require.NoError(t, err)
	assert.Empty(t, neos)
}

func TestLoadNEOsFileAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	_, err := LoadNEOs(path)

	var fe *neo.FileAccessError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, path, fe.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadNEOsParseErrorCarriesPath(t *testing.T) {
	path := writeTemp(t, "bad.csv", "pdes,name\n433,Eros\n")
	_, err := LoadNEOs(path)

	var pe *neo.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
}

// TestParseNEOsRandomCatalog checks the normalization rules over generated catalogs.
func TestParseNEOsRandomCatalog(t *testing.T) {
	faker := gofakeit.New(433)

	type row struct {
		pdes, name, pha, diameter string
	}
	rows := make([]row, 200)

	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write([]string{"pdes", "name", "pha", "diameter"})
	for i := range rows {
		r := row{
			pdes: strconv.Itoa(i+1) + " " + faker.Numerify("## ??"),
			pha:  faker.RandomString([]string{"Y", "N", "y", "", "n"}),
		}
		if faker.Bool() {
			r.name = faker.FirstName()
		}
		if faker.Bool() {
			r.diameter = strconv.FormatFloat(faker.Float64Range(0.001, 100), 'f', -1, 64)
		}
		rows[i] = r
		w.Write([]string{r.pdes, r.name, r.pha, r.diameter})
	}
	w.Flush()
	require.NoError(t, w.Error())

	neos, err := ParseNEOs(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, neos, len(rows))

	for i, r := range rows {
		n := neos[i]
		assert.Equal(t, r.pdes, n.Designation)
		assert.Equal(t, r.pha == "Y", n.Hazardous, "row %d pha=%q", i, r.pha)

		if r.name == "" {
			assert.Nil(t, n.Name, "row %d", i)
		} else if assert.NotNil(t, n.Name, "row %d", i) {
			assert.Equal(t, r.name, *n.Name)
		}

		if r.diameter == "" {
			assert.True(t, n.Diameter != n.Diameter, "row %d: unknown diameter must be NaN", i)
		} else {
			want, _ := strconv.ParseFloat(r.diameter, 64)
			assert.Equal(t, want, n.Diameter)
		}
	}
}
