package timeutil

import (
	"testing"
	"time"
)

func TestParseCADTime(t *testing.T) {
	want := time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"cad layout", "1900-Jan-01 12:00", false},
		{"canonical layout", "1900-01-01 12:00", false},
		{"surrounding space", "  1900-Jan-01 12:00 ", false},
		{"date only", "1900-01-01", true},
		{"garbage", "yesterday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCADTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCADTime(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseCADTime(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2020, 12, 31, 23, 59, 0, 0, time.UTC)
	if got := FormatDatetime(ts); got != "2020-12-31 23:59" {
		t.Errorf("FormatDatetime = %q", got)
	}

	// Round trip through the CAD layout.
	parsed, err := ParseCADTime("2020-Dec-31 23:59")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDatetime(parsed); got != "2020-12-31 23:59" {
		t.Errorf("round trip = %q", got)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2020, 1, 1, 0, 1, 0, 0, time.UTC)
	b := time.Date(2020, 1, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	if !SameDate(a, b) {
		t.Error("expected same date")
	}
	if SameDate(b, c) {
		t.Error("expected different dates")
	}
	if !DateOnly(b).Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateOnly = %v", DateOnly(b))
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-02-29")
	if err != nil {
		t.Fatal(err)
	}
	if FormatDate(d) != "2020-02-29" {
		t.Errorf("FormatDate = %q", FormatDate(d))
	}
	if _, err := ParseDate("2021-02-29"); err == nil {
		t.Error("expected error for invalid leap day")
	}
}
