package dateutil

import (
	"testing"
	"time"
)

func TestParseAnyBothEncodings(t *testing.T) {
	iso, ok := ParseAny("2025-03-14")
	if !ok {
		t.Fatalf("expected ISO form to parse")
	}
	br, ok := ParseAny("14/03/2025")
	if !ok {
		t.Fatalf("expected localized form to parse")
	}
	if !iso.Equal(br) {
		t.Fatalf("encodings disagree: %v vs %v", iso, br)
	}
	if iso.Year() != 2025 || iso.Month() != time.March || iso.Day() != 14 {
		t.Fatalf("wrong date: %v", iso)
	}
	if iso.Hour() != 0 || iso.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", iso)
	}
	if iso.Location() != time.Local {
		t.Fatalf("expected local time, got %v", iso.Location())
	}
}

func TestParseAnyRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-date",
		"2025-13-01", // month out of range
		"32/01/2025", // day out of range
		"00/01/2025",
		"2025/03/14", // wrong separator for ISO ordering
		"14-03-2025", // wrong separator for localized ordering
		"1/3/2025",
		"2025-03-14T00:00:00",
		"99/99/9999",
	}
	for _, c := range cases {
		if _, ok := ParseAny(c); ok {
			t.Errorf("ParseAny(%q) unexpectedly succeeded", c)
		}
	}
}

func TestFormat(t *testing.T) {
	d := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.Local)
	if got := FormatISO(d); got != "2025-03-05" {
		t.Fatalf("FormatISO = %q", got)
	}
	if got := FormatBR(d); got != "05/03/2025" {
		t.Fatalf("FormatBR = %q", got)
	}
}

func TestToBR(t *testing.T) {
	if got := ToBR("2025-03-14"); got != "14/03/2025" {
		t.Fatalf("ToBR(iso) = %q", got)
	}
	if got := ToBR("14/03/2025"); got != "14/03/2025" {
		t.Fatalf("ToBR(br) = %q", got)
	}
	// unparsable text is displayed as stored
	if got := ToBR("soon"); got != "soon" {
		t.Fatalf("ToBR(garbage) = %q", got)
	}
}
