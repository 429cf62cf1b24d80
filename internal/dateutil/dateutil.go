// Package dateutil converts between the two date encodings found on stored
// rows: ISO (YYYY-MM-DD) and the localized form (DD/MM/YYYY). Databases
// upgraded across releases carry both, so every read path goes through
// ParseAny instead of assuming a single layout.
package dateutil

import "time"

const (
	LayoutISO = "2006-01-02"
	LayoutBR  = "02/01/2006"
)

// ParseAny accepts both encodings and reports ok=false for anything else,
// including empty strings, malformed separators and out-of-range day or
// month components. Both encodings are anchored at midnight local time so
// date-only comparisons never drift across a timezone offset.
func ParseAny(s string) (time.Time, bool) {
	if len(s) != 10 {
		return time.Time{}, false
	}
	switch {
	case s[4] == '-' && s[7] == '-':
		if t, err := time.ParseInLocation(LayoutISO, s, time.Local); err == nil {
			return t, true
		}
	case s[2] == '/' && s[5] == '/':
		if t, err := time.ParseInLocation(LayoutBR, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func FormatISO(t time.Time) string { return t.Format(LayoutISO) }

func FormatBR(t time.Time) string { return t.Format(LayoutBR) }

// ToBR re-renders stored date text in the localized form. Text that cannot
// be parsed comes back unchanged; legacy rows are displayed as stored.
func ToBR(s string) string {
	if t, ok := ParseAny(s); ok {
		return FormatBR(t)
	}
	return s
}
