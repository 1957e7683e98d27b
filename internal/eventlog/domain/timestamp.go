package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned by ParseTimestamp for unrecognized input.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimestampLayout renders UTC with an explicit +00:00 offset and up to
// microsecond precision, the resolution of timestamptz.
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

var (
	offsetLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04:05Z07",
		"2006-01-02T15:04Z07:00",
	}
	// Inputs without offset are parsed as UTC wall clock.
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// ParseTimestamp accepts ISO-8601 datetimes with or without a UTC offset.
// A space may replace the date/time separator. Fractional seconds are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// FormatTimestamp renders t in UTC with an explicit offset.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Timestamp marshals as FormatTimestamp.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + FormatTimestamp(time.Time(t)) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidTimestamp
	}
	parsed, err := ParseTimestamp(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}
