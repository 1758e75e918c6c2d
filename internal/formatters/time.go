package formatters

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/itchyny/timefmt-go"

	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

// TimestampLayout is the strftime layout Timestamp renders, RFC 3339 in UTC.
const TimestampLayout = "%Y-%m-%dT%H:%M:%SZ"

// ParseTime reads the date formats upstream APIs use, including unix epoch
// numbers. Zone-less inputs are taken as UTC.
func ParseTime(value any) (time.Time, bool) {
	s, ok := node.String(value)
	if !ok || s == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}

	return t.UTC(), true
}

// Strftime returns a formatter rendering dates with a strftime layout.
func Strftime(layout string) mapping.FormatFunc {
	return func(value any, _ string, _ node.View) (any, error) {
		t, ok := ParseTime(value)
		if !ok {
			return value, nil
		}

		return timefmt.Format(t, layout), nil
	}
}

// Timestamp normalizes a date to RFC 3339 in UTC.
func Timestamp(value any, key string, siblings node.View) (any, error) {
	return Strftime(TimestampLayout)(value, key, siblings)
}

// Unix converts a date to seconds since the epoch.
func Unix(value any, _ string, _ node.View) (any, error) {
	t, ok := ParseTime(value)
	if !ok {
		return value, nil
	}

	return t.Unix(), nil
}
