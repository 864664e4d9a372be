// Package timestamps parses the date and time representations found in report rows
// and the relative "@Today" macro used by the query builder.
package timestamps

import (
	"strconv"
	"strings"
	"time"

	"assetdesk/internal/core/record"
)

// layouts are tried in order for timezone-less and zoned values.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Parse tries several common formats. Timezone-less values are read in UTC.
func Parse(s string) (time.Time, bool) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return time.Time{}, false
	}

	// Integer epochs: 13+ digits are milliseconds, shorter are seconds
	if n, err := strconv.ParseInt(ss, 10, 64); err == nil {
		return FromEpoch(n), true
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, ss); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromEpoch converts epoch seconds or milliseconds to time.
func FromEpoch(n int64) time.Time {
	if n > 1_000_000_000_000 || n < -1_000_000_000_000 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// ParseValue reads a date from a cell. Numbers are epoch values.
func ParseValue(v record.Value) (time.Time, bool) {
	switch v.Kind() {
	case record.KindString:
		s, _ := v.Str()
		return Parse(s)
	case record.KindNumber:
		n, _ := v.Num()
		return FromEpoch(int64(n)), true
	default:
		return time.Time{}, false
	}
}

// IsISODate reports whether s starts with a YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	if len(s) < 10 {
		return false
	}
	for i := 0; i < 10; i++ {
		c := s[i]
		switch i {
		case 4, 7:
			if c != '-' {
				return false
			}
		default:
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	_, err := time.Parse("2006-01-02", s[:10])
	return err == nil
}
