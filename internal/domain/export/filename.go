package export

import (
	"strings"
	"time"
)

// Filename builds "{base}[_filtered]_{timestamp}.{ext}".
// The timestamp is UTC ISO-8601 with milliseconds and ":" replaced by "-".
func Filename(base string, filtered bool, now time.Time, ext string) string {
	var b strings.Builder
	b.WriteString(sanitize(base))
	if filtered {
		b.WriteString("_filtered")
	}
	b.WriteByte('_')
	b.WriteString(strings.ReplaceAll(now.UTC().Format("2006-01-02T15:04:05.000Z"), ":", "-"))
	b.WriteByte('.')
	b.WriteString(ext)
	return b.String()
}

func sanitize(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "export"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '"', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, base)
}
