package timestamps

import (
	"strconv"
	"strings"
	"time"
)

// TodayMacro is the prefix of relative date operands: "@Today", "@Today - 30", "@Today + 7".
const TodayMacro = "@today"

// ParseRelative resolves a "@Today - N" operand against now. N counts whole days.
// The bool is false when s is not a macro.
func ParseRelative(s string, now time.Time) (time.Time, bool) {
	ss := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if !strings.HasPrefix(ss, TodayMacro) {
		return time.Time{}, false
	}
	rest := strings.TrimPrefix(ss, TodayMacro)
	if rest == "" {
		return now, true
	}

	sign := 1
	switch rest[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return time.Time{}, false
	}

	n, err := strconv.Atoi(rest[1:])
	if err != nil || n < 0 {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, sign*n), true
}

// ParseOperand resolves a query operand: a relative macro or an absolute date.
func ParseOperand(s string, now time.Time) (time.Time, bool) {
	if t, ok := ParseRelative(s, now); ok {
		return t, true
	}
	return Parse(s)
}
