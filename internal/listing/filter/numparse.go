// Package filter turns the loosely formatted search form into a structured
// query against the listing store.
package filter

import (
	"strconv"
	"strings"
)

// ParseAmount parses a price field the way users type it: "300 000",
// "300.000" and "300k" all come out as 300000. The rule is strip everything
// that is not a digit, then parse; a trailing "k" multiplies by 1000. The
// stripping is deliberately lossy — "1.2k" becomes 12000 — and must stay that
// way: the stored data was written under the same rule.
func ParseAmount(input string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "k") {
		n, ok := parseDigits(strings.TrimSuffix(s, "k"))
		if !ok {
			return 0, false
		}
		return n * 1000, true
	}
	return parseDigits(s)
}

// ParseCount parses a count threshold (bedrooms, bathrooms). Same stripping
// rule, no multiplier suffix.
func ParseCount(input string) (int, bool) {
	n, ok := parseDigits(input)
	if !ok || n > int64(^uint(0)>>1) {
		return 0, false
	}
	return int(n), true
}

func parseDigits(s string) (int64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
