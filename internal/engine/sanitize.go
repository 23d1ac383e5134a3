package engine

import (
	"strings"

	"github.com/tartampluch/go-age/internal/config"
)

// SanitizeDigits drops every character that is not an ASCII digit and cuts the
// result to limit characters. A limit of 0 or less keeps every digit.
func SanitizeDigits(s string, limit int) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if limit > 0 && b.Len() >= limit {
			break
		}
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// SanitizeTriple applies SanitizeDigits to each field with its expected width.
func SanitizeTriple(t DateTriple) DateTriple {
	return DateTriple{
		Day:   SanitizeDigits(t.Day, config.DayDigits),
		Month: SanitizeDigits(t.Month, config.MonthDigits),
		Year:  SanitizeDigits(t.Year, config.YearDigits),
	}
}
