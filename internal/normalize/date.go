package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoFormat = "2006-01-02"

// DisplayToISO converts a DD.MM.YYYY display date to an ISO YYYY-MM-DD
// string. Two-digit years are disambiguated: 00-50 become 20xx, 51-99 become
// 19xx. Day values outside 1-31, months outside 1-12 and years outside
// 2000-2100 yield "" rather than an error; callers treat that as a soft
// warning.
func DisplayToISO(s string) string {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return ""
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return ""
	}

	if len(parts[2]) <= 2 {
		year = expandYear(year)
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2100 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ISOToDisplay converts an ISO YYYY-MM-DD string to DD.MM.YYYY display form.
// Invalid input yields "".
func ISOToDisplay(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return ""
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return ""
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2100 {
		return ""
	}
	return fmt.Sprintf("%02d.%02d.%04d", day, month, year)
}

// expandYear maps a two-digit year to its century: 00-50 -> 20xx, 51-99 ->
// 19xx. Since DisplayToISO only accepts years 2000-2100, every 19xx
// expansion is rejected there; two-digit years 51-99 never produce a date.
func expandYear(y int) int {
	if y <= 50 {
		return 2000 + y
	}
	return 1900 + y
}

// ParseISO converts an ISO date string to a UTC midnight instant.
func ParseISO(s string) (time.Time, bool) {
	t, err := time.Parse(isoFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISO renders an instant as an ISO date string.
func FormatISO(t time.Time) string {
	return t.Format(isoFormat)
}

// FormatWhileTyping inserts the '.' separators of a DD.MM.YYYY date
// progressively as digits are typed, without requiring a complete date.
// "0102" becomes "01.02." and "010220" becomes "01.02.20".
func FormatWhileTyping(s string) string {
	var digits []byte
	for i := 0; i < len(s) && len(digits) < 8; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}

	var b strings.Builder
	for i, d := range digits {
		b.WriteByte(d)
		if (i == 1 || i == 3) && len(digits) > i {
			b.WriteByte('.')
		}
	}
	return b.String()
}
