// Package normalize converts locale-formatted amount and date strings from
// bank statements and operator input into the canonical forms used
// everywhere downstream.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a locale-formatted monetary string (thousands
// separator '.', decimal separator ',', optional leading '-') into a signed
// decimal. The empty string maps to zero. Already-normalized numeric input
// like "1234.56" parses to the same value again. The second return is false
// for input that is not a number; callers treat that as a soft warning.
//
// A lone dot with no comma is always read as a decimal point: "1.234" parses
// as 1.234, not as a thousands-separated 1234. Reading it the other way would
// re-scale already-normalized values like "0.125" on a second pass. Locale
// thousands forms stay unambiguous because they carry a decimal comma
// ("1.234,00") or more than one dot ("1.234.567").
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}

	var normalized string
	switch {
	case strings.Contains(s, ","):
		// Locale form: dots are thousands separators, comma is the
		// decimal point.
		normalized = strings.ReplaceAll(s, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		// Multiple dots without a comma can only be thousands separators.
		normalized = strings.ReplaceAll(s, ".", "")
	default:
		// Zero or one dot and no comma: already normalized.
		normalized = s
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders a decimal in the locale display form consumed by
// ParseAmount: thousands separated by '.', two decimal places after ','.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
