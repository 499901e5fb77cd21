// Package money provides integer minor-unit (cent) arithmetic, parsing, and
// display formatting. All amounts are whole cents; nothing in this package
// ever round-trips through floating point.
package money

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAmount indicates input that cannot be parsed as a non-negative
// decimal amount.
var ErrInvalidAmount = errors.New("invalid amount")

// CurrencyGlyph prefixes every formatted amount.
const CurrencyGlyph = "¥"

// Format renders an amount in minor units as a currency string with two
// decimal places and thousands separators, e.g. Format(123456, false) ==
// "¥1,234.56". When showSign is true, positive amounts gain a leading "+";
// negative amounts never do.
func Format(amountMinor int64, showSign bool) string {
	var b strings.Builder
	if showSign && amountMinor > 0 {
		b.WriteString("+")
	}
	b.WriteString(CurrencyGlyph)

	abs := amountMinor
	if abs < 0 {
		b.WriteString("-")
		abs = -abs
	}

	b.WriteString(groupThousands(abs / 100))
	b.WriteString(".")
	frac := strconv.FormatInt(abs%100, 10)
	if len(frac) == 1 {
		b.WriteString("0")
	}
	b.WriteString(frac)
	return b.String()
}

// groupThousands renders n with a comma every three digits.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseToMinor converts a decimal string like "12.34" to minor units (1234).
// Parsing is pure string/integer arithmetic so values like "0.10" always
// yield exactly 10 cents. Fractional digits beyond the second are truncated.
// Negative, signed, and non-numeric input fail with ErrInvalidAmount; "0" is
// accepted (rejecting non-positive amounts is an edit-workflow concern, not a
// parsing one).
func ParseToMinor(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return 0, ErrInvalidAmount
		}
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxWhole = (1<<63 - 1) / 100
	if whole > maxWhole {
		return 0, ErrInvalidAmount
	}

	cents := whole * 100
	if len(fracPart) > 0 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}
	return cents, nil
}

// ToEditableString renders an amount for editing: whole-currency amounts
// without decimals ("12"), fractional amounts with trailing zeros trimmed
// ("12.3", "0.05"). Inverse of ParseToMinor for non-negative amounts.
func ToEditableString(amountMinor int64) string {
	whole := amountMinor / 100
	frac := amountMinor % 100
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	s := strconv.FormatInt(whole, 10) + "." + pad2(frac)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func pad2(n int64) string {
	if n < 0 {
		n = -n
	}
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
