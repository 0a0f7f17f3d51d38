// Package money converts between the decimal-string amounts used on the wire
// and the int64 cent values used for all internal arithmetic. Balances are
// never handled as floats.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCents converts a decimal string with up to 2 fractional digits into cents.
// "29.99" -> 2999, "10" -> 1000, "-1.15" -> -115.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount required")
	}

	neg := false
	if s[0] == '+' {
		s = s[1:]
	} else if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount")
	}

	intPart := parts[0]
	frac := "00"
	if len(parts) == 2 {
		if len(parts[1]) == 0 || len(parts[1]) > 2 {
			return 0, fmt.Errorf("amount supports up to 2 decimals")
		}
		frac = parts[1] + strings.Repeat("0", 2-len(parts[1]))
	}

	ip, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount integer: %w", err)
	}

	fp, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || fp < 0 {
		return 0, fmt.Errorf("invalid amount fractional")
	}

	// ip*100+fp must stay inside int64; fp is at most 99.
	if ip > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("amount out of range")
	}

	total := ip*100 + fp
	if neg {
		total = -total
	}

	return total, nil
}

// FormatCents renders cents as a two-decimal string: 7000 -> "70.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
