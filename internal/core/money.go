// Package core implements the transaction classification and
// aggregation engine: the record entity, the entry-form classifier,
// the time-window filter and the indicator reducers.
//
// This file contains money parsing and formatting. Amounts are stored
// as integer cents; the sign is implied by the transaction type and is
// never stored negative.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmountToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. It accepts both dot (12.34) and
// comma (12,34) separators. Zero is a valid amount; negative values and
// explicit signs are rejected.
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Units returns the amount as a float64 for display purposes only.
// Calculations always use cents.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// HalfUp halves a cent amount, rounding half-up on odd cents. Used for
// the 50%-deductible family consumption rule.
func HalfUp(cents int64) int64 {
	return (cents + 1) / 2
}
