// Package types provides common type aliases and utilities.
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; values are rounded to
// two decimals only at presentation boundaries and at invoice finalization.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromInt creates a Money value from an integer.
func NewMoneyFromInt(i int64) Money {
	return decimal.NewFromInt(i)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// currencyJunk lists characters stripped before parsing imported amounts:
// currency symbols, thousands separators and whitespace as they appear in
// spreadsheet exports ("$1,250.00", "300 FCFA").
const currencyJunk = "$€£¥ , "

// ParseAmount parses a human-entered amount string into Money.
// Currency symbols, letter codes and thousands separators are stripped first.
// An empty string after stripping is an error, not zero: callers decide
// whether a missing cell defaults.
func ParseAmount(s string) (Money, error) {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencyJunk, r) {
			return -1
		}
		// Letter currency codes (FCFA, USD) are dropped as well.
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount %q", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// Display formats a Money value with two decimals for presentation.
func Display(m Money) string {
	return m.StringFixed(2)
}
