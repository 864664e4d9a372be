// Package types provides common type aliases and utilities.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// CurrencySymbols are the glyphs recognised as currency decoration on display strings.
var CurrencySymbols = []string{"₹", "$", "€", "£"}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// IsCurrencyDecorated reports whether s carries a currency glyph, e.g. "₹ 1,20,000".
func IsCurrencyDecorated(s string) bool {
	for _, sym := range CurrencySymbols {
		if strings.Contains(s, sym) {
			return true
		}
	}
	return false
}

// StripCurrency removes currency glyphs, thousands separators and spaces.
func StripCurrency(s string) string {
	for _, sym := range CurrencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	return strings.Join(strings.Fields(s), "")
}

// ParseCurrency parses a possibly decorated amount ("$1,250.00", "1250", "-₹ 40").
func ParseCurrency(s string) (Money, bool) {
	plain := StripCurrency(s)
	if plain == "" {
		return Zero(), false
	}
	m, err := decimal.NewFromString(plain)
	if err != nil {
		return Zero(), false
	}
	return m, true
}
