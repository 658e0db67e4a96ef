// Package money provides currency-safe parsing and display for chat amounts.
// Values are held in minor units (cents) and converted through
// shopspring/decimal to avoid floating-point drift.
package money

import (
	"errors"
	"regexp"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BRL is the default currency of the bot.
const BRL = "BRL"

var valuePattern = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{1,2})?$|^\d+(?:[.,]\d{1,2})?$`)

// ErrInvalidAmount is returned when a string cannot be read as a currency value.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseValue reads a user-typed currency value. Both comma and dot are
// accepted; the last separator followed by one or two digits is treated as
// the decimal separator, everything before it as thousands grouping.
func ParseValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "r$")
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if !valuePattern.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}

	normalized := NormalizeSeparators(s)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// NormalizeSeparators rewrites a numeric literal with ambiguous comma/dot
// separators into canonical dot-decimal form. "1.234,56" and "1,234.56" both
// become "1234.56"; "50" stays "50".
func NormalizeSeparators(s string) string {
	lastSep := strings.LastIndexAny(s, ".,")
	if lastSep == -1 {
		return s
	}

	frac := s[lastSep+1:]
	if len(frac) >= 1 && len(frac) <= 2 {
		intPart := strings.Map(dropSeparators, s[:lastSep])
		return intPart + "." + frac
	}

	// Trailing group of three digits is grouping, not a fraction.
	return strings.Map(dropSeparators, s)
}

func dropSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}

// ToMinor converts a decimal value to minor units for the given currency.
func ToMinor(d decimal.Decimal, currencyCode string) int64 {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		currency = gomoney.GetCurrency(BRL)
	}
	return d.Mul(decimal.New(1, int32(currency.Fraction))).Round(0).IntPart()
}

// FromMinor converts minor units back to a decimal value.
func FromMinor(minor int64, currencyCode string) decimal.Decimal {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		currency = gomoney.GetCurrency(BRL)
	}
	return decimal.NewFromInt(minor).Div(decimal.New(1, int32(currency.Fraction)))
}

// Format renders a decimal value for user-facing messages, for example
// "R$1.234,56" for BRL.
func Format(d decimal.Decimal, currencyCode string) string {
	return gomoney.New(ToMinor(d, currencyCode), currencyCode).Display()
}

// FormatMinor renders minor units directly.
func FormatMinor(minor int64, currencyCode string) string {
	return gomoney.New(minor, currencyCode).Display()
}
