package nlu

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/brazillianlabs/poupazap/pkg/money"
)

// AmountMatch holds a parsed currency amount together with the literal
// substring it was parsed from, so callers can strip the span from the
// remaining text before further analysis.
type AmountMatch struct {
	Amount  decimal.Decimal
	Matched string
}

// Digits, optional thousands grouping, optional decimal separator with one or
// two fraction digits. Comma and dot are both accepted in either role.
var amountPattern = regexp.MustCompile(`\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?`)

// ExtractAmount scans normalized text for a currency value and returns the
// first match. When several numeric tokens exist, the first one wins; callers
// should not assume the result is the contextually best amount.
func ExtractAmount(normalizedText string) (AmountMatch, bool) {
	matched := amountPattern.FindString(normalizedText)
	if matched == "" {
		return AmountMatch{}, false
	}

	d, err := decimal.NewFromString(money.NormalizeSeparators(matched))
	if err != nil {
		return AmountMatch{}, false
	}

	return AmountMatch{Amount: d, Matched: matched}, true
}
