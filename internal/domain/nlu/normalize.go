// Package nlu extracts financial intents from free-text chat messages.
// The pipeline is a sequence of independent steps: normalize the text,
// locate the amount span, locate an optional card span, then classify the
// remaining tokens. Ordering and first-match-wins tie-breaks are part of the
// observable behavior and must not change.
package nlu

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes raw input for matching: lower-case, diacritics
// stripped, whitespace collapsed. It is total and idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.Join(strings.Fields(stripped), " ")
}
