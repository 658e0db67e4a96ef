package nlu

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Maximum Levenshtein distance accepted for a fuzzy category match. Catches
// typos like "mercdo" for "mercado" without pulling unrelated words in.
const fuzzyMaxDistance = 2

// Classifier maps a token to one of a user-configurable set of spending
// categories. Matching is case and accent insensitive: exact or substring
// containment first, then a fuzzy fallback for near-misses.
type Classifier struct{}

// Classify returns the matching category name for the token, or ok=false when
// nothing matches. It never fails on an empty token or an empty category set.
func (Classifier) Classify(token string, categories []string) (string, bool) {
	token = Normalize(token)
	if token == "" {
		return "", false
	}

	for _, category := range categories {
		n := Normalize(category)
		if n == "" {
			continue
		}
		if strings.Contains(n, token) || strings.Contains(token, n) {
			return category, true
		}
	}

	for _, category := range categories {
		n := Normalize(category)
		if n == "" {
			continue
		}
		if d := fuzzy.RankMatchNormalizedFold(token, n); d >= 0 && d <= fuzzyMaxDistance {
			return category, true
		}
	}

	return "", false
}
