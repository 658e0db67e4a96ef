package nlu

import (
	"github.com/cloudflare/ahocorasick"
)

// KeywordSet is a fixed set of trigger keywords pre-compiled into an
// Aho-Corasick matcher. A single pass over the text finds every keyword,
// independent of how many keywords are registered.
type KeywordSet struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordSet builds a matcher over the given keywords. Keywords are
// normalized so matching agrees with Normalize output.
func NewKeywordSet(keywords []string) *KeywordSet {
	normalized := make([]string, 0, len(keywords))
	patterns := make([][]byte, 0, len(keywords))
	for _, kw := range keywords {
		n := Normalize(kw)
		if n == "" {
			continue
		}
		normalized = append(normalized, n)
		patterns = append(patterns, []byte(n))
	}

	ks := &KeywordSet{keywords: normalized}
	if len(patterns) > 0 {
		ks.matcher = ahocorasick.NewMatcher(patterns)
	}
	return ks
}

// Contains reports whether any keyword occurs in the normalized text.
func (ks *KeywordSet) Contains(normalizedText string) bool {
	if ks.matcher == nil {
		return false
	}
	return len(ks.matcher.Match([]byte(normalizedText))) > 0
}

// Keywords returns the normalized keywords in registration order.
func (ks *KeywordSet) Keywords() []string {
	return ks.keywords
}
