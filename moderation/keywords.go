package moderation

import (
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

var (
	// SuspiciousLinkKeywords flag bios that route followers off-platform.
	SuspiciousLinkKeywords = []string{"telegram", "t.me", "onlyfans"}
	// SuspiciousBioKeywords are the promotional phrases counted in a bio.
	SuspiciousBioKeywords = []string{"giveaway", "free", "followers", "linkinbio", "promo", "dm for collab", "ambassador"}
	// SuspiciousUsernameKeywords are the commercial words counted in a username.
	SuspiciousUsernameKeywords = []string{"official", "service", "link", "free", "buy", "shop", "store", "promo"}
)

// KeywordMatcher performs case-insensitive substring containment of a fixed keyword list
// with a single Aho-Corasick pass over the text.
type KeywordMatcher struct {
	matcher  *goahocorasick.Machine
	keywords []string
}

// NewKeywordMatcher builds the automaton over the lowercased, de-duplicated keywords.
// Empty keywords are ignored, an empty list yields a matcher that never hits.
func NewKeywordMatcher(keywords []string) (KeywordMatcher, error) {
	cleaned := lo.Uniq(lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = strings.ToLower(k)
		return k, k != ""
	}))
	sort.Strings(cleaned)
	if len(cleaned) == 0 {
		return KeywordMatcher{}, nil
	}

	patterns := lo.Map(cleaned, func(k string, _ int) []rune { return []rune(k) })
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return KeywordMatcher{}, err
	}
	return KeywordMatcher{matcher: m, keywords: cleaned}, nil
}

// Hits returns the distinct keywords contained in text, in the order they first appear.
func (k KeywordMatcher) Hits(text string) []string {
	if k.matcher == nil || text == "" {
		return nil
	}
	terms := k.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	if len(terms) == 0 {
		return nil
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Pos < terms[j].Pos })
	return lo.Uniq(lo.Map(terms, func(t *goahocorasick.Term, _ int) string { return string(t.Word) }))
}

// Count is the number of distinct keywords found in text.
func (k KeywordMatcher) Count(text string) int {
	return len(k.Hits(text))
}

// Any reports whether at least one keyword is contained in text.
func (k KeywordMatcher) Any(text string) bool {
	if k.matcher == nil || text == "" {
		return false
	}
	return len(k.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), true)) > 0
}

func (k KeywordMatcher) Keywords() []string {
	return k.keywords
}
