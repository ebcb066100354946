package moderation

import (
	"strings"
	"testing"
)

func BenchmarkKeywordMatcher_Count(b *testing.B) {
	matcher, err := NewKeywordMatcher(SuspiciousBioKeywords)
	if err != nil {
		b.Fatal(err)
	}
	bio := strings.Repeat("Coffee lover, free giveaway for followers, dm for collab. ", 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matcher.Count(bio)
	}
}

func BenchmarkKeywordMatcher_Any(b *testing.B) {
	matcher, err := NewKeywordMatcher(SuspiciousLinkKeywords)
	if err != nil {
		b.Fatal(err)
	}
	bio := strings.Repeat("Photographer and traveller sharing stories ", 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matcher.Any(bio)
	}
}
