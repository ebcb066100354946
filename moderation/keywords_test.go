package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordMatcher_Hits(t *testing.T) {
	req := require.New(t)
	matcher, err := NewKeywordMatcher(SuspiciousBioKeywords)
	req.NoError(err)

	tests := []struct {
		name  string
		input string
		hits  []string
	}{
		{name: "Three promotional words", input: "free giveaway for followers", hits: []string{"free", "giveaway", "followers"}},
		{name: "Case insensitive", input: "FREE Promo", hits: []string{"free", "promo"}},
		{name: "Repeated word counts once", input: "free free free", hits: []string{"free"}},
		{name: "Multi word phrase", input: "Please DM for collab", hits: []string{"dm for collab"}},
		{name: "Substring inside a word", input: "carefree days", hits: []string{"free"}},
		{name: "Nothing found", input: "Coffee lover", hits: nil},
		{name: "Empty string", input: "", hits: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.hits, matcher.Hits(tt.input))
			req.Equal(len(tt.hits), matcher.Count(tt.input))
			req.Equal(len(tt.hits) > 0, matcher.Any(tt.input))
		})
	}
}

func TestKeywordMatcher_SuspiciousLinks(t *testing.T) {
	req := require.New(t)
	matcher, err := NewKeywordMatcher(SuspiciousLinkKeywords)
	req.NoError(err)

	req.True(matcher.Any("join my telegram"))
	req.True(matcher.Any("t.me/deals"))
	req.True(matcher.Any("OnlyFans link below"))
	req.False(matcher.Any("Just a regular bio"))
}

func TestKeywordMatcher_EmptyDictionary(t *testing.T) {
	req := require.New(t)
	matcher, err := NewKeywordMatcher([]string{"", ""})
	req.NoError(err)

	req.Empty(matcher.Keywords())
	req.Zero(matcher.Count("free giveaway"))
	req.False(matcher.Any("free giveaway"))
}

func TestKeywordMatcher_Dedupes(t *testing.T) {
	req := require.New(t)
	matcher, err := NewKeywordMatcher([]string{"Shop", "shop", "buy"})
	req.NoError(err)
	req.Equal([]string{"buy", "shop"}, matcher.Keywords())
	req.Equal(2, matcher.Count("buy_shop_now"))
}
