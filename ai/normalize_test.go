package ai

import (
	"profile-lab/internal/fixtures"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty string", input: "", expected: ""},
		{name: "Plural and gerund are stemmed", input: "Cats running", expected: "cat run"},
		{name: "URL mention and hashtag are stripped", input: "Cats https://t.co/abc @bob #running", expected: "cat run"},
		{name: "www links are stripped", input: "www.example.com cats", expected: "cat"},
		{name: "Only digits and punctuation", input: "2024 !!! 42", expected: ""},
		{name: "Only a URL", input: "https://example.com/promo", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.expected, normalizer.Normalize(tt.input))
		})
	}
}

func TestNormalizer_OutputAlphabet(t *testing.T) {
	req := require.New(t)
	normalizer := NewNormalizer()
	lowerWords := regexp.MustCompile(`^[a-z]+( [a-z]+)*$`)

	for _, input := range []string{
		"Designer at a small STUDIO, cats & books!",
		"Un été avec 3 chiens",
		"Free giveaway for followers, dm for collab 🎉",
	} {
		out := normalizer.Normalize(input)
		req.Regexp(lowerWords, out, input)
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	normalizer := NewNormalizer()
	inputs := append(fixtures.Bios(), "Cats running", "coffee", "haves", "Generously helpful relational people")

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			req := require.New(t)
			once := normalizer.Normalize(input)
			req.Equal(once, normalizer.Normalize(once))
		})
	}
}

func TestNormalizer_StemsToFixedPoint(t *testing.T) {
	req := require.New(t)
	normalizer := NewNormalizer()
	req.Equal("", normalizer.Normalize("haves"))
	coffee := normalizer.Normalize("coffee")
	req.NotEmpty(coffee)
	req.Equal(coffee, normalizer.Normalize("coffe"))
}

func TestNormalizer_StopWordsRemoved(t *testing.T) {
	req := require.New(t)
	normalizer := NewNormalizer()
	req.Equal("", normalizer.Normalize("the and of"))
}
