package ai

import (
	"regexp"
	"strings"

	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/lang/en"
	"github.com/blugelabs/bluge/analysis/token"
	"github.com/blugelabs/bluge/analysis/tokenizer"
)

// Upper bound on stop and stem passes, real bios settle in two or three.
const maxAnalyzePasses = 8

var (
	urlPattern     = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	mentionPattern = regexp.MustCompile(`@\w+|#`)
	nonLatin       = regexp.MustCompile(`[^A-Za-z\s]`)
)

// Normalizer cleans a free-text bio into space separated Porter stems.
// It holds no mutable state once built and is safe for concurrent use.
type Normalizer struct {
	analyzer *analysis.Analyzer
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		analyzer: &analysis.Analyzer{
			Tokenizer: tokenizer.NewUnicodeTokenizer(),
			TokenFilters: []analysis.TokenFilter{
				token.NewStopTokensFilter(en.StopWords()),
				token.NewPorterStemmer(),
			},
		},
	}
}

// Normalize strips URLs, mentions, '#' and every non latin character, lowercases,
// drops English stop words and stems what is left. Empty input gives empty output.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = nonLatin.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// One Porter pass is not a fixed point ("coffee" -> "coffe" -> "coff", "haves" -> "have"
	// which is a stop word), so the chain runs until the output no longer changes.
	out := n.analyze(text)
	for pass := 1; pass < maxAnalyzePasses; pass++ {
		next := n.analyze(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func (n *Normalizer) analyze(text string) string {
	if text == "" {
		return ""
	}
	stream := n.analyzer.Analyze([]byte(text))
	stems := make([]string, 0, len(stream))
	for _, t := range stream {
		if len(t.Term) == 0 {
			continue
		}
		stems = append(stems, string(t.Term))
	}
	return strings.Join(stems, " ")
}
