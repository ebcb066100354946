package ai

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"sort"
	"strings"
)

const (
	TfidfFormatVersion = 1
	// DefaultMaxFeatures is the vocabulary cap used when none is configured.
	DefaultMaxFeatures = 100
)

// TfidfModel is the persisted state of a fitted vectorizer.
// Vocabulary is sorted and its order is the column order of the text block.
type TfidfModel struct {
	Version    int       `json:"version"`
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
	Documents  int       `json:"documents"`
}

// TfidfVectorizer maps normalized text onto the fitted vocabulary.
// It is read-only after construction.
type TfidfVectorizer struct {
	model TfidfModel
	index map[string]int
}

// NewTfidfVectorizer rebuilds a vectorizer from a persisted model.
func NewTfidfVectorizer(model TfidfModel) *TfidfVectorizer {
	index := make(map[string]int, len(model.Vocabulary))
	for i, term := range model.Vocabulary {
		index[term] = i
	}
	return &TfidfVectorizer{model: model, index: index}
}

// FitTfidf learns at most maxFeatures terms from the corpus. Terms are ranked by
// their total count across the corpus (ties broken alphabetically), then the kept
// terms are sorted alphabetically to fix the column order.
// Smooth idf is used: ln((1+n)/(1+df)) + 1.
func FitTfidf(corpus []string, maxFeatures int) *TfidfVectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	termCount := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range tokenize(doc) {
			termCount[term]++
			if !seen[term] {
				docFreq[term]++
				seen[term] = true
			}
		}
	}

	terms := make([]string, 0, len(termCount))
	for term := range termCount {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCount[terms[i]] != termCount[terms[j]] {
			return termCount[terms[i]] > termCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return NewTfidfVectorizer(TfidfModel{
		Version:    TfidfFormatVersion,
		Vocabulary: terms,
		IDF:        idf,
		Documents:  len(corpus),
	})
}

// Transform weights each vocabulary term of text by tf*idf and L2 normalizes the row.
// Out-of-vocabulary tokens are dropped; text without known terms yields a zero vector.
func (v *TfidfVectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.model.Vocabulary))
	for _, term := range tokenize(text) {
		if idx, ok := v.index[term]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		vec[i] = tf * v.model.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func (v *TfidfVectorizer) Vocabulary() []string {
	return slices.Clone(v.model.Vocabulary)
}

func (v *TfidfVectorizer) Size() int {
	return len(v.model.Vocabulary)
}

func (v *TfidfVectorizer) Model() TfidfModel {
	return TfidfModel{
		Version:    v.model.Version,
		Vocabulary: slices.Clone(v.model.Vocabulary),
		IDF:        slices.Clone(v.model.IDF),
		Documents:  v.model.Documents,
	}
}

// Fingerprint identifies the vocabulary and idf weights, two vectorizers with the
// same fingerprint produce the same vectors.
func (v *TfidfVectorizer) Fingerprint() string {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for i, term := range v.model.Vocabulary {
		h.Write([]byte(term))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v.model.IDF[i]))
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// tokenize keeps tokens of two or more characters, single letters carry no signal.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := words[:0]
	for _, w := range words {
		if len(w) >= 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Validate checks a decoded model before it is used to build a vectorizer.
func (m TfidfModel) Validate() error {
	if m.Version != TfidfFormatVersion {
		return fmt.Errorf("unsupported vectorizer format version %d", m.Version)
	}
	if len(m.IDF) != len(m.Vocabulary) {
		return fmt.Errorf("vectorizer has %d terms but %d idf weights", len(m.Vocabulary), len(m.IDF))
	}
	for i := 1; i < len(m.Vocabulary); i++ {
		if m.Vocabulary[i-1] >= m.Vocabulary[i] {
			return fmt.Errorf("vectorizer vocabulary is not sorted at term %q", m.Vocabulary[i])
		}
	}
	return nil
}
