package features

import (
	"fmt"
	"profile-lab/ai"
	"profile-lab/domain"
	"profile-lab/moderation"
	"unicode/utf8"
)

// Extractor is the single definition of what a feature vector is.
// It never fails on a record: every field of domain.ProfileRecord already holds its default.
type Extractor struct {
	normalizer      *ai.Normalizer
	suspiciousLinks moderation.KeywordMatcher
	bioWords        moderation.KeywordMatcher
	usernameWords   moderation.KeywordMatcher
}

func NewExtractor(normalizer *ai.Normalizer) (*Extractor, error) {
	links, err := moderation.NewKeywordMatcher(moderation.SuspiciousLinkKeywords)
	if err != nil {
		return nil, fmt.Errorf("suspicious link matcher: %w", err)
	}
	bio, err := moderation.NewKeywordMatcher(moderation.SuspiciousBioKeywords)
	if err != nil {
		return nil, fmt.Errorf("suspicious bio matcher: %w", err)
	}
	username, err := moderation.NewKeywordMatcher(moderation.SuspiciousUsernameKeywords)
	if err != nil {
		return nil, fmt.Errorf("suspicious username matcher: %w", err)
	}
	return &Extractor{
		normalizer:      normalizer,
		suspiciousLinks: links,
		bioWords:        bio,
		usernameWords:   username,
	}, nil
}

// Extract returns the structural block in domain.StructuralColumns order.
func (e *Extractor) Extract(r domain.ProfileRecord) domain.FeatureVector {
	values := []float64{
		domain.BoolValue(r.IsVerified),
		float64(r.FollowersCount),
		float64(r.FollowingCount),
		float64(r.PostsCount),
		domain.BoolValue(r.HasProfilePic),
		domain.BoolValue(r.IsBusinessAccount),
		float64(utf8.RuneCountInString(r.Bio)),
		domain.BoolValue(r.HasBioLinks),
		FollowersToFollowingRatio(r.FollowersCount, r.FollowingCount),
		float64(UsernameDigitCount(r.Username)),
		domain.BoolValue(e.HasSuspiciousLink(r.Bio)),
		float64(e.SuspiciousBioWordCount(r.Bio)),
		float64(e.SuspiciousUsernameWordCount(r.Username)),
	}
	names := make([]string, len(domain.StructuralColumns))
	copy(names, domain.StructuralColumns)
	return domain.FeatureVector{Names: names, Values: values}
}

// NormalizedBio is the bio as the text vectorizer sees it.
func (e *Extractor) NormalizedBio(r domain.ProfileRecord) string {
	return e.normalizer.Normalize(r.Bio)
}

// TextBlock vectorizes an already normalized bio with a fitted vectorizer.
func TextBlock(vectorizer *ai.TfidfVectorizer, normalizedBio string) domain.FeatureVector {
	vocabulary := vectorizer.Vocabulary()
	names := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		names[i] = domain.TextColumn(term)
	}
	return domain.FeatureVector{Names: names, Values: vectorizer.Transform(normalizedBio)}
}

// ExtractWithText returns the full vector: structural block then the text block.
func (e *Extractor) ExtractWithText(r domain.ProfileRecord, vectorizer *ai.TfidfVectorizer) domain.FeatureVector {
	return e.Extract(r).Append(TextBlock(vectorizer, e.NormalizedBio(r)))
}

// FollowersToFollowingRatio is followers/(following+1), finite for any non-negative input.
func FollowersToFollowingRatio(followers, following int64) float64 {
	return float64(max(followers, 0)) / float64(max(following, 0)+1)
}

// UsernameDigitCount counts ASCII digits.
func UsernameDigitCount(username string) int {
	count := 0
	for i := 0; i < len(username); i++ {
		if username[i] >= '0' && username[i] <= '9' {
			count++
		}
	}
	return count
}

func (e *Extractor) HasSuspiciousLink(bio string) bool {
	return e.suspiciousLinks.Any(bio)
}

func (e *Extractor) SuspiciousBioWordCount(bio string) int {
	return e.bioWords.Count(bio)
}

func (e *Extractor) SuspiciousUsernameWordCount(username string) int {
	return e.usernameWords.Count(username)
}
