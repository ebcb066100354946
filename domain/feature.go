package domain

import "strings"

const (
	ColumnIsVerified                  = "is_verified"
	ColumnFollowersCount              = "followers_count"
	ColumnFollowingCount              = "following_count"
	ColumnPostsCount                  = "posts_count"
	ColumnHasProfilePic               = "has_profile_pic"
	ColumnIsBusinessAccount           = "is_business_account"
	ColumnBioLength                   = "bio_length"
	ColumnExternalURL                 = "external_url"
	ColumnFollowersToFollowingRatio   = "followers_to_following_ratio"
	ColumnUsernameDigitCount          = "username_digit_count"
	ColumnHasSuspiciousLink           = "has_suspicious_link"
	ColumnSuspiciousBioWordCount      = "suspicious_bio_word_count"
	ColumnSuspiciousUsernameWordCount = "suspicious_username_word_count"

	// TextColumnPrefix prefixes every vocabulary term of the bio text block.
	TextColumnPrefix = "tfidf_"
)

// StructuralColumns is the canonical order of the non-text block.
var StructuralColumns = []string{
	ColumnIsVerified,
	ColumnFollowersCount,
	ColumnFollowingCount,
	ColumnPostsCount,
	ColumnHasProfilePic,
	ColumnIsBusinessAccount,
	ColumnBioLength,
	ColumnExternalURL,
	ColumnFollowersToFollowingRatio,
	ColumnUsernameDigitCount,
	ColumnHasSuspiciousLink,
	ColumnSuspiciousBioWordCount,
	ColumnSuspiciousUsernameWordCount,
}

func TextColumn(term string) string {
	return TextColumnPrefix + term
}

func IsTextColumn(name string) bool {
	return strings.HasPrefix(name, TextColumnPrefix)
}

// FeatureVector is an ordered sequence of named numeric columns.
type FeatureVector struct {
	Names  []string
	Values []float64
}

func (v FeatureVector) Len() int {
	return len(v.Values)
}

// Get returns the value of the named column and whether it exists.
func (v FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Append returns a new vector with the columns of other added after the receiver's.
func (v FeatureVector) Append(other FeatureVector) FeatureVector {
	names := make([]string, 0, len(v.Names)+len(other.Names))
	values := make([]float64, 0, len(v.Values)+len(other.Values))
	names = append(append(names, v.Names...), other.Names...)
	values = append(append(values, v.Values...), other.Values...)
	return FeatureVector{Names: names, Values: values}
}

func BoolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
