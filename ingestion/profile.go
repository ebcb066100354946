package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"profile-lab/domain"
	"profile-lab/errors"
	"strconv"
	"strings"
)

// Parse turns one scraped payload into a ProfileRecord.
// It accepts the flat Instagram-like shape and the nested X/Twitter tweet-result shape.
// The only failure is a payload that is not a JSON object; missing or malformed
// fields fall back to their zero defaults.
func Parse(data []byte) (domain.ProfileRecord, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return domain.ProfileRecord{}, fmt.Errorf("%w: %v", errors.ErrInvalidProfile, err)
	}
	if raw == nil {
		return domain.ProfileRecord{}, errors.ErrInvalidProfile
	}
	if user, ok := xUser(raw); ok {
		return fromXUser(user, raw), nil
	}
	return FromMap(raw), nil
}

// FromMap builds a record from a flat key-value payload.
func FromMap(raw map[string]any) domain.ProfileRecord {
	return domain.ProfileRecord{
		Username:          toText(raw["username"]),
		Bio:               toString(raw["bio"]),
		IsVerified:        toBool(raw["is_verified"]),
		FollowersCount:    toCount(raw["followers_count"]),
		FollowingCount:    toCount(raw["following_count"]),
		PostsCount:        toCount(raw["media_count"]),
		HasProfilePic:     isPresent(raw["profile_pic_url"]),
		IsBusinessAccount: toBool(raw["is_business_account"]),
		HasBioLinks:       isPresent(raw["bio_links"]),
		AccountLabel:      domain.ParseAccountLabel(toString(raw["account_label"])),
	}
}

// xUser walks data.tweetResult.result.core.user_results.result and returns it
// when it is a public user carrying a legacy block.
func xUser(raw map[string]any) (map[string]any, bool) {
	node := any(raw)
	for _, key := range []string{"data", "tweetResult", "result", "core", "user_results", "result"} {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node = m[key]
	}
	user, ok := node.(map[string]any)
	if !ok || toString(user["__typename"]) != "User" {
		return nil, false
	}
	if _, ok := user["legacy"].(map[string]any); !ok {
		return nil, false
	}
	return user, true
}

func fromXUser(user map[string]any, raw map[string]any) domain.ProfileRecord {
	legacy := user["legacy"].(map[string]any)
	defaultImage := true
	if v, ok := legacy["default_profile_image"].(bool); ok {
		defaultImage = v
	}
	return domain.ProfileRecord{
		Username:       toText(legacy["screen_name"]),
		Bio:            toString(legacy["description"]),
		IsVerified:     toBool(user["is_blue_verified"]),
		FollowersCount: toCount(legacy["followers_count"]),
		FollowingCount: toCount(legacy["friends_count"]),
		PostsCount:     toCount(legacy["statuses_count"]),
		HasProfilePic:  !defaultImage,
		AccountLabel:   domain.ParseAccountLabel(toString(raw["account_label"])),
	}
}

// toString keeps strings only, any other type is treated as empty text.
func toString(v any) string {
	s, _ := v.(string)
	return s
}

// toText coerces scalars to their string form, used for usernames that may arrive as numbers.
func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

// toCount returns a non-negative integer count. Negative, non-numeric and
// out of int64 range values collapse to 0.
func toCount(v any) int64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return max(i, 0)
		}
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = t
	case int:
		return max(int64(t), 0)
	case int64:
		return max(t, 0)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	// float64(math.MaxInt64) is 2^63, which int64 cannot hold.
	if math.IsNaN(f) || f <= 0 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// isPresent mirrors truthiness of an upstream field: non-empty strings, lists and maps.
func isPresent(v any) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case bool:
		return t
	default:
		return false
	}
}
