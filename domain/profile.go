package domain

import "strings"

type AccountLabel string

const (
	AccountReal    AccountLabel = "real"
	AccountFake    AccountLabel = "fake"
	AccountUnknown AccountLabel = "unknown"
)

// ParseAccountLabel maps the upstream tag to a known label, anything unrecognised is unknown.
func ParseAccountLabel(raw string) AccountLabel {
	switch AccountLabel(strings.ToLower(strings.TrimSpace(raw))) {
	case AccountReal:
		return AccountReal
	case AccountFake:
		return AccountFake
	default:
		return AccountUnknown
	}
}

// Label is the binary training target: 1 for fake, 0 for real.
type Label int

const (
	LabelReal Label = 0
	LabelFake Label = 1
)

// LabelOf derives the target the same way for every caller: "fake" is 1, anything else 0.
// Unknown records should be filtered before reaching this point, see dataset.UnknownPolicy.
func LabelOf(account AccountLabel) Label {
	if account == AccountFake {
		return LabelFake
	}
	return LabelReal
}

func (l Label) String() string {
	if l == LabelFake {
		return "Fake"
	}
	return "Real"
}

// ProfileRecord is one social profile snapshot after the boundary parse.
// Every field already carries its default, internal code never looks up raw keys.
type ProfileRecord struct {
	Username          string
	Bio               string
	IsVerified        bool
	FollowersCount    int64
	FollowingCount    int64
	PostsCount        int64
	HasProfilePic     bool
	IsBusinessAccount bool
	HasBioLinks       bool
	AccountLabel      AccountLabel
}
