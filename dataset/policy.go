package dataset

import (
	"fmt"
	"profile-lab/domain"
	"profile-lab/errors"
)

// UnknownPolicy decides what happens to records whose account label is unknown.
type UnknownPolicy string

const (
	// UnknownExclude keeps unknown records out of supervised training.
	UnknownExclude UnknownPolicy = "exclude"
	// UnknownAsReal and UnknownAsFake force a label onto unknown records.
	UnknownAsReal UnknownPolicy = "real"
	UnknownAsFake UnknownPolicy = "fake"
)

func ParseUnknownPolicy(raw string) (UnknownPolicy, error) {
	switch p := UnknownPolicy(raw); p {
	case UnknownExclude, UnknownAsReal, UnknownAsFake:
		return p, nil
	case "":
		return UnknownExclude, nil
	default:
		return "", fmt.Errorf("%w: unknown label policy %q", errors.ErrInvalidConfig, raw)
	}
}

// Resolve returns the training target of an account label and whether the record is kept.
func (p UnknownPolicy) Resolve(account domain.AccountLabel) (domain.Label, bool) {
	switch account {
	case domain.AccountFake:
		return domain.LabelFake, true
	case domain.AccountReal:
		return domain.LabelReal, true
	}
	switch p {
	case UnknownAsReal:
		return domain.LabelReal, true
	case UnknownAsFake:
		return domain.LabelFake, true
	default:
		return domain.LabelReal, false
	}
}
