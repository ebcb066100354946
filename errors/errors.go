package errors

import (
	"errors"
	"fmt"
)

var (
	ErrTrainingDataEmpty   = fmt.Errorf("no usable labeled records to train on")
	ErrSingleClass         = fmt.Errorf("training data must contain both real and fake records")
	ErrArtifactUnavailable = fmt.Errorf("model unavailable")
	ErrVectorizerMismatch  = fmt.Errorf("vectorizer does not match the classifier feature set")
	ErrPredictionFailure   = fmt.Errorf("prediction failed")
	ErrInvalidConfig       = fmt.Errorf("invalid configuration")
	ErrInvalidProfile      = fmt.Errorf("profile payload is not a JSON object")
)

// IsRetrainNeeded reports whether err can only be fixed by producing a new artifact set,
// as opposed to retrying the same call later.
func IsRetrainNeeded(err error) bool {
	return errors.Is(err, ErrVectorizerMismatch) || errors.Is(err, ErrArtifactUnavailable)
}
