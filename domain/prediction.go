package domain

import "fmt"

// Prediction is the outcome of scoring one profile.
// Confidence is a percentage in [0,100]; HasProbability is false when the
// classifier could only return a hard class and Confidence is the fixed fallback.
type Prediction struct {
	Label          Label
	Confidence     float64
	HasProbability bool
}

// Result is the structure handed to the serving layer.
type Result struct {
	Username          string `json:"username,omitempty"`
	Prediction        string `json:"prediction"`
	ConfidencePercent string `json:"confidence_percent"`
}

func (p Prediction) ToResult(username string) Result {
	return Result{
		Username:          username,
		Prediction:        p.Label.String(),
		ConfidencePercent: fmt.Sprintf("%.2f", p.Confidence),
	}
}
