package ai

import (
	"math"
	"profile-lab/domain"
)

// ClassMetrics holds the per-class scores of a classification report.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report mirrors a standard classification report for the two classes.
// Confusion is indexed [true][predicted].
type Report struct {
	Real        ClassMetrics `json:"real"`
	Fake        ClassMetrics `json:"fake"`
	Accuracy    float64      `json:"accuracy"`
	MacroAvg    ClassMetrics `json:"macro_avg"`
	WeightedAvg ClassMetrics `json:"weighted_avg"`
	Confusion   [2][2]int    `json:"confusion"`
}

// Evaluate compares predictions against the truth. Undefined ratios (no predicted or
// no true member of a class) are reported as 0.
func Evaluate(truth, predicted []domain.Label) Report {
	var r Report
	n := min(len(truth), len(predicted))
	correct := 0
	for i := 0; i < n; i++ {
		r.Confusion[truth[i]][predicted[i]]++
		if truth[i] == predicted[i] {
			correct++
		}
	}
	if n > 0 {
		r.Accuracy = float64(correct) / float64(n)
	}
	r.Real = classMetrics(r.Confusion, domain.LabelReal)
	r.Fake = classMetrics(r.Confusion, domain.LabelFake)

	total := r.Real.Support + r.Fake.Support
	r.MacroAvg = ClassMetrics{
		Precision: (r.Real.Precision + r.Fake.Precision) / 2,
		Recall:    (r.Real.Recall + r.Fake.Recall) / 2,
		F1:        (r.Real.F1 + r.Fake.F1) / 2,
		Support:   total,
	}
	r.WeightedAvg = ClassMetrics{Support: total}
	if total > 0 {
		wr := float64(r.Real.Support) / float64(total)
		wf := float64(r.Fake.Support) / float64(total)
		r.WeightedAvg.Precision = wr*r.Real.Precision + wf*r.Fake.Precision
		r.WeightedAvg.Recall = wr*r.Real.Recall + wf*r.Fake.Recall
		r.WeightedAvg.F1 = wr*r.Real.F1 + wf*r.Fake.F1
	}
	return r
}

func classMetrics(confusion [2][2]int, class domain.Label) ClassMetrics {
	other := 1 - class
	tp := confusion[class][class]
	fp := confusion[other][class]
	fn := confusion[class][other]
	m := ClassMetrics{
		Precision: ratio(tp, tp+fp),
		Recall:    ratio(tp, tp+fn),
		Support:   tp + fn,
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// MeanStd summarizes the scores of cross-validation folds (population deviation).
func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
