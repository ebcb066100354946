package training

import (
	"fmt"
	"io"
	"profile-lab/ai"

	"github.com/olekukonko/tablewriter"
)

// WriteReport prints the classification report, the confusion matrix and the top
// importance entries as aligned tables.
func WriteReport(w io.Writer, m Metrics, topFeatures int) {
	r := m.Report
	fmt.Fprintf(w, "train=%d test=%d scale_pos_weight=%.4f\n\n", m.TrainSize, m.TestSize, m.ScalePosWeight)

	report := newTable(w)
	report.SetHeader([]string{"", "precision", "recall", "f1-score", "support"})
	report.Append(classRow("Real", r.Real))
	report.Append(classRow("Fake", r.Fake))
	report.Append([]string{"accuracy", "", "", fmt.Sprintf("%.2f", r.Accuracy), fmt.Sprint(r.MacroAvg.Support)})
	report.Append(classRow("macro avg", r.MacroAvg))
	report.Append(classRow("weighted avg", r.WeightedAvg))
	report.Render()
	fmt.Fprintln(w)

	confusion := newTable(w)
	confusion.SetHeader([]string{"true \\ predicted", "Real", "Fake"})
	confusion.Append([]string{"Real", fmt.Sprint(r.Confusion[0][0]), fmt.Sprint(r.Confusion[0][1])})
	confusion.Append([]string{"Fake", fmt.Sprint(r.Confusion[1][0]), fmt.Sprint(r.Confusion[1][1])})
	confusion.Render()

	if len(m.Importance) > 0 && topFeatures > 0 {
		fmt.Fprintln(w)
		importance := newTable(w)
		importance.SetHeader([]string{"feature", "gain"})
		for _, fi := range m.Importance[:min(topFeatures, len(m.Importance))] {
			importance.Append([]string{fi.Feature, fmt.Sprintf("%.4f", fi.Gain)})
		}
		importance.Render()
	}

	if cv := m.CrossValidation; cv != nil {
		fmt.Fprintf(w, "\n%d-fold cross validation: accuracy %.4f (+/- %.4f), fake f1 %.4f (+/- %.4f)\n",
			cv.Folds, cv.MeanAccuracy, cv.StdAccuracy, cv.MeanFakeF1, cv.StdFakeF1)
	}
}

func classRow(name string, c ai.ClassMetrics) []string {
	return []string{
		name,
		fmt.Sprintf("%.2f", c.Precision),
		fmt.Sprintf("%.2f", c.Recall),
		fmt.Sprintf("%.2f", c.F1),
		fmt.Sprint(c.Support),
	}
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
