// internal/output/metrics.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"offtarget/internal/embedding"
	"offtarget/internal/evaluate"
	"offtarget/pkg/api"
)

// FormatText is the human-readable metrics summary.
const FormatText = "text"

// Per-sample TSV headers for metrics reports.
var (
	ClassificationHeader = strings.Join([]string{"y_test", "y_pred_proba", "y_pred", "prediction_is_true"}, "\t")
	RegressionHeader     = strings.Join([]string{"y_test", "y_pred"}, "\t")
)

func ToAPIClassification(r evaluate.ClassificationReport) api.ClassificationV1 {
	v := api.ClassificationV1{
		Loss:      r.Loss,
		Accuracy:  r.Accuracy,
		Precision: r.Precision,
		Recall:    r.Recall,
		F1:        r.F1,
		FBeta:     r.FBeta,
		Beta:      r.Beta,
		Threshold: r.Threshold,
		Confusion: api.ConfusionV1{TN: r.Confusion.TN, FP: r.Confusion.FP, FN: r.Confusion.FN, TP: r.Confusion.TP},
		Results:   make([]api.ClassificationResultV1, len(r.Results)),
	}
	for i, s := range r.Results {
		v.Results[i] = api.ClassificationResultV1{YTrue: s.YTrue, Proba: s.Proba, YPred: s.YPred, Correct: s.Correct}
	}
	return v
}

func ToAPIRegression(r evaluate.RegressionReport) api.RegressionV1 {
	v := api.RegressionV1{
		Loss:    r.Loss,
		MAE:     r.MAE,
		MSE:     r.MSE,
		R2:      r.R2,
		Results: make([]api.RegressionResultV1, len(r.Results)),
	}
	for i, s := range r.Results {
		v.Results[i] = api.RegressionResultV1{YTrue: s.YTrue, YPred: s.YPred}
	}
	return v
}

// ToAPIEmbeddings lays res out in the order of items.
func ToAPIEmbeddings(items []embedding.Item, res *embedding.Result) []api.EmbeddingV1 {
	out := make([]api.EmbeddingV1, len(items))
	for i, it := range items {
		out[i] = api.EmbeddingV1{Key: it.ID, Sequence: it.Sequence}
		if v, ok := res.Get(it.ID); ok {
			out[i].Embedding = v
		}
	}
	return out
}

// FormatEmbeddingTSV renders one embedding row; absent vectors are an empty cell.
func FormatEmbeddingTSV(e api.EmbeddingV1) string {
	return sanitize(e.Key) + "\t" + e.Sequence + "\t" + Float64sCSV(e.Embedding)
}

func FormatClassificationTSV(r api.ClassificationResultV1) string {
	return strings.Join([]string{
		strconv.Itoa(r.YTrue),
		FormatFloat(r.Proba),
		strconv.Itoa(r.YPred),
		strconv.FormatBool(r.Correct),
	}, "\t")
}

func FormatRegressionTSV(r api.RegressionResultV1) string {
	return FormatFloat(r.YTrue) + "\t" + FormatFloat(r.YPred)
}

// WriteClassificationText prints the summary metrics and the annotated
// confusion matrix.
func WriteClassificationText(w io.Writer, r api.ClassificationV1) error {
	c := r.Confusion
	_, err := fmt.Fprintf(w,
		"Test Loss: %.4f\n"+
			"Test Accuracy: %.4f\n"+
			"Precision: %.4f\n"+
			"Recall: %.4f\n"+
			"F1 Score: %.4f\n"+
			"F-beta Score (beta=%s): %.4f\n"+
			"Threshold: %s\n"+
			"\nConfusion Matrix:\n"+
			"TN (True Negative): %d\tFP (False Positive): %d\n"+
			"FN (False Negative): %d\tTP (True Positive): %d\n",
		r.Loss, r.Accuracy, r.Precision, r.Recall, r.F1,
		FormatFloat(r.Beta), r.FBeta, FormatFloat(r.Threshold),
		c.TN, c.FP, c.FN, c.TP)
	return err
}

func WriteRegressionText(w io.Writer, r api.RegressionV1) error {
	_, err := fmt.Fprintf(w,
		"Test Loss: %.4f\nMean Squared Error: %.4f\nMean Absolute Error: %.4f\nR-squared: %.4f\n",
		r.Loss, r.MSE, r.MAE, r.R2)
	return err
}
