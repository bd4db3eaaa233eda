// internal/app/metrics.go
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"offtarget/internal/dataset"
	"offtarget/internal/evaluate"
	"offtarget/internal/output"
	"offtarget/internal/writers"
)

// Prediction file columns.
const (
	colYTrue = "y_true"
	colYPred = "y_pred"
)

func newMetricsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Score saved model predictions",
		Long: `Read a predictions file with columns y_true and y_pred and report
classification metrics (y_pred is a probability; accuracy, precision,
recall, F1, F-beta and the confusion matrix) or regression metrics
(MSE, MAE and R²).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runMetrics(cmd.Context())
		},
	}
	fs := cmd.Flags()
	fs.StringP("predictions", "p", "", "predictions file with y_true and y_pred columns, or '-' for stdin")
	fs.String("input-format", "", "predictions format: csv | tsv | jsonl (default from extension)")
	fs.StringP("output", "o", output.FormatText, "output: text | tsv | json | jsonl [text]")
	fs.String("task", evaluate.TaskClassification.String(), "classification | regression")
	fs.Float64("threshold", evaluate.DefaultClassificationOptions.Threshold, "probabilities above this are positive [0.5]")
	fs.Float64("beta", evaluate.DefaultClassificationOptions.Beta, "F-beta weight [2]")
	_ = cmd.MarkFlagRequired("predictions")
	return cmd
}

func (e *env) runMetrics(ctx context.Context) error {
	mc := e.cfg.Metrics
	task, err := evaluate.ParseTask(mc.Task)
	if err != nil {
		return usageErr(err)
	}
	kind := writers.KindClassification
	if task == evaluate.TaskRegression {
		kind = writers.KindRegression
	}
	format := e.cfg.Output.Format
	if !writers.Registered(kind, format) {
		return usageErr(fmt.Errorf("invalid --output %q (want %s)", format, strings.Join(writers.RegisteredFormats(kind), " | ")))
	}

	t, err := dataset.ReadFileColumns(mc.Predictions, e.cfg.Input.Format, []string{colYTrue, colYPred})
	if err != nil {
		return runtimeErr(err)
	}
	yTrue, err := t.Floats(colYTrue)
	if err != nil {
		return runtimeErr(err)
	}
	yPred, err := t.Floats(colYPred)
	if err != nil {
		return runtimeErr(err)
	}
	model := evaluate.Predictions{Task: task, Values: yPred}

	var payload any
	switch task {
	case evaluate.TaskRegression:
		rep, err := evaluate.Regression(model, nil, yTrue)
		if err != nil {
			return runtimeErr(err)
		}
		e.log.InfoContext(ctx, "regression scored", "samples", len(yTrue), "mse", rep.MSE, "r2", rep.R2)
		payload = output.ToAPIRegression(rep)
	default:
		opt := evaluate.ClassificationOptions{Threshold: mc.Threshold, Beta: mc.Beta}
		rep, err := evaluate.Classification(model, nil, yTrue, opt)
		if err != nil {
			return runtimeErr(err)
		}
		e.log.InfoContext(ctx, "classification scored", "samples", len(yTrue), "accuracy", rep.Accuracy, "f1", rep.F1)
		payload = output.ToAPIClassification(rep)
	}
	return runtimeErr(writers.Write(kind, format, e.stdout, payload))
}
