// Package evaluate scores a trained model against held-out data: binary
// classification reports with a confusion matrix and F-scores, and
// regression reports with MSE, MAE and R².
package evaluate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShapeMismatch is returned when features, targets and predictions
	// disagree on the number of rows.
	ErrShapeMismatch = errors.New("row count mismatch")

	// ErrNonBinaryLabel is returned for classification targets other than 0 or 1.
	ErrNonBinaryLabel = errors.New("classification targets must be 0 or 1")

	// ErrEmpty is returned when there is nothing to evaluate.
	ErrEmpty = errors.New("no samples to evaluate")
)

// Model is the boundary to a trained predictor. Evaluate reports the
// model's own loss and primary metric (accuracy for classifiers, MAE for
// regressors).
type Model interface {
	Evaluate(x *mat.Dense, y []float64) (loss, metric float64, err error)
	Predict(x *mat.Dense) ([]float64, error)
}

// run performs the shared shape checks, evaluation and prediction.
// x may be nil for models that carry their own inputs.
func run(m Model, x *mat.Dense, y []float64) (loss, metric float64, pred []float64, err error) {
	if len(y) == 0 {
		return 0, 0, nil, ErrEmpty
	}
	if x != nil {
		if r, _ := x.Dims(); r != len(y) {
			return 0, 0, nil, fmt.Errorf("%w: %d feature rows, %d targets", ErrShapeMismatch, r, len(y))
		}
	}
	loss, metric, err = m.Evaluate(x, y)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("evaluate: %w", err)
	}
	pred, err = m.Predict(x)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("predict: %w", err)
	}
	if len(pred) != len(y) {
		return 0, 0, nil, fmt.Errorf("%w: %d predictions, %d targets", ErrShapeMismatch, len(pred), len(y))
	}
	return loss, metric, pred, nil
}
