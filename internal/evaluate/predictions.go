// internal/evaluate/predictions.go
package evaluate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Task selects how Predictions scores itself.
type Task int

const (
	TaskClassification Task = iota
	TaskRegression
)

func (t Task) String() string {
	switch t {
	case TaskClassification:
		return "classification"
	case TaskRegression:
		return "regression"
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

// ParseTask accepts "classification" or "regression".
func ParseTask(s string) (Task, error) {
	switch s {
	case "classification":
		return TaskClassification, nil
	case "regression":
		return TaskRegression, nil
	}
	return 0, fmt.Errorf("unknown task %q (want classification|regression)", s)
}

// logEpsilon clips probabilities before taking logs.
const logEpsilon = 1e-7

// Predictions is a Model over precomputed outputs; the feature matrix is
// ignored. Classification scores binary cross-entropy and accuracy at 0.5;
// regression scores MSE and MAE.
type Predictions struct {
	Task   Task
	Values []float64
}

func (p Predictions) Predict(*mat.Dense) ([]float64, error) {
	return append([]float64(nil), p.Values...), nil
}

func (p Predictions) Evaluate(_ *mat.Dense, y []float64) (loss, metric float64, err error) {
	if len(y) != len(p.Values) {
		return 0, 0, fmt.Errorf("%w: %d predictions, %d targets", ErrShapeMismatch, len(p.Values), len(y))
	}
	if len(y) == 0 {
		return 0, 0, ErrEmpty
	}
	n := float64(len(y))
	if p.Task == TaskRegression {
		mse := math.Pow(floats.Distance(y, p.Values, 2), 2) / n
		return mse, floats.Distance(y, p.Values, 1) / n, nil
	}
	var ce, correct float64
	for i, t := range y {
		q := math.Min(math.Max(p.Values[i], logEpsilon), 1-logEpsilon)
		ce -= t*math.Log(q) + (1-t)*math.Log(1-q)
		pred := 0.0
		if p.Values[i] > 0.5 {
			pred = 1
		}
		if pred == t {
			correct++
		}
	}
	return ce / n, correct / n, nil
}
