// internal/evaluate/regression.go
package evaluate

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type RegressionResult struct {
	YTrue float64
	YPred float64
}

type RegressionReport struct {
	Loss    float64
	MAE     float64
	MSE     float64
	R2      float64
	Results []RegressionResult
}

// Regression evaluates m as a regressor on (x, y). Loss comes from the
// model; MSE, MAE and R² are recomputed from its predictions.
func Regression(m Model, x *mat.Dense, y []float64) (RegressionReport, error) {
	loss, _, pred, err := run(m, x, y)
	if err != nil {
		return RegressionReport{}, err
	}
	n := float64(len(y))
	rep := RegressionReport{
		Loss:    loss,
		MAE:     floats.Distance(y, pred, 1) / n,
		MSE:     math.Pow(floats.Distance(y, pred, 2), 2) / n,
		R2:      rSquared(pred, y),
		Results: make([]RegressionResult, len(y)),
	}
	for i := range y {
		rep.Results[i] = RegressionResult{YTrue: y[i], YPred: pred[i]}
	}
	return rep, nil
}

// rSquared is the coefficient of determination. Constant targets have no
// variance to explain: a perfect fit scores 1, anything else 0.
func rSquared(pred, y []float64) float64 {
	if stat.Variance(y, nil) == 0 || len(y) < 2 {
		if floats.Equal(pred, y) {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(pred, y, nil)
}
