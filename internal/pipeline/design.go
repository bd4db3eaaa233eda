// internal/pipeline/design.go
package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"offtarget/internal/dataset"
)

// ErrEmptyDesign is returned when a design matrix would have no rows or columns.
var ErrEmptyDesign = errors.New("empty design matrix")

// Design stacks one encoded column of rows into an n×width matrix for model
// consumers. All vectors must share a width.
func Design(rows []dataset.EnrichedRow, col string) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDesign
	}
	first, err := rows[0].Encoded(col)
	if err != nil {
		return nil, err
	}
	width := len(first)
	if width == 0 {
		return nil, fmt.Errorf("%w: %s has zero width", ErrEmptyDesign, col)
	}

	data := make([]float64, 0, len(rows)*width)
	for i, r := range rows {
		v, _ := r.Encoded(col)
		if len(v) != width {
			return nil, fmt.Errorf("%s: row %d (key %q) has width %d, want %d", col, i, r.Key, len(v), width)
		}
		for _, x := range v {
			data = append(data, float64(x))
		}
	}
	return mat.NewDense(len(rows), width, data), nil
}

// Targets extracts a numeric label column.
func Targets(rows []dataset.EnrichedRow, col string) ([]float64, error) {
	var get func(dataset.EnrichedRow) float64
	switch col {
	case dataset.ColMeanRelativeGamma:
		get = func(r dataset.EnrichedRow) float64 { return r.MeanRelativeGamma }
	case dataset.ColK562:
		get = func(r dataset.EnrichedRow) float64 { return float64(r.K562) }
	case dataset.ColJurkat:
		get = func(r dataset.EnrichedRow) float64 { return float64(r.Jurkat) }
	case dataset.ColGCContent:
		get = func(r dataset.EnrichedRow) float64 { return r.GCContent }
	case dataset.ColMismatchPosition:
		get = func(r dataset.EnrichedRow) float64 { return float64(r.MismatchPosition) }
	default:
		return nil, fmt.Errorf("unknown target column %q", col)
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out, nil
}
