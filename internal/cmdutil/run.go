// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"offtarget/internal/dataset"
	"offtarget/internal/pipeline"
)

// RunStream enriches rows and hands each result to send in input order.
// It returns the number of rows sent, the rows skipped under
// cfg.KeepGoing, and the first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	rows []dataset.Row,
	enc pipeline.Encoder,
	send func(dataset.EnrichedRow) error,
) (int, []*pipeline.RowError, error) {
	res, err := pipeline.Enrich(ctx, cfg, rows, enc)
	if err != nil {
		return 0, nil, err
	}
	total := 0
	for _, e := range res.Rows {
		if err := send(e); err != nil {
			return total, res.Failed, err
		}
		total++
	}
	return total, res.Failed, nil
}
