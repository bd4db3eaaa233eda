// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"offtarget/internal/dataset"
	"offtarget/internal/runutil"
)

// Config controls the enrichment pipeline.
type Config struct {
	Threads   int  // worker goroutines; 0 = all CPUs
	KeepGoing bool // drop failing rows instead of aborting the run
}

// RowError ties an encoding failure to the row that caused it.
type RowError struct {
	Index int
	Key   string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (key %q): %v", e.Index, e.Key, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result is the outcome of Enrich.
type Result struct {
	Rows   []dataset.EnrichedRow
	Failed []*RowError // only populated with Config.KeepGoing
}

type slot struct {
	row dataset.EnrichedRow
	err error
	ok  bool
}

// Enrich encodes every row with enc across cfg.Threads workers. Output order
// is input order regardless of thread count.
//
// By default the first failing row (lowest index) aborts the run and is
// returned as a *RowError. With cfg.KeepGoing failing rows are left out of
// Result.Rows and listed in Result.Failed instead. Cancelling ctx stops the
// feed and returns ctx.Err().
func Enrich(ctx context.Context, cfg Config, rows []dataset.Row, enc Encoder) (Result, error) {
	threads := runutil.EffectiveThreads(cfg.Threads)
	if threads > len(rows) && len(rows) > 0 {
		threads = len(rows)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]slot, len(rows))
	jobs := make(chan int, threads*2)

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failed   bool
	)
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					out, err := enc.Encode(rows[i])
					slots[i] = slot{row: out, err: err, ok: true}
					if err != nil && !cfg.KeepGoing {
						failOnce.Do(func() {
							failed = true
							cancel()
						})
					}
				}
			}
		}()
	}

feed:
	for i := range rows {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if failed {
		// Jobs are received in order and always finished, so the lowest
		// recorded failure is the one a serial run would hit.
		for i := range slots {
			if slots[i].ok && slots[i].err != nil {
				return Result{}, &RowError{Index: i, Key: rows[i].Key, Err: slots[i].err}
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Rows: make([]dataset.EnrichedRow, 0, len(rows))}
	for i := range slots {
		if slots[i].err != nil {
			res.Failed = append(res.Failed, &RowError{Index: i, Key: rows[i].Key, Err: slots[i].err})
			continue
		}
		res.Rows = append(res.Rows, slots[i].row)
	}
	return res, nil
}
