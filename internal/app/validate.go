// internal/app/validate.go
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"offtarget/internal/dataset"
	"offtarget/internal/output"
	"offtarget/internal/runutil"
	"offtarget/internal/validate"
	"offtarget/internal/writers"
)

func newValidateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Drop duplicate and malformed rows and normalize flags",
		Long: `Read a dataset, keep the first row per key, and drop rows whose sequences
leave the A/T/G/C alphabet, whose mismatch_position is not a negative
integer, whose K562/Jurkat flags are unrecognized, or whose
mean_relative_gamma is not a number. A summary is logged to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runValidate(cmd.Context())
		},
	}
	addInputFlags(cmd.Flags())
	addOutputFlags(cmd.Flags(), output.FormatTSV, "output: tsv | json | jsonl [tsv]")
	return cmd
}

func (e *env) runValidate(ctx context.Context) error {
	opt, err := e.rowOptions()
	if err != nil {
		return err
	}
	rows, extra, err := e.loadRows(ctx)
	if err != nil {
		return err
	}
	opt.Extra = extra

	in, errCh := writers.StartRowWriter(e.stdout, opt, bufSize(0))
	return drain(ctx, in, errCh, rows)
}

// rowOptions checks --output for the row writers.
func (e *env) rowOptions() (writers.Options, error) {
	f := e.cfg.Output.Format
	if !slices.Contains(output.Formats, f) {
		return writers.Options{}, usageErr(fmt.Errorf("invalid --output %q (want %s)", f, strings.Join(output.Formats, " | ")))
	}
	return writers.Options{Format: f, Header: !e.cfg.Output.NoHeader}, nil
}

// loadRows reads and validates the configured dataset, logging the report.
func (e *env) loadRows(ctx context.Context) ([]dataset.Row, []string, error) {
	t, err := dataset.ReadFile(e.cfg.Input.Path, e.cfg.Input.Format)
	if err != nil {
		return nil, nil, runtimeErr(err)
	}
	rows, rep := validate.Validate(t)
	rep.Log(ctx, e.log)
	return rows, t.ExtraColumns(), nil
}

// drain sends list to a started writer and waits for it to finish.
func drain[T any](ctx context.Context, in chan<- T, errCh <-chan error, list []T) error {
	var sendErr error
send:
	for _, v := range list {
		select {
		case in <- v:
		case <-ctx.Done():
			sendErr = ctx.Err()
			break send
		}
	}
	close(in)
	if werr := <-errCh; werr != nil {
		return runtimeErr(werr)
	}
	return sendErr
}

// bufSize sizes writer channels the way the worker pool is sized.
func bufSize(threads int) int { return runutil.EffectiveThreads(threads) * 4 }
