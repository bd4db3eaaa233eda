// internal/app/enrich.go
package app

import (
	"context"

	"github.com/spf13/cobra"

	"offtarget/internal/cmdutil"
	"offtarget/internal/dataset"
	"offtarget/internal/output"
	"offtarget/internal/pipeline"
	"offtarget/internal/writers"
)

func newEnrichCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Validate a dataset and append encoded features",
		Long: `Validate a dataset, then derive per row (genome_input as DNA, sgRNA_input
as RNA): encoded_or (4×L), encoded_stacked (8×L), encoded_7channels (7×L),
all flattened row-major, plus gc_content and pam of sgRNA_input.

Rows whose DNA and RNA lengths differ abort the run unless --keep-going
is set, in which case they are skipped and logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runEnrich(cmd.Context())
		},
	}
	fs := cmd.Flags()
	addInputFlags(fs)
	addOutputFlags(fs, output.FormatTSV, "output: tsv | json | jsonl [tsv]")
	addFeatureFlags(fs)
	fs.IntP("threads", "t", 0, "worker threads (0=all CPUs) [0]")
	fs.Bool("keep-going", false, "skip rows that fail to encode instead of aborting [false]")
	return cmd
}

func (e *env) runEnrich(ctx context.Context) error {
	opt, err := e.rowOptions()
	if err != nil {
		return err
	}
	win, err := e.cfg.PAMWindow()
	if err != nil {
		return usageErr(err)
	}
	rows, extra, err := e.loadRows(ctx)
	if err != nil {
		return err
	}
	opt.Extra = extra

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bs := bufSize(e.cfg.Run.Threads)
	in, errCh := writers.StartEnrichedWriter(e.stdout, opt, bs)

	total, skipped, perr := cmdutil.RunStream(ctx,
		pipeline.Config{Threads: e.cfg.Run.Threads, KeepGoing: e.cfg.Run.KeepGoing},
		rows,
		pipeline.Features{PAM: win},
		func(r dataset.EnrichedRow) error {
			select {
			case in <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(in)

	if werr := <-errCh; werr != nil {
		return runtimeErr(werr)
	}
	for _, re := range skipped {
		e.log.WarnContext(ctx, "row skipped", "key", re.Key, "error", re.Err)
	}
	if perr != nil {
		return runtimeErr(perr)
	}
	e.log.InfoContext(ctx, "enrichment finished", "rows", total, "skipped", len(skipped))
	return nil
}
