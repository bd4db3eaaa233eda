// internal/app/embed.go
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"offtarget/internal/dataset"
	"offtarget/internal/embedding"
	"offtarget/internal/output"
	"offtarget/internal/writers"
)

func newEmbedCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Fetch sequence embeddings for a validated dataset",
		Long: `Validate a dataset, then post one sequence column to a remote encoding
service in batches and write one embedding per row key. Rows the service
skips, and rows in batches that fail, are written with an empty embedding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runEmbed(cmd.Context())
		},
	}
	fs := cmd.Flags()
	addInputFlags(fs)
	addOutputFlags(fs, output.FormatTSV, "output: tsv | json | jsonl [tsv]")
	fs.String("endpoint", embedding.DefaultEndpoint, "encoding service URL")
	fs.String("column", dataset.ColSgRNAInput, "sequence column to embed: "+strings.Join(dataset.SequenceColumns, " | "))
	fs.Int("batch-size", embedding.DefaultBatchSize, "nominal sequences per request [80]")
	fs.Duration("delay", embedding.DefaultDelay, "pause between requests [4s]")
	fs.String("polymer-type", embedding.DefaultPolymerType, "polymer_type sent to the service [DNA]")
	fs.String("strategy", embedding.DefaultStrategy, "encoding_strategy sent to the service [aptamer]")
	return cmd
}

func (e *env) runEmbed(ctx context.Context) error {
	ec := e.cfg.Embedding
	format := e.cfg.Output.Format
	if !writers.Registered(writers.KindEmbeddings, format) {
		return usageErr(fmt.Errorf("invalid --output %q (want %s)", format, strings.Join(writers.RegisteredFormats(writers.KindEmbeddings), " | ")))
	}
	client, err := embedding.New(ec.Endpoint,
		embedding.WithBatchSize(ec.BatchSize),
		embedding.WithDelay(ec.Delay),
		embedding.WithPolymerType(ec.PolymerType),
		embedding.WithStrategy(ec.Strategy),
		embedding.WithLogger(e.log),
	)
	if err != nil {
		return usageErr(err)
	}

	rows, _, err := e.loadRows(ctx)
	if err != nil {
		return err
	}
	items := make([]embedding.Item, len(rows))
	for i, r := range rows {
		seq, err := r.Sequence(ec.Column)
		if err != nil {
			return usageErr(err)
		}
		items[i] = embedding.Item{ID: r.Key, Sequence: seq}
	}

	res, err := client.Generate(ctx, items)
	if err != nil {
		return runtimeErr(err)
	}
	if missing := res.Len() - res.Processed(); missing > 0 {
		e.log.WarnContext(ctx, "sequences without embedding", "count", missing)
	}
	e.log.InfoContext(ctx, "embeddings finished", "processed", res.Processed(), "rows", len(items), "width", res.Width())

	return runtimeErr(writers.Write(writers.KindEmbeddings, format, e.stdout, output.ToAPIEmbeddings(items, res)))
}
