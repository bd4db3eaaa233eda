package output

import (
	"strings"

	"offtarget/internal/dataset"
)

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Formats lists every supported output format.
var Formats = []string{FormatTSV, FormatJSON, FormatJSONL}

// RowHeader is the canonical header for validated rows.
// Keep this as the single source of truth; all writers should use it.
var RowHeader = strings.Join(dataset.Schema, "\t")

// FeatureHeader is appended to RowHeader (after any extra columns) for enriched rows.
var FeatureHeader = strings.Join([]string{
	dataset.ColEncodedOR,
	dataset.ColEncodedStacked,
	dataset.ColEncoded7Channels,
	dataset.ColGCContent,
	dataset.ColPAM,
}, "\t")

// EmbeddingHeader is the header for embedding TSV output.
const EmbeddingHeader = "key\tsequence\tembedding"

// Header builds the TSV header for rows with the given extra columns.
func Header(extra []string, enriched bool) string {
	parts := []string{RowHeader}
	if len(extra) > 0 {
		parts = append(parts, strings.Join(extra, "\t"))
	}
	if enriched {
		parts = append(parts, FeatureHeader)
	}
	return strings.Join(parts, "\t")
}
