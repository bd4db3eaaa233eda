// internal/output/json.go
package output

import (
	"io"
	"math"

	"offtarget/internal/dataset"
	"offtarget/internal/jsonutil"
	"offtarget/pkg/api"
)

// ToAPIRow converts a validated row to the stable wire schema (v1).
func ToAPIRow(r dataset.Row) api.RowV1 {
	v := api.RowV1{
		Key:              r.Key,
		SgRNASequence:    r.SgRNASequence,
		GenomeInput:      r.GenomeInput,
		SgRNAInput:       r.SgRNAInput,
		MismatchPosition: r.MismatchPosition,
		K562:             r.K562,
		Jurkat:           r.Jurkat,
		Extra:            r.Extra,
	}
	if g := r.MeanRelativeGamma; !math.IsNaN(g) && !math.IsInf(g, 0) {
		v.MeanRelativeGamma = &g
	}
	return v
}

// ToAPIEnriched converts an enriched row to the stable wire schema (v1).
func ToAPIEnriched(e dataset.EnrichedRow) api.EnrichedRowV1 {
	return api.EnrichedRowV1{
		RowV1:            ToAPIRow(e.Row),
		EncodedOR:        e.EncodedOR,
		EncodedStacked:   e.EncodedStacked,
		Encoded7Channels: e.Encoded7Channels,
		GCContent:        e.GCContent,
		PAM:              e.PAM,
	}
}

// WriteRowsJSON writes a single JSON array of v1 rows (pretty-indented).
func WriteRowsJSON(w io.Writer, list []dataset.Row) error {
	out := make([]api.RowV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIRow(r))
	}
	return jsonutil.EncodePretty(w, out)
}

// WriteEnrichedJSON writes a single JSON array of v1 enriched rows (pretty-indented).
func WriteEnrichedJSON(w io.Writer, list []dataset.EnrichedRow) error {
	out := make([]api.EnrichedRowV1, 0, len(list))
	for _, e := range list {
		out = append(out, ToAPIEnriched(e))
	}
	return jsonutil.EncodePretty(w, out)
}
