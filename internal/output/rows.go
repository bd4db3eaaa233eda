// internal/output/rows.go
package output

import (
	"strconv"
	"strings"

	"offtarget/internal/dataset"
)

// Int8sCSV joins a vector with commas.
func Int8sCSV(a []int8) string {
	if len(a) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(a) * 2)
	for i, v := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// Float64sCSV joins a vector with commas.
func Float64sCSV(a []float64) string {
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = FormatFloat(v)
	}
	return strings.Join(ss, ",")
}

// FormatFloat renders v with the shortest exact representation.
func FormatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FormatRowTSV returns the schema columns followed by the extra columns (no trailing newline).
func FormatRowTSV(r dataset.Row, extra []string) string {
	f := []string{
		r.Key,
		r.SgRNASequence,
		r.GenomeInput,
		r.SgRNAInput,
		strconv.Itoa(r.MismatchPosition),
		strconv.Itoa(r.K562),
		strconv.Itoa(r.Jurkat),
		FormatFloat(r.MeanRelativeGamma),
	}
	for _, c := range extra {
		f = append(f, sanitize(r.Extra[c]))
	}
	return strings.Join(f, "\t")
}

// FormatEnrichedTSV appends the feature columns to FormatRowTSV.
func FormatEnrichedTSV(e dataset.EnrichedRow, extra []string) string {
	return strings.Join([]string{
		FormatRowTSV(e.Row, extra),
		Int8sCSV(e.EncodedOR),
		Int8sCSV(e.EncodedStacked),
		Int8sCSV(e.Encoded7Channels),
		FormatFloat(e.GCContent),
		e.PAM,
	}, "\t")
}

// sanitize keeps free-text cells from breaking the TSV layout.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\t\r\n") {
		return s
	}
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}
