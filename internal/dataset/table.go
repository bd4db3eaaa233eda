// internal/dataset/table.go
package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one raw input row. Values hold string for delimited input and
// string | bool | json.Number | nil for JSONL input.
type Record struct {
	Line   int
	Values map[string]any
}

// Get returns the raw value of a column (nil when absent).
func (r Record) Get(col string) any { return r.Values[col] }

// Table is the raw tabular input, before validation.
type Table struct {
	Source  string
	Columns []string
	Records []Record
}

// ExtraColumns returns the non-schema columns in input order.
func (t Table) ExtraColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if !InSchema(c) {
			out = append(out, c)
		}
	}
	return out
}

// Row is a validated dataset entry.
type Row struct {
	Key               string
	SgRNASequence     string
	GenomeInput       string
	SgRNAInput        string
	MismatchPosition  int
	K562              int
	Jurkat            int
	MeanRelativeGamma float64

	// Extra carries non-schema columns through unchanged.
	Extra map[string]string
}

// Sequence returns the value of one of SequenceColumns.
func (r Row) Sequence(col string) (string, error) {
	switch col {
	case ColSgRNASequence:
		return r.SgRNASequence, nil
	case ColGenomeInput:
		return r.GenomeInput, nil
	case ColSgRNAInput:
		return r.SgRNAInput, nil
	}
	return "", fmt.Errorf("unknown sequence column %q", col)
}

// EnrichedRow is a Row plus derived features.
type EnrichedRow struct {
	Row

	EncodedOR        []int8
	EncodedStacked   []int8
	Encoded7Channels []int8
	GCContent        float64
	PAM              string
}

// Encoded returns the flattened vector stored under one of EncodedColumns.
func (e EnrichedRow) Encoded(col string) ([]int8, error) {
	switch col {
	case ColEncodedOR:
		return e.EncodedOR, nil
	case ColEncodedStacked:
		return e.EncodedStacked, nil
	case ColEncoded7Channels:
		return e.Encoded7Channels, nil
	}
	return nil, fmt.Errorf("unknown encoded column %q", col)
}

// Text renders a raw value the way it is carried in Extra and keys.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// Floats parses every value of col as a number. Errors name the record's
// source line.
func (t Table) Floats(col string) ([]float64, error) {
	out := make([]float64, len(t.Records))
	for i, rec := range t.Records {
		s := strings.TrimSpace(Text(rec.Get(col)))
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d %s: not a number: %q", t.Source, rec.Line, col, s)
		}
		out[i] = v
	}
	return out, nil
}
