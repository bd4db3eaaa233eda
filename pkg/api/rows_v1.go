// pkg/api/rows_v1.go
package api

// RowV1 is the stable JSON/JSONL schema for a validated dataset row.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RowV1 struct {
	Key               string            `json:"key"`
	SgRNASequence     string            `json:"sgRNA_sequence"`
	GenomeInput       string            `json:"genome_input"`
	SgRNAInput        string            `json:"sgRNA_input"`
	MismatchPosition  int               `json:"mismatch_position"`
	K562              int               `json:"K562"`
	Jurkat            int               `json:"Jurkat"`
	MeanRelativeGamma *float64          `json:"mean_relative_gamma"` // null when NaN/Inf
	Extra             map[string]string `json:"extra,omitempty"`
}

// EnrichedRowV1 adds the derived feature columns to RowV1.
type EnrichedRowV1 struct {
	RowV1

	EncodedOR        []int8  `json:"encoded_or"`
	EncodedStacked   []int8  `json:"encoded_stacked"`
	Encoded7Channels []int8  `json:"encoded_7channels"`
	GCContent        float64 `json:"gc_content"`
	PAM              string  `json:"pam"`
}

// EmbeddingV1 is one row's embedding; Embedding is null when the service
// returned nothing for the sequence.
type EmbeddingV1 struct {
	Key       string    `json:"key"`
	Sequence  string    `json:"sequence"`
	Embedding []float64 `json:"embedding"`
}
