// internal/dataset/columns.go
package dataset

// Input columns.
const (
	ColKey               = "key"
	ColSgRNASequence     = "sgRNA_sequence"
	ColGenomeInput       = "genome_input"
	ColSgRNAInput        = "sgRNA_input"
	ColMismatchPosition  = "mismatch_position"
	ColK562              = "K562"
	ColJurkat            = "Jurkat"
	ColMeanRelativeGamma = "mean_relative_gamma"
)

// Derived columns added by enrichment.
const (
	ColEncodedOR        = "encoded_or"
	ColEncodedStacked   = "encoded_stacked"
	ColEncoded7Channels = "encoded_7channels"
	ColGCContent        = "gc_content"
	ColPAM              = "pam"
)

// Schema lists the required input columns in canonical order.
var Schema = []string{
	ColKey,
	ColSgRNASequence,
	ColGenomeInput,
	ColSgRNAInput,
	ColMismatchPosition,
	ColK562,
	ColJurkat,
	ColMeanRelativeGamma,
}

// SequenceColumns are the columns restricted to the A/T/G/C alphabet.
var SequenceColumns = []string{ColSgRNASequence, ColGenomeInput, ColSgRNAInput}

// EncodedColumns are the flattened matrix columns, in output order.
var EncodedColumns = []string{ColEncodedOR, ColEncodedStacked, ColEncoded7Channels}

// InSchema reports whether name is one of the required input columns.
func InSchema(name string) bool {
	for _, c := range Schema {
		if c == name {
			return true
		}
	}
	return false
}
