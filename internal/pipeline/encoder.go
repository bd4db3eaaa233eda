// internal/pipeline/encoder.go
package pipeline

import (
	"fmt"

	"offtarget/internal/dataset"
	"offtarget/internal/encode"
	"offtarget/internal/seqstat"
)

// Encoder is the minimal capability the pipeline needs. It must be pure:
// no shared state across rows.
type Encoder interface {
	Encode(row dataset.Row) (dataset.EnrichedRow, error)
}

// Features encodes genome_input (DNA) against sgRNA_input (RNA) and derives
// GC content and PAM from sgRNA_input.
type Features struct {
	PAM encode.PAMWindow
}

// DefaultFeatures marks and extracts a 3-nt PAM at the 3' end.
var DefaultFeatures = Features{PAM: encode.DefaultPAM}

// Encode implements Encoder.
func (f Features) Encode(row dataset.Row) (dataset.EnrichedRow, error) {
	out := dataset.EnrichedRow{Row: row}

	combined, err := encode.OR(row.GenomeInput, row.SgRNAInput)
	if err != nil {
		return out, fmt.Errorf("%s: %w", dataset.ColEncodedOR, err)
	}
	stacked, err := encode.Stacked(row.GenomeInput, row.SgRNAInput)
	if err != nil {
		return out, fmt.Errorf("%s: %w", dataset.ColEncodedStacked, err)
	}
	seven, err := encode.SevenChannels(row.GenomeInput, row.SgRNAInput, f.PAM)
	if err != nil {
		return out, fmt.Errorf("%s: %w", dataset.ColEncoded7Channels, err)
	}

	out.EncodedOR = combined.Flatten()
	out.EncodedStacked = stacked.Flatten()
	out.Encoded7Channels = seven.Flatten()
	out.GCContent = seqstat.GCContent(row.SgRNAInput)
	out.PAM = seqstat.PAM(row.SgRNAInput, f.PAM.Length)
	return out, nil
}
