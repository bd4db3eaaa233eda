// internal/encode/errors.go
package encode

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when two sequences that must be aligned
	// have different lengths.
	ErrLengthMismatch = errors.New("sequence length mismatch")

	// ErrUnknownBase is returned when a mismatch direction is requested for a
	// character outside A, T, G, C.
	ErrUnknownBase = errors.New("unknown base")
)

// CheckLengths returns an error wrapping ErrLengthMismatch unless a and b
// have the same length.
func CheckLengths(a, b string) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: dna and rna sequences must have equal length (got %d and %d)", ErrLengthMismatch, len(a), len(b))
	}
	return nil
}
