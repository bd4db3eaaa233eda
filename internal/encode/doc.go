// Package encode turns nucleotide sequences and aligned DNA/RNA pairs into
// fixed-shape integer matrices.
//
// Rows follow the base order A, T, G, C. Composite encoders require both
// sequences to have the same length and fail with ErrLengthMismatch
// otherwise; nothing is truncated or padded. Sequences are treated as byte
// strings.
package encode
