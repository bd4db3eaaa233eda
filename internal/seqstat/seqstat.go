// Package seqstat computes scalar descriptors of guide and target sequences.
package seqstat

import (
	"offtarget/internal/encode"
)

// CountMismatches returns the number of positions where a and b differ.
// Unequal lengths are an error wrapping encode.ErrLengthMismatch.
func CountMismatches(a, b string) (int, error) {
	if err := encode.CheckLengths(a, b); err != nil {
		return 0, err
	}
	n := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n, nil
}

// GCContent returns the fraction of G and C bases (case-insensitive).
// An empty sequence has GC content 0.
func GCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// PAM returns the last n characters of seq in reverse order, so a guide
// ending in "GGT" yields "TGG". Sequences shorter than n are reversed whole.
func PAM(seq string, n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(seq) {
		n = len(seq)
	}
	tail := seq[len(seq)-n:]
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = tail[n-1-i]
	}
	return string(out)
}
