// internal/encode/onehot.go
package encode

// Bases is the row order shared by every encoder; it doubles as the
// mismatch-direction priority (A < T < G < C).
const Bases = "ATGC"

var baseIndex [256]int8

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i := 0; i < len(Bases); i++ {
		baseIndex[Bases[i]] = int8(i)
	}
}

// BaseIndex returns the row of b in Bases, or -1 for any other byte.
func BaseIndex(b byte) int { return int(baseIndex[b]) }

// OneHot encodes seq as a 4×len(seq) indicator matrix. Unrecognized
// characters leave their column all zero.
func OneHot(seq string) Matrix {
	m := NewMatrix(len(Bases), len(seq))
	for i := 0; i < len(seq); i++ {
		if r := baseIndex[seq[i]]; r >= 0 {
			m.Set(int(r), i, 1)
		}
	}
	return m
}
