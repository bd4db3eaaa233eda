// internal/encode/composite.go
package encode

// OR encodes a pair as the elementwise logical OR of their one-hot matrices (4×L).
func OR(dna, rna string) (Matrix, error) {
	if err := CheckLengths(dna, rna); err != nil {
		return Matrix{}, err
	}
	d, r := OneHot(dna), OneHot(rna)
	out := NewMatrix(len(Bases), len(dna))
	for i := range out.data {
		if d.data[i] == 1 || r.data[i] == 1 {
			out.data[i] = 1
		}
	}
	return out, nil
}

// Stacked encodes a pair as OneHot(dna) on top of OneHot(rna) (8×L).
func Stacked(dna, rna string) (Matrix, error) {
	if err := CheckLengths(dna, rna); err != nil {
		return Matrix{}, err
	}
	return vstack(OneHot(dna), OneHot(rna)), nil
}
