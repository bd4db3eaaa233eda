// internal/encode/seven.go
package encode

import (
	"fmt"
	"strings"
)

// Seven-channel row layout.
const (
	ChannelA = iota
	ChannelT
	ChannelG
	ChannelC
	ChannelR // mismatch where the DNA base has the higher priority
	ChannelD // mismatch where the RNA base has the higher priority
	ChannelF // PAM window
	SevenChannelRows
)

// PAMLocation selects which end of the sequence the F channel marks.
type PAMLocation int

const (
	PAMNone PAMLocation = iota
	PAMFirst
	PAMLast
)

func (l PAMLocation) String() string {
	switch l {
	case PAMFirst:
		return "first"
	case PAMLast:
		return "last"
	}
	return "none"
}

// ParsePAMLocation accepts "first", "last" or "none" (case-insensitive).
func ParsePAMLocation(s string) (PAMLocation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return PAMFirst, nil
	case "last":
		return PAMLast, nil
	case "none", "":
		return PAMNone, nil
	}
	return PAMNone, fmt.Errorf("invalid PAM location %q (want first, last or none)", s)
}

// PAMWindow is the fixed-width region marked in the F channel.
type PAMWindow struct {
	Location PAMLocation
	Length   int
}

// DefaultPAM marks the final three positions.
var DefaultPAM = PAMWindow{Location: PAMLast, Length: 3}

// span returns the [start, end) range the window covers in a sequence of
// length n. Windows longer than n clamp to n; non-positive lengths are empty.
func (w PAMWindow) span(n int) (int, int) {
	k := w.Length
	if k <= 0 {
		return 0, 0
	}
	if k > n {
		k = n
	}
	switch w.Location {
	case PAMFirst:
		return 0, k
	case PAMLast:
		return n - k, n
	}
	return 0, 0
}

// SevenChannels encodes a DNA/RNA pair as a 7×L mismatch-aware matrix with
// rows [A, T, G, C, R, D, F].
//
// For base rows, -1 means both sequences carry the base, +1 means exactly
// one does, 0 means neither. R and D mark the direction of a mismatch using
// the priority A < T < G < C: D is set when the DNA base ranks lower than
// the RNA base, R otherwise. F marks the PAM window.
func SevenChannels(dna, rna string, pam PAMWindow) (Matrix, error) {
	if err := CheckLengths(dna, rna); err != nil {
		return Matrix{}, err
	}
	n := len(dna)
	d, r := OneHot(dna), OneHot(rna)
	out := NewMatrix(SevenChannelRows, n)

	for b := 0; b < len(Bases); b++ {
		dr, rr, ch := d.Row(b), r.Row(b), out.Row(b)
		for i := 0; i < n; i++ {
			switch {
			case dr[i] == 1 && rr[i] == 1:
				ch[i] = -1
			case dr[i] != rr[i]:
				ch[i] = 1
			}
		}
	}

	for i := 0; i < n; i++ {
		if dna[i] == rna[i] {
			continue
		}
		pd, pr := BaseIndex(dna[i]), BaseIndex(rna[i])
		if pd < 0 || pr < 0 {
			return Matrix{}, fmt.Errorf("%w at position %d (%q vs %q)", ErrUnknownBase, i, dna[i], rna[i])
		}
		if pd < pr {
			out.Set(ChannelD, i, 1)
		} else {
			out.Set(ChannelR, i, 1)
		}
	}

	start, end := pam.span(n)
	f := out.Row(ChannelF)
	for i := start; i < end; i++ {
		f[i] = 1
	}
	return out, nil
}
