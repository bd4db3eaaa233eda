// Package pretty renders a genome/sgRNA pair as an ASCII alignment block
// with mismatch bars and a caret track under the PAM window.
package pretty

import (
	"fmt"
	"strings"

	"offtarget/internal/encode"
	"offtarget/internal/seqstat"
)

// Options control the ASCII rendering.
type Options struct {
	// Glyphs
	ExactGlyph    string // default "|"
	MismatchGlyph string // default "."
	CaretGlyph    string // default "^"

	// Draw the caret track under the PAM window.
	ShowPAM bool
}

var DefaultOptions = Options{
	ExactGlyph:    "|",
	MismatchGlyph: ".",
	CaretGlyph:    "^",
	ShowPAM:       true,
}

const (
	linePrefix = "# "
	dnaLabel   = "genome"
	rnaLabel   = "sgRNA"
)

// Pair renders dna over rna. Both must have the same length.
func Pair(dna, rna string, pam encode.PAMWindow, opt Options) (string, error) {
	mm, err := seqstat.CountMismatches(dna, rna)
	if err != nil {
		return "", err
	}
	opt = withDefaults(opt)

	width := len(dnaLabel)
	pad := strings.Repeat(" ", width+len(" 5'-"))

	var bars strings.Builder
	for i := 0; i < len(dna); i++ {
		if dna[i] == rna[i] {
			bars.WriteString(opt.ExactGlyph)
		} else {
			bars.WriteString(opt.MismatchGlyph)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%-*s 5'-%s-3'\n", linePrefix, width, dnaLabel, dna)
	fmt.Fprintf(&b, "%s%s%s\n", linePrefix, pad, bars.String())
	fmt.Fprintf(&b, "%s%-*s 5'-%s-3'\n", linePrefix, width, rnaLabel, rna)

	if opt.ShowPAM && pam.Location != encode.PAMNone {
		f := caretTrack(len(dna), pam, opt.CaretGlyph)
		if strings.Contains(f, opt.CaretGlyph) {
			fmt.Fprintf(&b, "%s%s%s PAM\n", linePrefix, pad, f)
		}
	}
	fmt.Fprintf(&b, "%smismatches: %d  gc: %.3f  pam: %s\n",
		linePrefix, mm, seqstat.GCContent(rna), seqstat.PAM(rna, pam.Length))
	return b.String(), nil
}

// caretTrack marks the PAM window using the encoder's own F channel so the
// two always agree.
func caretTrack(n int, pam encode.PAMWindow, glyph string) string {
	m, err := encode.SevenChannels(strings.Repeat("A", n), strings.Repeat("A", n), pam)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, v := range m.Row(encode.ChannelF) {
		if v == 1 {
			b.WriteString(glyph)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func withDefaults(o Options) Options {
	if o.ExactGlyph == "" {
		o.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if o.MismatchGlyph == "" {
		o.MismatchGlyph = DefaultOptions.MismatchGlyph
	}
	if o.CaretGlyph == "" {
		o.CaretGlyph = DefaultOptions.CaretGlyph
	}
	return o
}
