// Package validate filters a raw dataset table down to rows that satisfy
// the schema invariants and coerces the surviving cells to their types.
//
// Steps run in a fixed order: key uniqueness (keep first), sequence
// alphabet, mismatch_position, K562, Jurkat, mean_relative_gamma. Each step
// only sees the rows that survived the previous ones. Invalid rows are
// dropped, never repaired.
package validate

import (
	"offtarget/internal/dataset"
)

// candidate is a row under validation: the raw record plus fields typed so far.
type candidate struct {
	rec dataset.Record
	row dataset.Row
}

type step func(c *candidate) bool

// Validate returns the rows of t that pass every check, in input order, and
// a report of how many rows each check removed. t is not modified.
func Validate(t dataset.Table) ([]dataset.Row, Report) {
	rep := Report{
		Original:        len(t.Records),
		InvalidSequence: make(map[string]int, len(dataset.SequenceColumns)),
	}

	cands := dedupe(t.Records, &rep)

	for _, col := range dataset.SequenceColumns {
		col := col
		var n int
		cands, n = filter(cands, func(c *candidate) bool { return onlyATGC(c.rec.Get(col)) })
		rep.InvalidSequence[col] = n
	}

	cands, rep.InvalidMismatch = filter(cands, func(c *candidate) bool {
		v, ok := toInt(c.rec.Get(dataset.ColMismatchPosition))
		if !ok || v >= 0 {
			return false
		}
		c.row.MismatchPosition = v
		return true
	})
	cands, rep.InvalidK562 = filter(cands, flagStep(dataset.ColK562, func(r *dataset.Row) *int { return &r.K562 }))
	cands, rep.InvalidJurkat = filter(cands, flagStep(dataset.ColJurkat, func(r *dataset.Row) *int { return &r.Jurkat }))
	cands, rep.InvalidGamma = filter(cands, func(c *candidate) bool {
		v, ok := toFloat(c.rec.Get(dataset.ColMeanRelativeGamma))
		c.row.MeanRelativeGamma = v
		return ok
	})

	extra := t.ExtraColumns()
	rows := make([]dataset.Row, 0, len(cands))
	for _, c := range cands {
		r := c.row
		r.SgRNASequence = c.rec.Get(dataset.ColSgRNASequence).(string)
		r.GenomeInput = c.rec.Get(dataset.ColGenomeInput).(string)
		r.SgRNAInput = c.rec.Get(dataset.ColSgRNAInput).(string)
		if len(extra) > 0 {
			r.Extra = make(map[string]string, len(extra))
			for _, col := range extra {
				r.Extra[col] = dataset.Text(c.rec.Get(col))
			}
		}
		rows = append(rows, r)
	}
	rep.Final = len(rows)
	return rows, rep
}

// dedupe keeps the first record seen for each key.
func dedupe(recs []dataset.Record, rep *Report) []candidate {
	seen := make(map[string]struct{}, len(recs))
	out := make([]candidate, 0, len(recs))
	for _, rec := range recs {
		key := dataset.Text(rec.Get(dataset.ColKey))
		if _, dup := seen[key]; dup {
			rep.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate{rec: rec, row: dataset.Row{Key: key}})
	}
	return out
}

// filter keeps candidates for which keep returns true and reports how many
// were removed. It filters in place.
func filter(cands []candidate, keep step) ([]candidate, int) {
	kept := cands[:0]
	for i := range cands {
		if keep(&cands[i]) {
			kept = append(kept, cands[i])
		}
	}
	return kept, len(cands) - len(kept)
}

func flagStep(col string, field func(*dataset.Row) *int) step {
	return func(c *candidate) bool {
		v, ok := ParseFlag(c.rec.Get(col)).Int()
		if !ok {
			return false
		}
		*field(&c.row) = v
		return true
	}
}
