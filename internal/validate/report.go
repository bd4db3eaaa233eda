// internal/validate/report.go
package validate

import (
	"context"
	"log/slog"

	"offtarget/internal/dataset"
)

// Report counts the rows removed by each validation step.
type Report struct {
	Original   int
	Duplicates int

	// InvalidSequence is keyed by sequence column name.
	InvalidSequence map[string]int

	InvalidMismatch int
	InvalidK562     int
	InvalidJurkat   int
	InvalidGamma    int

	Final int
}

// Removed is the total number of dropped rows.
func (r Report) Removed() int { return r.Original - r.Final }

// Check is one named step of a Report.
type Check struct {
	Name    string
	Removed int
}

// Checks lists the steps in execution order.
func (r Report) Checks() []Check {
	out := []Check{{Name: dataset.ColKey, Removed: r.Duplicates}}
	for _, c := range dataset.SequenceColumns {
		out = append(out, Check{Name: c, Removed: r.InvalidSequence[c]})
	}
	return append(out,
		Check{Name: dataset.ColMismatchPosition, Removed: r.InvalidMismatch},
		Check{Name: dataset.ColK562, Removed: r.InvalidK562},
		Check{Name: dataset.ColJurkat, Removed: r.InvalidJurkat},
		Check{Name: dataset.ColMeanRelativeGamma, Removed: r.InvalidGamma},
	)
}

func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("original", r.Original)}
	for _, c := range r.Checks() {
		if c.Removed > 0 {
			attrs = append(attrs, slog.Int(c.Name, c.Removed))
		}
	}
	attrs = append(attrs, slog.Int("removed", r.Removed()), slog.Int("final", r.Final))
	return slog.GroupValue(attrs...)
}

// Log writes one warning per failing check and a summary line.
func (r Report) Log(ctx context.Context, log *slog.Logger) {
	if log == nil {
		return
	}
	for _, c := range r.Checks() {
		if c.Removed == 0 {
			continue
		}
		if c.Name == dataset.ColKey {
			log.WarnContext(ctx, "duplicate keys removed", slog.String("column", c.Name), slog.Int("rows", c.Removed))
			continue
		}
		log.WarnContext(ctx, "invalid values removed", slog.String("column", c.Name), slog.Int("rows", c.Removed))
	}
	log.InfoContext(ctx, "validation finished",
		slog.Int("original", r.Original),
		slog.Int("final", r.Final),
		slog.Int("removed", r.Removed()),
	)
}
