// internal/embedding/result.go
package embedding

// Entry is one row's outcome. OK is false when the service returned nothing
// for the sequence or its batch failed.
type Entry struct {
	ID     string
	Vector []float64
	OK     bool
}

// Result is an ordered mapping from row ID to an optional embedding,
// in the order the IDs were first recorded.
type Result struct {
	entries []Entry
	index   map[string]int
}

func newResult(n int) *Result {
	return &Result{entries: make([]Entry, 0, n), index: make(map[string]int, n)}
}

// set records id; a repeated id overwrites its earlier entry in place.
func (r *Result) set(id string, v []float64, ok bool) {
	if i, seen := r.index[id]; seen {
		r.entries[i] = Entry{ID: id, Vector: v, OK: ok}
		return
	}
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, Entry{ID: id, Vector: v, OK: ok})
}

// Len is the number of recorded IDs.
func (r *Result) Len() int { return len(r.entries) }

// Get returns the embedding for id; ok is false when absent.
func (r *Result) Get(id string) ([]float64, bool) {
	i, seen := r.index[id]
	if !seen || !r.entries[i].OK {
		return nil, false
	}
	return r.entries[i].Vector, true
}

// Entries returns the recorded entries in order.
func (r *Result) Entries() []Entry { return append([]Entry(nil), r.entries...) }

// Processed counts entries that carry an embedding.
func (r *Result) Processed() int {
	n := 0
	for _, e := range r.entries {
		if e.OK {
			n++
		}
	}
	return n
}

// Align re-indexes the result onto ids; unknown or absent IDs map to nil.
func (r *Result) Align(ids []string) [][]float64 {
	out := make([][]float64, len(ids))
	for i, id := range ids {
		if v, ok := r.Get(id); ok {
			out[i] = v
		}
	}
	return out
}

// Width is the embedding length shared by present entries (0 when none).
func (r *Result) Width() int {
	for _, e := range r.entries {
		if e.OK {
			return len(e.Vector)
		}
	}
	return 0
}
