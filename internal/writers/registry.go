// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// WriteFunc serializes a whole payload.
type WriteFunc func(w io.Writer, payload any) error

// Payload kinds with a writer registry.
const (
	KindEmbeddings     = "embeddings"
	KindClassification = "classification"
	KindRegression     = "regression"
)

// registry maps kind → format → writer. Populated from init() blocks.
var registry = map[string]map[string]WriteFunc{}

// Register adds a writer (idempotent last-wins).
func Register(kind, format string, fn WriteFunc) {
	m, ok := registry[kind]
	if !ok {
		m = map[string]WriteFunc{}
		registry[kind] = m
	}
	m[format] = fn
}

// Write dispatches payload to the writer registered for kind and format.
func Write(kind, format string, w io.Writer, payload any) error {
	fn, ok := registry[kind][format]
	if !ok {
		return fmt.Errorf("unknown %s format %q (no writer registered)", kind, format)
	}
	return fn(w, payload)
}

// RegisteredFormats lists the formats available for kind, sorted.
func RegisteredFormats(kind string) []string {
	var out []string
	for f := range registry[kind] {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func payloadError(kind string, payload any) error {
	return fmt.Errorf("%s writer: unexpected payload %T", kind, payload)
}

// Registered reports whether a writer exists for kind and format.
func Registered(kind, format string) bool {
	_, ok := registry[kind][format]
	return ok
}
