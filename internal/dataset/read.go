// internal/dataset/read.go
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Input formats.
const (
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// ErrMissingColumn is returned when a required column is absent from the input.
var ErrMissingColumn = errors.New("missing required column")

// jsonl keeps numbers as json.Number so integers and floats stay distinguishable.
var jsonl = jsoniter.Config{UseNumber: true}.Froze()

// DetectFormat picks an input format from the file name, defaulting to CSV.
func DetectFormat(path string) string {
	name := strings.ToLower(strings.TrimSuffix(path, ".gz"))
	switch filepath.Ext(name) {
	case ".tsv", ".tab", ".txt":
		return FormatTSV
	case ".jsonl", ".ndjson":
		return FormatJSONL
	}
	return FormatCSV
}

// ReadFile loads a table from path ("-" = stdin). An empty format is detected
// from the extension.
func ReadFile(path, format string) (Table, error) {
	return ReadFileColumns(path, format, Schema)
}

// ReadFileColumns is ReadFile for an arbitrary set of required columns.
func ReadFileColumns(path, format string, required []string) (Table, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	rc, err := Open(path)
	if err != nil {
		return Table{}, err
	}
	defer func() { _ = rc.Close() }()

	name := path
	if path == "-" {
		name = "<stdin>"
	}
	return ReadColumns(rc, name, format, required)
}

// Read parses a table in the given format. name is used in error messages.
func Read(r io.Reader, name, format string) (Table, error) {
	return ReadColumns(r, name, format, Schema)
}

// ReadColumns parses a table and checks that every required column is present.
func ReadColumns(r io.Reader, name, format string, required []string) (Table, error) {
	var (
		t   Table
		err error
	)
	switch format {
	case FormatCSV:
		t, err = readDelimited(r, name, ',')
	case FormatTSV:
		t, err = readDelimited(r, name, '\t')
	case FormatJSONL:
		t, err = readJSONL(r, name, required)
	default:
		return Table{}, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return Table{}, err
	}
	if err := checkColumns(t, required); err != nil {
		return Table{}, err
	}
	return t, nil
}

func checkColumns(t Table, required []string) error {
	if len(t.Columns) == 0 && len(t.Records) == 0 {
		return nil
	}
	have := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = struct{}{}
	}
	for _, c := range required {
		if _, ok := have[c]; !ok {
			return fmt.Errorf("%s: %w %q", t.Source, ErrMissingColumn, c)
		}
	}
	return nil
}

func readDelimited(r io.Reader, name string, comma rune) (Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	if comma == '\t' {
		cr.LazyQuotes = true
	}

	t := Table{Source: name}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", name, err)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}
	t.Columns = header

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("%s: %w", name, err)
		}
		line, _ := cr.FieldPos(0)
		if len(fields) != len(header) {
			return Table{}, fmt.Errorf("%s:%d bad field count: got %d, want %d", name, line, len(fields), len(header))
		}
		rec := Record{Line: line, Values: make(map[string]any, len(header))}
		for i, col := range header {
			rec.Values[col] = fields[i]
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func readJSONL(r io.Reader, name string, required []string) (Table, error) {
	t := Table{Source: name}
	seen := make(map[string]struct{})
	known := make(map[string]struct{}, len(required))
	for _, c := range required {
		known[c] = struct{}{}
	}
	var extra []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var obj map[string]any
		if err := jsonl.UnmarshalFromString(line, &obj); err != nil {
			return Table{}, fmt.Errorf("%s:%d bad JSON: %v", name, ln, err)
		}
		if obj == nil {
			return Table{}, fmt.Errorf("%s:%d expected a JSON object", name, ln)
		}
		for k := range obj {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if _, ok := known[k]; !ok {
				extra = append(extra, k)
			}
		}
		t.Records = append(t.Records, Record{Line: ln, Values: obj})
	}
	if err := sc.Err(); err != nil {
		return Table{}, fmt.Errorf("%s: %w", name, err)
	}

	// Object keys are unordered: required columns first, extras sorted.
	for _, c := range required {
		if _, ok := seen[c]; ok {
			t.Columns = append(t.Columns, c)
		}
	}
	sort.Strings(extra)
	t.Columns = append(t.Columns, extra...)
	return t, nil
}
