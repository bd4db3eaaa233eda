// internal/writers/rows.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"offtarget/internal/dataset"
	"offtarget/internal/jsonlutil"
	"offtarget/internal/output"
)

// Options controls row output.
type Options struct {
	Format string   // tsv | json | jsonl
	Header bool     // TSV header line
	Extra  []string // non-schema columns to emit, in order
}

// StartRowWriter spins up a writer goroutine for validated rows.
func StartRowWriter(out io.Writer, opt Options, bufSize int) (chan<- dataset.Row, <-chan error) {
	switch opt.Format {
	case output.FormatJSONL:
		return jsonlutil.Start[dataset.Row](out, bufSize,
			func(enc *jsoniter.Encoder, r dataset.Row) error { return enc.Encode(output.ToAPIRow(r)) },
			IsBrokenPipe,
		)
	case output.FormatJSON:
		return collect(bufSize, func(list []dataset.Row) error { return output.WriteRowsJSON(out, list) })
	case output.FormatTSV:
		return streamTSV(out, bufSize, opt.Header, output.Header(opt.Extra, false),
			func(r dataset.Row) string { return output.FormatRowTSV(r, opt.Extra) })
	}
	return failed[dataset.Row](fmt.Errorf("unknown row format %q", opt.Format))
}

// StartEnrichedWriter spins up a writer goroutine for enriched rows.
func StartEnrichedWriter(out io.Writer, opt Options, bufSize int) (chan<- dataset.EnrichedRow, <-chan error) {
	switch opt.Format {
	case output.FormatJSONL:
		return jsonlutil.Start[dataset.EnrichedRow](out, bufSize,
			func(enc *jsoniter.Encoder, e dataset.EnrichedRow) error { return enc.Encode(output.ToAPIEnriched(e)) },
			IsBrokenPipe,
		)
	case output.FormatJSON:
		return collect(bufSize, func(list []dataset.EnrichedRow) error { return output.WriteEnrichedJSON(out, list) })
	case output.FormatTSV:
		return streamTSV(out, bufSize, opt.Header, output.Header(opt.Extra, true),
			func(e dataset.EnrichedRow) string { return output.FormatEnrichedTSV(e, opt.Extra) })
	}
	return failed[dataset.EnrichedRow](fmt.Errorf("unknown enriched format %q", opt.Format))
}

func streamTSV[T any](out io.Writer, bufSize int, header bool, head string, format func(T) string) (chan<- T, <-chan error) {
	in, errCh := channels[T](bufSize)
	go func() {
		bw := bufio.NewWriter(out)
		var err error
		if header {
			_, err = fmt.Fprintln(bw, head)
		}
		for v := range in {
			if err != nil {
				continue
			}
			_, err = fmt.Fprintln(bw, format(v))
		}
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}

// collect buffers every value and hands the list to write once in is closed.
func collect[T any](bufSize int, write func([]T) error) (chan<- T, <-chan error) {
	in, errCh := channels[T](bufSize)
	go func() {
		var buf []T
		for v := range in {
			buf = append(buf, v)
		}
		err := write(buf)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}

// failed returns a writer that drains its input and reports err.
func failed[T any](err error) (chan<- T, <-chan error) {
	in, errCh := channels[T](1)
	go func() {
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

func channels[T any](bufSize int) (chan T, chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	return make(chan T, bufSize), make(chan error, 1)
}
