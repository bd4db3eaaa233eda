// internal/writers/reports.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"offtarget/internal/jsonutil"
	"offtarget/internal/output"
	"offtarget/pkg/api"
)

func init() {
	Register(KindEmbeddings, output.FormatTSV, writeEmbeddingsTSV)
	Register(KindEmbeddings, output.FormatJSON, writeEmbeddingsJSON)
	Register(KindEmbeddings, output.FormatJSONL, writeEmbeddingsJSONL)

	Register(KindClassification, output.FormatText, writeClassificationText)
	Register(KindClassification, output.FormatTSV, writeClassificationTSV)
	Register(KindClassification, output.FormatJSON, writeJSON[api.ClassificationV1](KindClassification))
	Register(KindClassification, output.FormatJSONL, writeClassificationJSONL)

	Register(KindRegression, output.FormatText, writeRegressionText)
	Register(KindRegression, output.FormatTSV, writeRegressionTSV)
	Register(KindRegression, output.FormatJSON, writeJSON[api.RegressionV1](KindRegression))
	Register(KindRegression, output.FormatJSONL, writeRegressionJSONL)
}

func writeEmbeddingsTSV(w io.Writer, payload any) error {
	list, ok := payload.([]api.EmbeddingV1)
	if !ok {
		return payloadError(KindEmbeddings, payload)
	}
	return writeLines(w, output.EmbeddingHeader, list, output.FormatEmbeddingTSV)
}

func writeEmbeddingsJSON(w io.Writer, payload any) error {
	list, ok := payload.([]api.EmbeddingV1)
	if !ok {
		return payloadError(KindEmbeddings, payload)
	}
	if list == nil {
		list = []api.EmbeddingV1{}
	}
	return jsonutil.EncodePretty(w, list)
}

func writeEmbeddingsJSONL(w io.Writer, payload any) error {
	list, ok := payload.([]api.EmbeddingV1)
	if !ok {
		return payloadError(KindEmbeddings, payload)
	}
	return writeJSONL(w, list)
}

func writeClassificationText(w io.Writer, payload any) error {
	r, ok := payload.(api.ClassificationV1)
	if !ok {
		return payloadError(KindClassification, payload)
	}
	return output.WriteClassificationText(w, r)
}

func writeClassificationTSV(w io.Writer, payload any) error {
	r, ok := payload.(api.ClassificationV1)
	if !ok {
		return payloadError(KindClassification, payload)
	}
	return writeLines(w, output.ClassificationHeader, r.Results, output.FormatClassificationTSV)
}

func writeClassificationJSONL(w io.Writer, payload any) error {
	r, ok := payload.(api.ClassificationV1)
	if !ok {
		return payloadError(KindClassification, payload)
	}
	return writeJSONL(w, r.Results)
}

func writeRegressionText(w io.Writer, payload any) error {
	r, ok := payload.(api.RegressionV1)
	if !ok {
		return payloadError(KindRegression, payload)
	}
	return output.WriteRegressionText(w, r)
}

func writeRegressionTSV(w io.Writer, payload any) error {
	r, ok := payload.(api.RegressionV1)
	if !ok {
		return payloadError(KindRegression, payload)
	}
	return writeLines(w, output.RegressionHeader, r.Results, output.FormatRegressionTSV)
}

func writeRegressionJSONL(w io.Writer, payload any) error {
	r, ok := payload.(api.RegressionV1)
	if !ok {
		return payloadError(KindRegression, payload)
	}
	return writeJSONL(w, r.Results)
}

// writeJSON returns a pretty JSON writer for a single report of type T.
func writeJSON[T any](kind string) WriteFunc {
	return func(w io.Writer, payload any) error {
		v, ok := payload.(T)
		if !ok {
			return payloadError(kind, payload)
		}
		return jsonutil.EncodePretty(w, v)
	}
}

func writeLines[T any](w io.Writer, header string, list []T, format func(T) string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, v := range list {
		if _, err := fmt.Fprintln(bw, format(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeJSONL[T any](w io.Writer, list []T) error {
	bw := bufio.NewWriter(w)
	enc := jsonutil.API.NewEncoder(bw)
	for _, v := range list {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return bw.Flush()
}
