package writers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offtarget/internal/dataset"
	"offtarget/internal/jsonutil"
	"offtarget/internal/output"
	"offtarget/pkg/api"
)

func sampleRows() []dataset.Row {
	return []dataset.Row{
		{Key: "a", SgRNASequence: "AT", GenomeInput: "AT", SgRNAInput: "AG", MismatchPosition: -1, K562: 1, MeanRelativeGamma: 0.5,
			Extra: map[string]string{"note": "x"}},
		{Key: "b", SgRNASequence: "GC", GenomeInput: "GC", SgRNAInput: "GC", MismatchPosition: -2, Jurkat: 1, MeanRelativeGamma: -1},
	}
}

func feed[T any](in chan<- T, list []T) {
	for _, v := range list {
		in <- v
	}
	close(in)
}

func TestRowWriterTSV(t *testing.T) {
	var b bytes.Buffer
	in, done := StartRowWriter(&b, Options{Format: output.FormatTSV, Header: true, Extra: []string{"note"}}, 4)
	feed(in, sampleRows())
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, output.Header([]string{"note"}, false), lines[0])
	assert.Equal(t, "a\tAT\tAT\tAG\t-1\t1\t0\t0.5\tx", lines[1])
	assert.Equal(t, "b\tGC\tGC\tGC\t-2\t0\t1\t-1\t", lines[2])
}

func TestRowWriterTSVNoHeader(t *testing.T) {
	var b bytes.Buffer
	in, done := StartRowWriter(&b, Options{Format: output.FormatTSV}, 1)
	feed(in, sampleRows()[:1])
	require.NoError(t, <-done)
	assert.Equal(t, "a\tAT\tAT\tAG\t-1\t1\t0\t0.5\n", b.String())
}

func TestRowWriterJSONL(t *testing.T) {
	var b bytes.Buffer
	in, done := StartRowWriter(&b, Options{Format: output.FormatJSONL}, 1)
	feed(in, sampleRows())
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	var got api.RowV1
	require.NoError(t, jsonutil.API.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, "b", got.Key)
	assert.Equal(t, 1, got.Jurkat)
	require.NotNil(t, got.MeanRelativeGamma)
	assert.Equal(t, -1.0, *got.MeanRelativeGamma)
}

func TestEnrichedWriterJSON(t *testing.T) {
	var b bytes.Buffer
	in, done := StartEnrichedWriter(&b, Options{Format: output.FormatJSON}, 1)
	feed(in, []dataset.EnrichedRow{{
		Row:       sampleRows()[0],
		EncodedOR: []int8{1, 0, 0, 0}, EncodedStacked: []int8{}, Encoded7Channels: []int8{-1},
		GCContent: 0.5, PAM: "GA",
	}})
	require.NoError(t, <-done)

	var got []api.EnrichedRowV1
	require.NoError(t, jsonutil.API.Unmarshal(b.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []int8{1, 0, 0, 0}, got[0].EncodedOR)
	assert.Equal(t, []int8{-1}, got[0].Encoded7Channels)
	assert.Equal(t, "GA", got[0].PAM)
	assert.Equal(t, "a", got[0].Key)
}

func TestEnrichedWriterJSONEmpty(t *testing.T) {
	var b bytes.Buffer
	in, done := StartEnrichedWriter(&b, Options{Format: output.FormatJSON}, 1)
	close(in)
	require.NoError(t, <-done)
	assert.JSONEq(t, "[]", b.String())
}

func TestEmbeddingsTSVAbsentIsEmptyCell(t *testing.T) {
	var b bytes.Buffer
	list := []api.EmbeddingV1{
		{Key: "a", Sequence: "AC", Embedding: []float64{0.5, 2}},
		{Key: "b", Sequence: "GG"},
	}
	require.NoError(t, Write(KindEmbeddings, output.FormatTSV, &b, list))
	assert.Equal(t, "key\tsequence\tembedding\na\tAC\t0.5,2\nb\tGG\t\n", b.String())
}

func TestEmbeddingsJSONLNull(t *testing.T) {
	var b bytes.Buffer
	list := []api.EmbeddingV1{{Key: "b", Sequence: "GG"}}
	require.NoError(t, Write(KindEmbeddings, output.FormatJSONL, &b, list))
	assert.Equal(t, `{"key":"b","sequence":"GG","embedding":null}`+"\n", b.String())
}

func TestClassificationText(t *testing.T) {
	var b bytes.Buffer
	r := api.ClassificationV1{
		Loss: 0.25, Accuracy: 0.75, Precision: 1, Recall: 0.5, F1: 2.0 / 3, FBeta: 5.0 / 9, Beta: 2, Threshold: 0.5,
		Confusion: api.ConfusionV1{TN: 2, FP: 0, FN: 1, TP: 1},
	}
	require.NoError(t, Write(KindClassification, output.FormatText, &b, r))
	s := b.String()
	assert.Contains(t, s, "Test Accuracy: 0.7500\n")
	assert.Contains(t, s, "F-beta Score (beta=2): 0.5556\n")
	assert.Contains(t, s, "TN (True Negative): 2\tFP (False Positive): 0\n")
	assert.Contains(t, s, "FN (False Negative): 1\tTP (True Positive): 1\n")
}

func TestClassificationTSV(t *testing.T) {
	var b bytes.Buffer
	r := api.ClassificationV1{Results: []api.ClassificationResultV1{
		{YTrue: 1, Proba: 0.9, YPred: 1, Correct: true},
		{YTrue: 0, Proba: 0.75, YPred: 1, Correct: false},
	}}
	require.NoError(t, Write(KindClassification, output.FormatTSV, &b, r))
	assert.Equal(t, output.ClassificationHeader+"\n1\t0.9\t1\ttrue\n0\t0.75\t1\tfalse\n", b.String())
}

func TestRegressionJSON(t *testing.T) {
	var b bytes.Buffer
	r := api.RegressionV1{Loss: 1, MAE: 0.5, MSE: 1, R2: 0.25, Results: []api.RegressionResultV1{{YTrue: 1, YPred: 2}}}
	require.NoError(t, Write(KindRegression, output.FormatJSON, &b, r))

	var got api.RegressionV1
	require.NoError(t, jsonutil.API.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, r, got)
}
