// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"offtarget/internal/app"
	"offtarget/internal/jsonutil"
	"offtarget/pkg/api"
)

const header = "key,sgRNA_sequence,genome_input,sgRNA_input,mismatch_position,K562,Jurkat,mean_relative_gamma,note\n"

// dataset has one duplicate key, one bad alphabet, one non-negative
// mismatch position and one unrecognized flag: 4 rows survive.
const dataset = header +
	"k1,GACGCATAAAGATGAGACGCTGG,GACGCATAAAGATGAGACGCTGG,GACGCATAAAGATGAGACGCAGG,-3,True,False,0.25,a\n" +
	"k2,AAAACCCCGGGG,AAAACCCCGGGG,AAAACCCCGGGT,-1.0,1,0,-0.5,b\n" +
	"k1,AAAA,AAAA,AAAA,-1,1,1,0,dup\n" +
	"k3,AANA,AAAA,AAAA,-1,1,1,0,bad base\n" +
	"k4,ACGT,ACGT,ACGA,0,1,1,0,zero mm\n" +
	"k5,ACGT,ACGT,ACGA,-2,maybe,1,0,bad flag\n" +
	"k6,TTTT,TTTT,TTGT,-2,false,TRUE,NaN,c\n" +
	"k7,CG,CG,CC,-7,0,1,1e-3,d\n"

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestValidateEndToEnd(t *testing.T) {
	in := write(t, "data.csv", dataset)

	code, out, stderr := run(t, "validate", "--input", in)
	if code != 0 {
		t.Fatalf("validate exit %d, err=%s", code, stderr)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("want header + 4 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "\tmean_relative_gamma\tnote") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if want := "k2\tAAAACCCCGGGG\tAAAACCCCGGGG\tAAAACCCCGGGT\t-1\t1\t0\t-0.5\tb"; lines[2] != want {
		t.Fatalf("row k2:\n got:  %q\n want: %q", lines[2], want)
	}
	if want := "k6\tTTTT\tTTTT\tTTGT\t-2\t0\t1\tNaN\tc"; lines[3] != want {
		t.Fatalf("row k6:\n got:  %q\n want: %q", lines[3], want)
	}
	for _, frag := range []string{
		`msg="duplicate keys removed" column=key rows=1`,
		`msg="invalid values removed" column=sgRNA_sequence rows=1`,
		`msg="invalid values removed" column=mismatch_position rows=1`,
		`msg="invalid values removed" column=K562 rows=1`,
		`msg="validation finished" original=8 final=4 removed=4`,
	} {
		if !strings.Contains(stderr, frag) {
			t.Errorf("stderr missing %q:\n%s", frag, stderr)
		}
	}
}

func TestEnrichJSON(t *testing.T) {
	in := write(t, "data.csv", dataset)

	code, out, stderr := run(t, "enrich", "-i", in, "-o", "json")
	if code != 0 {
		t.Fatalf("enrich exit %d, err=%s", code, stderr)
	}
	var rows []api.EnrichedRowV1
	if err := jsonutil.API.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(rows) != 4 {
		t.Fatalf("want 4 rows, got %d", len(rows))
	}
	r := rows[0]
	l := len(r.SgRNAInput)
	if len(r.EncodedOR) != 4*l || len(r.EncodedStacked) != 8*l || len(r.Encoded7Channels) != 7*l {
		t.Fatalf("encoded lengths %d/%d/%d for L=%d", len(r.EncodedOR), len(r.EncodedStacked), len(r.Encoded7Channels), l)
	}
	if r.PAM != "GGA" {
		t.Fatalf("pam = %q, want GGA", r.PAM)
	}
	if r.Extra["note"] != "a" {
		t.Fatalf("extra column lost: %v", r.Extra)
	}
	if rows[2].MeanRelativeGamma != nil {
		t.Fatalf("NaN gamma should encode as null")
	}

	last := rows[3] // k7: CG vs CC
	if last.GCContent != 1 || last.PAM != "CC" {
		t.Fatalf("k7 gc=%v pam=%q", last.GCContent, last.PAM)
	}
	// pos 1 is G (genome) vs C (sgRNA); G ranks below C so D is set.
	want := []int8{
		0, 0, // A
		0, 0, // T
		0, 1, // G
		-1, 1, // C
		0, 0, // R
		0, 1, // D
		1, 1, // F
	}
	if fmt.Sprint(last.Encoded7Channels) != fmt.Sprint(want) {
		t.Fatalf("k7 7ch:\n got:  %v\n want: %v", last.Encoded7Channels, want)
	}
}

func TestParallelEnrichEqualsSerial(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	bases := "ACGT"
	for i := 0; i < 300; i++ {
		seq := make([]byte, 20)
		rna := make([]byte, 20)
		for j := range seq {
			seq[j] = bases[(i*7+j*3)%4]
			rna[j] = bases[(i*5+j)%4]
		}
		fmt.Fprintf(&b, "r%d,%s,%s,%s,-%d,1,0,0.%d,x\n", i, seq, seq, rna, i%20+1, i)
	}
	in := write(t, "big.csv", b.String())

	runThreads := func(threads int) string {
		code, out, stderr := run(t, "enrich", "-i", in, "-o", "jsonl", "--threads", fmt.Sprint(threads))
		if code != 0 {
			t.Fatalf("exit %d err %s", code, stderr)
		}
		return out
	}

	serial := runThreads(1)
	parallel := runThreads(8)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial")
	}
	if n := strings.Count(serial, "\n"); n != 300 {
		t.Fatalf("want 300 jsonl lines, got %d", n)
	}
}

func TestEnrichLengthMismatch(t *testing.T) {
	in := write(t, "mm.csv", header+
		"a,ACGT,ACGT,ACGA,-1,1,0,0,x\n"+
		"b,ACGT,ACG,ACGA,-1,1,0,0,y\n"+
		"c,GG,GG,GC,-1,1,0,0,z\n")

	code, out, stderr := run(t, "enrich", "-i", in)
	if code != 3 {
		t.Fatalf("want exit 3 on length mismatch, got %d (out=%s)", code, out)
	}
	if !strings.Contains(stderr, `key \"b\"`) || !strings.Contains(stderr, "equal length") {
		t.Fatalf("error should name the row and the cause:\n%s", stderr)
	}

	code, out, stderr = run(t, "enrich", "-i", in, "--keep-going", "--no-header")
	if code != 0 {
		t.Fatalf("keep-going exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "a\t") || !strings.HasPrefix(lines[1], "c\t") {
		t.Fatalf("keep-going should drop only row b:\n%s", out)
	}
	if !strings.Contains(stderr, `msg="row skipped" key=b`) {
		t.Fatalf("skipped row not logged:\n%s", stderr)
	}
}

func TestEncodeCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--dna", "AC", "--rna", "AG", "--scheme", "or", "--flat"}, "1,0,0,0,0,1,0,1\n"},
		{[]string{"--dna", "AC", "--rna", "AG", "--flat"}, "-1,0,0,0,0,1,0,1,0,1,0,0,1,1\n"},
		{[]string{"--dna", "AC", "--rna", "AG", "--pam-location", "none", "--flat"}, "-1,0,0,0,0,1,0,1,0,1,0,0,0,0\n"},
		{[]string{"--dna", "AC", "--scheme", "onehot"}, " 1  0\n 0  0\n 0  0\n 0  1\n"},
	}
	for _, tc := range cases {
		code, out, stderr := run(t, append([]string{"encode"}, tc.args...)...)
		if code != 0 {
			t.Fatalf("%v: exit %d: %s", tc.args, code, stderr)
		}
		if out != tc.want {
			t.Fatalf("%v:\n got:  %q\n want: %q", tc.args, out, tc.want)
		}
	}

	if code, _, _ := run(t, "encode", "--dna", "ACG", "--rna", "AC", "--scheme", "stacked"); code != 2 {
		t.Fatalf("length mismatch should be a usage error, got %d", code)
	}
	if code, _, _ := run(t, "encode", "--dna", "AC", "--rna", "AG", "--scheme", "5ch"); code != 2 {
		t.Fatalf("unknown scheme should be a usage error, got %d", code)
	}
}

func TestEmbedEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := map[string][]float64{}
		for _, s := range strings.Split(r.URL.Query().Get("sequences"), ", ") {
			if strings.HasPrefix(s, "TT") {
				continue // unprocessable
			}
			out[s] = []float64{float64(len(s)), 0.5}
		}
		_ = jsonutil.API.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	in := write(t, "data.csv", dataset)
	code, out, stderr := run(t, "embed", "-i", in, "--endpoint", srv.URL, "--delay", "0s", "--batch-size", "2", "-o", "jsonl")
	if code != 0 {
		t.Fatalf("embed exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 embeddings, got:\n%s", out)
	}
	var k6 api.EmbeddingV1
	if err := jsonutil.API.Unmarshal([]byte(lines[2]), &k6); err != nil {
		t.Fatal(err)
	}
	if k6.Key != "k6" || k6.Sequence != "TTGT" || k6.Embedding != nil {
		t.Fatalf("k6 should be present with a null embedding: %+v", k6)
	}
	if !strings.Contains(lines[0], `"key":"k1"`) || !strings.Contains(lines[0], `"embedding":[23,0.5]`) {
		t.Fatalf("k1 line: %s", lines[0])
	}
	if !strings.Contains(stderr, `msg="sequences without embedding" count=1`) {
		t.Fatalf("missing warning:\n%s", stderr)
	}
}

func TestMetricsClassification(t *testing.T) {
	preds := write(t, "preds.tsv", "y_true\ty_pred\n1\t0.9\n1\t0.4\n0\t0.6\n0\t0.1\n")

	code, out, stderr := run(t, "metrics", "--predictions", preds)
	if code != 0 {
		t.Fatalf("metrics exit %d: %s", code, stderr)
	}
	for _, frag := range []string{
		"Test Accuracy: 0.5000\n",
		"Precision: 0.5000\n",
		"TN (True Negative): 1\tFP (False Positive): 1\n",
		"FN (False Negative): 1\tTP (True Positive): 1\n",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q:\n%s", frag, out)
		}
	}

	code, out, stderr = run(t, "metrics", "-p", preds, "--task", "regression", "-o", "json")
	if code != 0 {
		t.Fatalf("regression exit %d: %s", code, stderr)
	}
	var reg api.RegressionV1
	if err := jsonutil.API.Unmarshal([]byte(out), &reg); err != nil {
		t.Fatal(err)
	}
	if len(reg.Results) != 4 || reg.MSE <= 0 {
		t.Fatalf("unexpected regression report: %+v", reg)
	}
}

func TestUsageAndRuntimeExitCodes(t *testing.T) {
	in := write(t, "data.csv", dataset)
	missingCol := write(t, "cols.csv", "key,sgRNA_sequence\nk,A\n")

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"unknown command", []string{"frobnicate"}, 2},
		{"unknown flag", []string{"validate", "--nope"}, 2},
		{"bad output", []string{"validate", "-i", in, "-o", "fasta"}, 2},
		{"bad pam location", []string{"enrich", "-i", in, "--pam-location", "middle"}, 2},
		{"metrics text not for rows", []string{"validate", "-i", in, "-o", "text"}, 2},
		{"missing predictions flag", []string{"metrics"}, 2},
		{"missing file", []string{"validate", "-i", filepath.Join(t.TempDir(), "nope.csv")}, 3},
		{"missing column", []string{"validate", "-i", missingCol}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := run(t, tc.args...)
			if code != tc.code {
				t.Fatalf("exit %d, want %d; stderr=%s", code, tc.code, stderr)
			}
		})
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := run(t, "version")
	if code != 0 || !strings.HasPrefix(out, "offtarget version ") {
		t.Fatalf("version: exit %d out %q", code, out)
	}
	code, out, _ = run(t, "--help")
	if code != 0 || !strings.Contains(out, "enrich") {
		t.Fatalf("help: exit %d out %q", code, out)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	in := write(t, "data.csv", dataset)
	cfg := write(t, "offtarget.yaml", "output:\n  format: jsonl\n  no-header: true\n")

	code, out, stderr := run(t, "validate", "-i", in, "--config", cfg)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.HasPrefix(out, `{"key":"k1"`) {
		t.Fatalf("config file output format not applied:\n%s", out)
	}

	t.Setenv("OFFTARGET_QUIET", "true")
	code, _, stderr = run(t, "validate", "-i", in, "--config", cfg)
	if code != 0 || stderr != "" {
		t.Fatalf("quiet via env: exit %d stderr %q", code, stderr)
	}
}

func TestEncodePretty(t *testing.T) {
	code, out, stderr := run(t, "encode", "--dna", "ACGTAGG", "--rna", "ACCTTGG", "--pretty", "--flat")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.HasPrefix(out, "# genome 5'-ACGTAGG-3'\n") || !strings.Contains(out, "# mismatches: 2") {
		t.Fatalf("alignment block missing:\n%s", out)
	}
	if lines := strings.Split(strings.TrimRight(out, "\n"), "\n"); !strings.HasPrefix(lines[len(lines)-1], "-1,0,0,0,1,0,0,") {
		t.Fatalf("flattened vector should follow the block:\n%s", out)
	}
}
