// Package embedding fetches sequence embeddings from a remote encoding
// service in fixed-delay batches and realigns them onto row order.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"offtarget/internal/jsonutil"
	"offtarget/internal/runutil"
)

const (
	DefaultEndpoint    = "https://ai-chemistry.itmo.ru/api/encode_sequence"
	DefaultBatchSize   = 80
	DefaultDelay       = 4 * time.Second
	DefaultPolymerType = "DNA"
	DefaultStrategy    = "aptamer"

	maxResponseBytes = 64 << 20
)

var (
	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrNegativeDelay is returned when the inter-batch delay is negative.
	ErrNegativeDelay = errors.New("delay must not be negative")

	// ErrEmptyEndpoint is returned when no endpoint is configured.
	ErrEmptyEndpoint = errors.New("endpoint must not be empty")

	// ErrNilHTTPClient is returned when a nil *http.Client is provided.
	ErrNilHTTPClient = errors.New("http client must not be nil")
)

// Item is one sequence to embed, identified by a stable row ID.
type Item struct {
	ID       string
	Sequence string
}

// Client posts sequences to the encoding service.
type Client struct {
	endpoint    string
	http        *http.Client
	batchSize   int
	delay       time.Duration
	polymerType string
	strategy    string
	log         *slog.Logger
}

// Option configures a Client using the functional options pattern.
type Option func(*Client) error

// New returns a Client for endpoint with the defaults above.
func New(endpoint string, options ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrEmptyEndpoint
	}
	c := &Client{
		endpoint:    endpoint,
		http:        &http.Client{Timeout: 2 * time.Minute},
		batchSize:   DefaultBatchSize,
		delay:       DefaultDelay,
		polymerType: DefaultPolymerType,
		strategy:    DefaultStrategy,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithBatchSize sets the nominal number of sequences per request.
func WithBatchSize(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return ErrInvalidBatchSize
		}
		c.batchSize = n
		return nil
	}
}

// WithDelay sets the pause between consecutive batches.
func WithDelay(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return ErrNegativeDelay
		}
		c.delay = d
		return nil
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return ErrNilHTTPClient
		}
		c.http = h
		return nil
	}
}

// WithPolymerType sets the polymer_type parameter (e.g. DNA, RNA).
func WithPolymerType(p string) Option {
	return func(c *Client) error {
		if p != "" {
			c.polymerType = p
		}
		return nil
	}
}

// WithStrategy sets the encoding_strategy parameter.
func WithStrategy(s string) Option {
	return func(c *Client) error {
		if s != "" {
			c.strategy = s
		}
		return nil
	}
}

// WithLogger sets the logger used for batch progress and failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.log = l
		}
		return nil
	}
}

// Generate embeds items and returns one entry per item in input order.
//
// Items are split into n/batchSize+1 near-equal consecutive batches. A batch
// that fails is logged and its items are recorded as absent; the remaining
// batches still run. Sequences the service does not return are absent too.
// Only context cancellation aborts the run.
func (c *Client) Generate(ctx context.Context, items []Item) (*Result, error) {
	res := newResult(len(items))
	batches := runutil.SplitEven(len(items), runutil.BatchCount(len(items), c.batchSize))

	for bi, span := range batches {
		if bi > 0 && c.delay > 0 {
			t := time.NewTimer(c.delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		batch := items[span[0]:span[1]]
		c.log.InfoContext(ctx, "processing batch",
			slog.Int("batch", bi+1), slog.Int("of", len(batches)), slog.Int("size", len(batch)))

		vecs, err := c.post(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.ErrorContext(ctx, "batch failed", slog.Int("batch", bi+1), slog.Any("error", err))
		}
		for _, it := range batch {
			v, ok := vecs[it.Sequence]
			res.set(it.ID, v, ok)
		}
	}
	return res, nil
}

// post sends one batch and returns sequence → embedding.
func (c *Client) post(ctx context.Context, batch []Item) (map[string][]float64, error) {
	seqs := make([]string, len(batch))
	for i, it := range batch {
		seqs[i] = it.Sequence
	}
	q := url.Values{}
	q.Set("sequences", strings.Join(seqs, ", "))
	q.Set("polymer_type", c.polymerType)
	q.Set("encoding_strategy", c.strategy)
	q.Set("skip_unprocessable", "true")

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("bad endpoint: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return decode(body)
}

// decode parses {"SEQ": [..], ...}. Entries that are not numeric arrays
// are skipped so they read as absent.
func decode(body []byte) (map[string][]float64, error) {
	var raw map[string]jsoniter.RawMessage
	if err := jsonutil.API.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	out := make(map[string][]float64, len(raw))
	for seq, msg := range raw {
		var v []float64
		if err := jsonutil.API.Unmarshal(msg, &v); err != nil || v == nil {
			continue
		}
		out[seq] = v
	}
	return out, nil
}
