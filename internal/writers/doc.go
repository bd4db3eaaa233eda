// Package writers turns validated rows, enriched rows, embeddings and
// metric reports into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV layout, JSON/JSONL).
//   - Encoders stay domain-only; pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
