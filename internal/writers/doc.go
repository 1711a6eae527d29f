// Package writers turns design, check and subset results into serialized
// outputs.
//
// Design:
//   - Writers own all presentation knowledge (summary text, TSV, FASTA, JSON/JSONL/YAML).
//   - core/design stays domain-only; the CLI only picks a format.
//   - JSON/JSONL/YAML go through pkg/api (v1) for a stable wire format.
package writers
