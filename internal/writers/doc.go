// Package writers turns finished count reports into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV layout, JSON schema, file names).
//   - The counter and pipeline stay presentation-free.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
