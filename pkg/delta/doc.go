// Package delta implements Operational Transformation over rich text in the
// Quill delta format.
//
// A delta is an ordered sequence of three kinds of operations:
//   - Insert: add text (or a single embedded object) at the current position
//   - Retain: keep characters, optionally changing their formatting
//   - Delete: remove characters at the current position
//
// A delta whose operations are all inserts describes a document; a delta
// containing retains or deletes describes a change to one. Insert and retain
// operations may carry an attribute map (formatting such as bold or color),
// and attribute values may themselves be deltas, which the algebra recurses
// through.
//
// The package exposes the delta algebra as pure functions: Compose folds two
// sequential deltas into one, Transform rebases one concurrent delta against
// another given a priority, Diff computes the change between two documents,
// Apply runs a change against a document with length validation, and Lines
// projects a document onto its newline-separated lines.
//
// All positions and lengths are counted in Unicode scalar values, never in
// bytes or UTF-16 code units. Every delta produced by the package is in
// canonical form: no zero-length operations, adjacent mergeable operations
// merged, and inserts ordered before deletes at the same position.
//
// Deltas serialize to and from the Quill-compatible JSON wire format, an
// array of operation objects such as:
//
//	[{"insert":"Hel"},{"insert":"lo","attributes":{"bold":true}},{"delete":2}]
package delta
