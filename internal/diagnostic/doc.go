// Package diagnostic provides structured, position-anchored diagnostics for
// the builder generator.
//
// Diagnostics describe problems with a schema (detected once, before any code
// is emitted). They are never used for the runtime errors returned by
// generated builders; see package buildrt for those.
//
// Key capabilities:
//   - Fatal schema errors (unsupported shape, malformed annotation,
//     annotation/type mismatch, identifier conflicts)
//   - Non-fatal warnings (ignored annotations)
//   - Conversion of error diagnostics into Go errors matchable with errors.Is
package diagnostic
