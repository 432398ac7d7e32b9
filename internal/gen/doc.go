// Package gen renders builder models into Go source.
//
// Generation uses text/template and formats the result with
// golang.org/x/tools/imports in format-only mode.
//
// Emitted per record:
//   - the builder struct with one unexported storage slot per field
//   - a zero-argument factory returning the empty builder
//   - setters and appenders returning the builder for chaining
//   - a non-mutating Build method checking required fields in order
package gen
