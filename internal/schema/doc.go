// Package schema turns Go struct declarations into builder schemas.
//
// It parses source with go/parser (or loads packages through
// golang.org/x/tools/go/packages) and produces, per struct type, an ordered
// list of fields with a syntactic type descriptor and the raw text of any
// attached builder annotation.
//
// Key types:
//   - TypeRef: Plain, Optional (*T) or Collection ([]T) type descriptor
//   - Field: field name, TypeRef, raw annotations, position
//   - Struct: record type name, fields in declared order, referenced imports
//   - File: every type declaration of a source file, parsed or rejected
//
// Annotations are not validated here; see package classify.
package schema
