// Package classify assigns each schema field its builder strategy.
//
// A field is one of:
//   - Required: any non-pointer type without annotation; Build fails until set
//   - NaturallyOptional: a pointer type *T; the setter takes T
//   - Accumulator: a slice []T annotated with each = "name"; an appender
//     pushes one T per call
//
// Classification of a field depends only on its declared type and its
// annotation. Annotation payloads are tokenised with go/scanner; anything
// other than a single each = "<identifier>" pair is a MalformedAnnotation.
package classify
