// Package synth drives builder synthesis end to end.
//
// For every selected record it runs, in order:
//   - classify: the per-field strategy (Required, NaturallyOptional, Accumulator)
//   - model.Check: identifier conflicts on the builder type
//   - model.New: the emission plan
//   - gen: the Go source (generate mode only)
//
// Records are independent and are processed concurrently. A record with any
// error produces no builder and no file.
package synth
