package classify

import (
	"builder-gen/internal/diagnostic"
	"builder-gen/internal/schema"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the builder strategy of a field.
type Kind int

const (
	// KindRequired - plain type; stored as *T and checked by Build.
	KindRequired Kind = iota
	// KindNaturallyOptional - declared *T; stored as *T, never checked.
	KindNaturallyOptional
	// KindAccumulator - declared []T with an each annotation; stored as []T.
	KindAccumulator
)

// MarshalYAML renders the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Strategy is the classification result of one field.
type Strategy struct {
	// Field is the name of the classified field.
	Field string
	// Kind is the chosen strategy.
	Kind Kind
	// Elem is T: the declared type for Required, the pointee for
	// NaturallyOptional, the slice element for Accumulator.
	Elem schema.TypeRef
	// Each is the appender name from the annotation (Accumulator only).
	Each string
}

// Options controls whole-struct classification.
type Options struct {
	// ReportAll keeps validating after the first failing field.
	ReportAll bool
}

// Result is the classification of a whole struct.
type Result struct {
	Record      string
	Strategies  []Strategy
	Diagnostics diagnostic.Diagnostics
}
