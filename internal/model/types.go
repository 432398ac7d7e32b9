package model

import (
	"builder-gen/internal/classify"
	"builder-gen/internal/schema"
)

// Naming defaults.
const (
	DefaultSuffix = "Builder"
	// BuildMethod is the name of the generated finalizer.
	BuildMethod = "Build"
	// Receiver is the receiver name of every generated method.
	Receiver = "b"
)

//go:generate go tool stringer -type=MethodKind -trimprefix=Method -output=method_kind_string.go

// MethodKind distinguishes the generated builder methods.
type MethodKind int

const (
	// MethodSetter stores a value, replacing whatever was stored before.
	MethodSetter MethodKind = iota
	// MethodAppender pushes one element onto a collection.
	MethodAppender
)

// MarshalYAML renders the kind by name.
func (k MethodKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Options controls naming of the generated builder.
type Options struct {
	// Suffix is appended to the record name to form the builder name.
	Suffix string
}

// Storage is one builder-side slot, one per record field.
type Storage struct {
	// Field is the record field the slot feeds.
	Field string `yaml:"field"`
	// Name is the unexported builder field name.
	Name string `yaml:"name"`
	// Type is the Go type of the slot: *T or []T.
	Type string `yaml:"type"`
	// Strategy is the classification of the field.
	Strategy classify.Kind `yaml:"strategy"`
}

// Method is one generated setter or appender.
type Method struct {
	Kind      MethodKind `yaml:"kind"`
	Name      string     `yaml:"name"`
	Field     string     `yaml:"field"`
	Storage   string     `yaml:"storage"`
	Param     string     `yaml:"param"`
	ParamType string     `yaml:"param_type"`
	// Strategy is the classification of the field the method writes.
	Strategy classify.Kind `yaml:"strategy"`
}

// Builder is the emission plan for one record type.
type Builder struct {
	// Name is the builder type name (record name plus suffix).
	Name string `yaml:"name"`
	// Record is the record type the builder produces.
	Record string `yaml:"record"`
	// Package is the package name of the record.
	Package string `yaml:"package"`
	// PkgPath is the import path of the record, when known.
	PkgPath string `yaml:"pkg_path,omitempty"`
	// Source is the file declaring the record.
	Source string `yaml:"source,omitempty"`
	// Factory is the name of the zero-argument constructor.
	Factory string `yaml:"factory"`
	// Imports are the record file's imports referenced by field types.
	Imports []schema.Import `yaml:"imports,omitempty"`
	// Storage lists one slot per record field, in declared order.
	Storage []Storage `yaml:"storage"`
	// Methods lists the setters and appenders, in declared field order.
	Methods []Method `yaml:"methods"`
	// Required lists the fields Build checks, in declared order.
	Required []string `yaml:"required"`
}

// Method returns the method with the given name, or nil.
func (b *Builder) Method(name string) *Method {
	for i := range b.Methods {
		if b.Methods[i].Name == name {
			return &b.Methods[i]
		}
	}

	return nil
}

// MethodsFor returns the methods writing the given record field.
func (b *Builder) MethodsFor(field string) []Method {
	var out []Method

	for _, m := range b.Methods {
		if m.Field == field {
			out = append(out, m)
		}
	}

	return out
}

// HasKind reports whether any storage slot has the given strategy.
func (b *Builder) HasKind(kind classify.Kind) bool {
	for _, s := range b.Storage {
		if s.Strategy == kind {
			return true
		}
	}

	return false
}
