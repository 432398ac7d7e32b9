package schema

import (
	"fmt"
	"go/token"

	"builder-gen/internal/common"
)

// Default annotation spellings.
const (
	DefaultTagKey    = "builder"
	DefaultDirective = "builder:"
	// GenerateDirective marks a struct for generation when no type names are given.
	GenerateDirective = "generate"
)

// TypeKind is the shape of a declared field type, as far as the builder cares.
type TypeKind int

const (
	TypeKindPlain      TypeKind = iota // any type that is neither *T nor []T
	TypeKindOptional                   // *T
	TypeKindCollection                 // []T
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindPlain:
		return "plain"
	case TypeKindOptional:
		return "optional"
	case TypeKindCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

// TypeRef describes a declared field type.
type TypeRef struct {
	Kind TypeKind // Shape of the outermost type
	Expr string   // Go source of the whole type, e.g. "*[]string"
	Elem *TypeRef // For Optional and Collection, the inner type
}

// Plain returns a plain TypeRef for expr.
func Plain(expr string) TypeRef {
	return TypeRef{Kind: TypeKindPlain, Expr: expr}
}

// Optional returns the TypeRef of *elem.
func Optional(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeKindOptional, Expr: "*" + elem.Expr, Elem: &elem}
}

// Collection returns the TypeRef of []elem.
func Collection(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeKindCollection, Expr: "[]" + elem.Expr, Elem: &elem}
}

// String returns the Go source of the type.
func (t TypeRef) String() string {
	return t.Expr
}

// Inner returns the wrapped type of an Optional or Collection, or t itself.
func (t TypeRef) Inner() TypeRef {
	if t.Elem == nil {
		return t
	}

	return *t.Elem
}

// AnnotationSource tells where an annotation was written.
type AnnotationSource int

const (
	AnnotationTag       AnnotationSource = iota // `builder:"..."` struct tag
	AnnotationDirective                         // //builder:... field comment
)

// String returns a human-readable representation of the AnnotationSource.
func (s AnnotationSource) String() string {
	switch s {
	case AnnotationTag:
		return "tag"
	case AnnotationDirective:
		return "directive"
	default:
		return common.UnknownStr
	}
}

// Annotation is the raw, unparsed payload attached to a field.
type Annotation struct {
	Source AnnotationSource
	Text   string         // Payload, e.g. `each = "arg"`
	Pos    token.Position // Start of the tag literal or comment
	// Unquoted is set when the tag key was found but its value was not a
	// quoted string; Text then holds whatever followed the key.
	Unquoted bool
}

// Field describes one named struct field.
type Field struct {
	Name        string
	Type        TypeRef
	Annotations []Annotation // Usually zero or one; more is rejected by classify
	Pos         token.Position
}

// Annotation returns the field's single annotation, or nil if there is none.
func (f *Field) Annotation() *Annotation {
	if a, ok := common.First(f.Annotations); ok {
		return &a
	}

	return nil
}

// Import is an import of the declaring file referenced by a field type.
type Import struct {
	Name string `yaml:"name,omitempty"` // Explicit import name, empty when it matches the path base
	Path string `yaml:"path"`
}

// Struct is the schema of one record type.
type Struct struct {
	Name     string
	Package  string // Package name of the declaring file
	PkgPath  string // Import path when loaded through go/packages
	Filename string
	Pos      token.Position
	Fields   []Field
	Imports  []Import
	Generate bool // Carries a //builder:generate directive
}

// Field returns the named field, or nil.
func (s *Struct) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}

// Decl is one type declaration of a file: either a usable Struct or the
// reason it cannot be used as a record.
type Decl struct {
	Name     string
	Generate bool
	Struct   *Struct
	Err      error
}

// File holds every type declaration of a parsed Go file in source order.
type File struct {
	Package  string
	PkgPath  string
	Filename string
	Decls    []Decl
}

// Lookup returns the named struct schema. A declaration that is not a
// named-field record returns its UnsupportedShape error.
func (f *File) Lookup(name string) (*Struct, error) {
	for _, d := range f.Decls {
		if d.Name == name {
			return d.Struct, d.Err
		}
	}

	return nil, fmt.Errorf("type %s not found in %s", name, f.Filename)
}

// Has reports whether the file declares a type called name.
func (f *File) Has(name string) bool {
	for _, d := range f.Decls {
		if d.Name == name {
			return true
		}
	}

	return false
}

// Marked returns the declarations carrying a //builder:generate directive.
func (f *File) Marked() []Decl {
	var out []Decl

	for _, d := range f.Decls {
		if d.Generate {
			out = append(out, d)
		}
	}

	return out
}
