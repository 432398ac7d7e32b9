package model

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"builder-gen/internal/classify"
	"builder-gen/internal/common"
	"builder-gen/internal/diagnostic"
	"builder-gen/internal/schema"
)

// New builds the emission plan of s from its field strategies, which must be
// in the same order as s.Fields (as returned by classify.Struct).
func New(s *schema.Struct, strategies []classify.Strategy, opts Options) *Builder {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	name := s.Name + suffix

	b := &Builder{
		Name:     name,
		Record:   s.Name,
		Package:  s.Package,
		PkgPath:  s.PkgPath,
		Source:   s.Filename,
		Factory:  factoryName(s.Name, name),
		Imports:  s.Imports,
		Required: []string{},
	}

	for _, st := range strategies {
		storage := common.UnexportName(st.Field)

		slot := Storage{
			Field:    st.Field,
			Name:     storage,
			Strategy: st.Kind,
		}

		setter := Method{
			Kind:     MethodSetter,
			Name:     SetterName(st.Field),
			Field:    st.Field,
			Storage:  storage,
			Param:    paramName(storage),
			Strategy: st.Kind,
		}

		switch st.Kind {
		case classify.KindRequired:
			slot.Type = "*" + st.Elem.Expr
			setter.ParamType = st.Elem.Expr
			b.Required = append(b.Required, st.Field)
			b.Methods = append(b.Methods, setter)

		case classify.KindNaturallyOptional:
			slot.Type = "*" + st.Elem.Expr
			setter.ParamType = st.Elem.Expr
			b.Methods = append(b.Methods, setter)

		case classify.KindAccumulator:
			slot.Type = "[]" + st.Elem.Expr
			appender := Method{
				Kind:      MethodAppender,
				Name:      AppenderName(st.Each),
				Field:     st.Field,
				Storage:   storage,
				Param:     paramName(common.UnexportName(st.Each)),
				ParamType: st.Elem.Expr,
				Strategy:  st.Kind,
			}
			b.Methods = append(b.Methods, appender)

			// The whole-collection setter would share the appender's name.
			if appender.Name != setter.Name {
				setter.ParamType = slot.Type
				b.Methods = append(b.Methods, setter)
			}
		}

		b.Storage = append(b.Storage, slot)
	}

	return b
}

// SetterName returns the method name of the setter for a record field.
func SetterName(field string) string {
	return common.ExportName(field)
}

// AppenderName returns the method name of the appender for an each name.
func AppenderName(each string) string {
	return common.ExportName(each)
}

// Check reports identifiers that would be declared twice on the builder
// type: storage slots and methods share one namespace with Build.
func Check(s *schema.Struct, strategies []classify.Strategy, opts Options) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	b := New(s, strategies, opts)
	owners := map[string]string{BuildMethod: "the " + BuildMethod + " method"}

	claim := func(ident, field, what string) {
		owner := fmt.Sprintf("%s of field %s", what, field)

		prev, taken := owners[ident]
		if !taken {
			owners[ident] = owner
			return
		}

		pos := s.Pos
		if f := s.Field(field); f != nil {
			pos = f.Pos
		}

		diags.AddError(diagnostic.CodeNameConflict,
			fmt.Sprintf("%s.%s would be declared twice: %s and %s", b.Name, ident, prev, owner),
			pos, s.Name, field)
	}

	for _, slot := range b.Storage {
		claim(slot.Name, slot.Field, "storage")
	}

	for _, m := range b.Methods {
		claim(m.Name, m.Field, strings.ToLower(m.Kind.String()))
	}

	return diags
}

// factoryName derives the constructor name, keeping the record's visibility.
func factoryName(record, builder string) string {
	if ast.IsExported(record) {
		return "New" + builder
	}

	return "new" + common.ExportName(builder)
}

// paramName keeps parameters from shadowing the receiver, builtins such as
// append, or the slices package used in generated bodies.
func paramName(candidate string) string {
	if candidate == Receiver || candidate == "slices" || types.Universe.Lookup(candidate) != nil {
		return "v"
	}

	return candidate
}
