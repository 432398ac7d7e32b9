package classify

import (
	"errors"

	"builder-gen/internal/diagnostic"
	"builder-gen/internal/schema"
)

// Classify determines the builder strategy of a single field.
//
//  1. A pointer field *T is NaturallyOptional(T), whatever its annotation.
//  2. An annotated field must carry exactly one each = "name" annotation and
//     be a slice []T; it becomes Accumulator(T, name).
//  3. Anything else is Required with T the declared type.
//
// Failures are *diagnostic.Error values anchored at the annotation, with the
// Record left empty for the caller to fill in.
func Classify(f schema.Field) (Strategy, error) {
	if f.Type.Kind == schema.TypeKindOptional {
		return Strategy{Field: f.Name, Kind: KindNaturallyOptional, Elem: f.Type.Inner()}, nil
	}

	if len(f.Annotations) == 0 {
		return Strategy{Field: f.Name, Kind: KindRequired, Elem: f.Type}, nil
	}

	if len(f.Annotations) > 1 {
		return Strategy{}, fieldError(diagnostic.CodeMalformedAnnotation, msgMultiple, f, f.Annotations[1])
	}

	a := f.Annotations[0]
	if a.Unquoted {
		return Strategy{}, fieldError(diagnostic.CodeMalformedAnnotation, msgUnquotedTagVal, f, a)
	}

	name, err := ParseEach(a.Text)
	if err != nil {
		return Strategy{}, fieldError(diagnostic.CodeMalformedAnnotation, err.Error(), f, a)
	}

	if f.Type.Kind != schema.TypeKindCollection {
		return Strategy{}, fieldError(diagnostic.CodeAnnotationTypeMismatch, msgRequiresSlice, f, a)
	}

	return Strategy{Field: f.Name, Kind: KindAccumulator, Elem: f.Type.Inner(), Each: name}, nil
}

// Struct classifies every field of s in declared order.
//
// By default classification stops at the first failing field; with
// Options.ReportAll every field is validated. The returned error is the
// joined error diagnostics, or nil. Warnings (such as an annotation ignored
// on a pointer field) are recorded in Result.Diagnostics either way.
func Struct(s *schema.Struct, opts Options) (*Result, error) {
	res := &Result{Record: s.Name}

	for _, f := range s.Fields {
		st, err := Classify(f)
		if err != nil {
			var de *diagnostic.Error
			if !errors.As(err, &de) {
				return res, err
			}

			de.Record = s.Name
			res.Diagnostics.Add(de.Diagnostic)

			if !opts.ReportAll {
				break
			}

			continue
		}

		if st.Kind == KindNaturallyOptional && len(f.Annotations) > 0 {
			res.Diagnostics.AddWarning(diagnostic.CodeAnnotationIgnored, msgIgnoredOnPtr,
				f.Annotations[0].Pos, s.Name, f.Name)
		}

		res.Strategies = append(res.Strategies, st)
	}

	if res.Diagnostics.HasErrors() {
		res.Strategies = nil
	}

	return res, res.Diagnostics.Err()
}

func fieldError(code, msg string, f schema.Field, a schema.Annotation) error {
	return &diagnostic.Error{
		Diagnostic: diagnostic.New(code, msg, a.Pos, "", f.Name),
	}
}
