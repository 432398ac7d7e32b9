package synth

import (
	"errors"
	"fmt"
	"strings"

	"builder-gen/internal/common"
	"builder-gen/internal/diagnostic"
	"builder-gen/internal/match"
	"builder-gen/internal/schema"
)

// ErrNoRecords is returned when nothing was selected for synthesis.
var ErrNoRecords = errors.New("no records selected")

// selection is the set of records chosen from a group of files.
type selection struct {
	records []*schema.Struct
	// diags holds the shape errors of selected declarations.
	diags diagnostic.Diagnostics
}

// selectRecords picks the named types, or every declaration marked with the
// generate directive when no names are given. Selected declarations that are
// not usable records become UnsupportedShape diagnostics.
func selectRecords(files []*schema.File, typeNames []string) (*selection, error) {
	var decls []schema.Decl

	if len(typeNames) == 0 {
		for _, f := range files {
			decls = append(decls, f.Marked()...)
		}
	} else {
		if dups := common.Duplicates(typeNames); len(dups) > 0 {
			return nil, fmt.Errorf("types selected more than once: %s", strings.Join(dups, ", "))
		}

		var missing []string

		for _, name := range typeNames {
			d, ok := findDecl(files, name)
			if !ok {
				missing = append(missing, name+match.Hint(match.Suggest(name, declNames(files), match.DefaultThreshold)))
				continue
			}

			decls = append(decls, d)
		}

		if len(missing) > 0 {
			return nil, fmt.Errorf("types not found: %s", strings.Join(missing, ", "))
		}
	}

	sel := &selection{}

	for _, d := range decls {
		if d.Err != nil {
			var de *diagnostic.Error
			if !errors.As(d.Err, &de) {
				return nil, d.Err
			}

			sel.diags.Add(de.Diagnostic)

			continue
		}

		sel.records = append(sel.records, d.Struct)
	}

	if len(sel.records) == 0 && !sel.diags.HasErrors() {
		return nil, ErrNoRecords
	}

	return sel, nil
}

func findDecl(files []*schema.File, name string) (schema.Decl, bool) {
	for _, f := range files {
		for _, d := range f.Decls {
			if d.Name == name {
				return d, true
			}
		}
	}

	return schema.Decl{}, false
}

func declNames(files []*schema.File) []string {
	var names []string

	for _, f := range files {
		for _, d := range f.Decls {
			names = append(names, d.Name)
		}
	}

	return names
}
