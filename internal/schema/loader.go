package schema

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages. Only syntax is
// needed: classification is purely syntactic.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Package is a loaded Go package with its parsed files.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory of the first Go file
	Files []*File
}

// Lookup returns the named struct from any file of the package.
func (p *Package) Lookup(name string) (*Struct, error) {
	for _, f := range p.Files {
		if f.Has(name) {
			return f.Lookup(name)
		}
	}

	return nil, fmt.Errorf("type %s not found in package %s", name, p.Path)
}

// Load loads the packages matching patterns (standard go/packages patterns such
// as "./store" or "builder-gen/examples/command") and parses their declarations.
func (p *Parser) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, p.fromPackage(pkg))
	}

	return out, nil
}

func (p *Parser) fromPackage(pkg *packages.Package) *Package {
	result := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	for _, f := range pkg.Syntax {
		file := p.FromAST(pkg.Fset, f)
		file.PkgPath = pkg.PkgPath

		for _, d := range file.Decls {
			if d.Struct != nil {
				d.Struct.PkgPath = pkg.PkgPath
			}
		}

		result.Files = append(result.Files, file)
	}

	if len(pkg.CompiledGoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.CompiledGoFiles[0])
	}

	return result
}
