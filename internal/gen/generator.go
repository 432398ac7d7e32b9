package gen

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"builder-gen/internal/classify"
	"builder-gen/internal/common"
	"builder-gen/internal/model"
)

// Defaults of the generator configuration.
const (
	DefaultFileSuffix    = "_builder.go"
	DefaultRuntimeImport = "builder-gen/pkg/buildrt"
	// Header is the first line of every generated file.
	Header = "// Code generated by builder-gen. DO NOT EDIT."
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package clause; empty keeps the record's package.
	PackageName string
	// OutputDir is where the unformatted debug sidecar goes on format failure.
	OutputDir string
	// FileSuffix is appended to the snake_case record name to form the filename.
	FileSuffix string
	// RuntimeImport is the import path of the package providing MissingFieldError.
	RuntimeImport string
	// GenerateComments enables doc comments on the generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       DefaultFileSuffix,
		RuntimeImport:    DefaultRuntimeImport,
		GenerateComments: true,
	}
}

// Generator renders builder models into Go source files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
// Empty FileSuffix and RuntimeImport fall back to the defaults.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultFileSuffix
	}

	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "command_builder.go").
	Filename string
	// Dir is the directory of the record's source file, if known.
	Dir string
	// Record is the record type the builder produces.
	Record string
	// Content is the formatted Go source code.
	Content []byte
}

// Filename returns the output file name for a record type.
func (g *Generator) Filename(record string) string {
	return common.SnakeCase(record) + g.config.FileSuffix
}

// Generate renders the builder described by m.
//
// When formatting fails the unformatted source is returned along with the
// error, and a sidecar is written to OutputDir if one is configured.
func (g *Generator) Generate(m *model.Builder) (*GeneratedFile, error) {
	data := g.buildTemplateData(m)

	var buf bytes.Buffer
	if err := builderTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Filename: g.Filename(m.Record),
		Record:   m.Record,
	}
	if m.Source != "" {
		file.Dir = filepath.Dir(m.Source)
	}

	formatted, err := imports.Process(file.Filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// buildTemplateData constructs the template data from a builder model.
func (g *Generator) buildTemplateData(m *model.Builder) *templateData {
	data := &templateData{
		Header:      Header,
		PackageName: m.Package,
		Builder:     m.Name,
		Record:      m.Record,
		Factory:     m.Factory,
		Receiver:    model.Receiver,
		Comments:    g.config.GenerateComments,
	}

	if g.config.PackageName != "" {
		data.PackageName = g.config.PackageName
	}

	taken := make(map[string]bool)

	var std, external []importSpec

	for _, imp := range m.Imports {
		spec := importSpec{Alias: imp.Name, Path: imp.Path}
		if isStdPath(imp.Path) {
			std = append(std, spec)
		} else {
			external = append(external, spec)
		}

		name := imp.Name
		if name == "" {
			name = common.PkgAlias(imp.Path)
		}

		taken[name] = true
	}

	if m.HasKind(classify.KindAccumulator) {
		data.Slices = "slices"

		spec := importSpec{Path: "slices"}
		if taken[data.Slices] {
			data.Slices = "stdslices"
			spec.Alias = data.Slices
		}

		taken[data.Slices] = true
		std = append(std, spec)
	}

	var runtime []importSpec

	if len(m.Required) > 0 {
		data.Runtime = path.Base(g.config.RuntimeImport)

		spec := importSpec{Path: g.config.RuntimeImport}
		if taken[data.Runtime] {
			data.Runtime = "builderrt"
			spec.Alias = data.Runtime
		}

		runtime = append(runtime, spec)
	}

	// One block per group, each sorted by path, the runtime package last.
	for _, group := range [][]importSpec{std, external, runtime} {
		if len(group) == 0 {
			continue
		}

		slices.SortFunc(group, func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) })
		data.ImportGroups = append(data.ImportGroups, group)
	}

	for _, s := range m.Storage {
		data.Fields = append(data.Fields, fieldData{
			Name:    s.Name,
			Type:    s.Type,
			Field:   s.Field,
			Value:   valueExpr(s, data.Slices),
			Require: s.Strategy == classify.KindRequired,
		})
	}

	for _, meth := range m.Methods {
		data.Methods = append(data.Methods, methodData{
			Name:      meth.Name,
			Param:     meth.Param,
			ParamType: meth.ParamType,
			Body:      methodBody(meth, data.Slices),
			Doc:       methodDoc(m, meth),
		})
	}

	return data
}

// isStdPath reports whether an import path belongs to the standard library,
// using the same rule as goimports: no dot in the first path element.
func isStdPath(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// valueExpr is the expression Build uses to read a storage slot. pkg is the
// local name of the slices package.
func valueExpr(s model.Storage, pkg string) string {
	slot := model.Receiver + "." + s.Name

	switch s.Strategy {
	case classify.KindRequired:
		return "*" + slot
	case classify.KindAccumulator:
		return pkg + ".Clone(" + slot + ")"
	default:
		return slot
	}
}

// methodBody is the single statement of a setter or appender.
func methodBody(m model.Method, pkg string) string {
	slot := model.Receiver + "." + m.Storage

	switch {
	case m.Kind == model.MethodAppender:
		return fmt.Sprintf("%s = append(%s, %s)", slot, slot, m.Param)
	case m.Strategy == classify.KindAccumulator:
		return fmt.Sprintf("%s = %s.Clone(%s)", slot, pkg, m.Param)
	default:
		return fmt.Sprintf("%s = &%s", slot, m.Param)
	}
}

func methodDoc(b *model.Builder, m model.Method) string {
	switch {
	case m.Kind == model.MethodAppender:
		return fmt.Sprintf("%s appends one element to %s.", m.Name, m.Field)
	case m.Strategy == classify.KindAccumulator:
		return fmt.Sprintf("%s replaces the elements of %s with a copy of %s.", m.Name, m.Field, m.Param)
	case m.Strategy == classify.KindNaturallyOptional:
		return fmt.Sprintf("%s sets the optional %s.%s.", m.Name, b.Record, m.Field)
	default:
		return fmt.Sprintf("%s sets %s.%s, replacing any previous value.", m.Name, b.Record, m.Field)
	}
}

// Describe returns a one-line summary of the builder, used in logs.
func Describe(m *model.Builder) string {
	names := make([]string, 0, len(m.Methods))
	for _, meth := range m.Methods {
		names = append(names, meth.Name)
	}

	return fmt.Sprintf("%s{%s}", m.Name, strings.Join(names, ", "))
}
