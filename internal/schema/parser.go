package schema

import (
	"bytes"
	"cmp"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"builder-gen/internal/common"
	"builder-gen/internal/diagnostic"
)

// Options controls how annotations are recognised.
type Options struct {
	// TagKey is the struct tag key carrying a field annotation.
	TagKey string
	// Directive is the comment prefix (after "//") of field and type directives.
	Directive string
}

// DefaultOptions returns the default annotation spellings.
func DefaultOptions() Options {
	return Options{
		TagKey:    DefaultTagKey,
		Directive: DefaultDirective,
	}
}

// Parser converts Go syntax trees into schemas.
type Parser struct {
	opts Options
}

// NewParser creates a new Parser. Empty option values fall back to defaults.
func NewParser(opts Options) *Parser {
	def := DefaultOptions()
	if opts.TagKey == "" {
		opts.TagKey = def.TagKey
	}

	if opts.Directive == "" {
		opts.Directive = def.Directive
	}

	return &Parser{opts: opts}
}

// ParseFile parses a Go source file. src follows go/parser.ParseFile: when nil
// the file is read from filename.
func (p *Parser) ParseFile(filename string, src any) (*File, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	return p.FromAST(fset, f), nil
}

// FromAST collects every type declaration of f.
func (p *Parser) FromAST(fset *token.FileSet, f *ast.File) *File {
	file := &File{
		Package:  f.Name.Name,
		Filename: fset.Position(f.Package).Filename,
	}

	imports := importTable(f)

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}

			d := Decl{
				Name:     ts.Name.Name,
				Generate: p.hasDirective(doc, GenerateDirective),
			}

			d.Struct, d.Err = p.FromTypeSpec(fset, ts, imports)
			if d.Struct != nil {
				d.Struct.Package = file.Package
				d.Struct.Generate = d.Generate
			}

			file.Decls = append(file.Decls, d)
		}
	}

	return file
}

// FromTypeSpec converts one type declaration into a Struct. Anything other
// than a non-generic struct with named fields fails with UnsupportedShape.
func (p *Parser) FromTypeSpec(fset *token.FileSet, ts *ast.TypeSpec, imports map[string]Import) (*Struct, error) {
	name := ts.Name.Name
	pos := fset.Position(ts.Name.Pos())

	if ts.Assign.IsValid() {
		return nil, unsupported(pos, name, "", "type alias is not a named-field record")
	}

	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return nil, unsupported(pos, name, "", "generic type parameters are not supported")
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, unsupported(pos, name, "", fmt.Sprintf("%s is not a struct type", exprString(fset, ts.Type)))
	}

	s := &Struct{
		Name:     name,
		Filename: pos.Filename,
		Pos:      pos,
	}

	seen := make(map[string]bool)
	used := make(map[string]bool)

	for _, af := range st.Fields.List {
		fieldPos := fset.Position(af.Pos())

		if len(af.Names) == 0 {
			return nil, unsupported(fieldPos, name, "",
				fmt.Sprintf("embedded field %s is not supported", exprString(fset, af.Type)))
		}

		if anonymousStruct(af.Type) {
			return nil, unsupported(fieldPos, name, af.Names[0].Name,
				"anonymous struct types are not supported")
		}

		ref := typeRefOf(fset, af.Type)
		annotations := p.annotations(fset, af)
		collectQualifiers(af.Type, used)

		for _, ident := range af.Names {
			identPos := fset.Position(ident.Pos())

			if ident.Name == "_" {
				return nil, unsupported(identPos, name, "", "blank fields are not supported")
			}

			if seen[ident.Name] {
				return nil, unsupported(identPos, name, ident.Name, "duplicate field")
			}

			seen[ident.Name] = true

			s.Fields = append(s.Fields, Field{
				Name:        ident.Name,
				Type:        ref,
				Annotations: annotations,
				Pos:         identPos,
			})
		}
	}

	for qualifier := range used {
		if imp, ok := imports[qualifier]; ok {
			s.Imports = append(s.Imports, imp)
		}
	}

	sortImports(s.Imports)

	return s, nil
}

// annotations collects the raw builder annotations of a field: the tag value
// and any //builder: comment in the doc or line comment.
func (p *Parser) annotations(fset *token.FileSet, af *ast.Field) []Annotation {
	var out []Annotation

	if af.Tag != nil {
		if a, ok := p.tagAnnotation(fset, af.Tag); ok {
			out = append(out, a)
		}
	}

	prefix := "//" + p.opts.Directive

	for _, group := range []*ast.CommentGroup{af.Doc, af.Comment} {
		if group == nil {
			continue
		}

		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, prefix) {
				continue
			}

			out = append(out, Annotation{
				Source: AnnotationDirective,
				Text:   strings.TrimSpace(strings.TrimPrefix(c.Text, prefix)),
				Pos:    fset.Position(c.Slash),
			})
		}
	}

	return out
}

func (p *Parser) tagAnnotation(fset *token.FileSet, lit *ast.BasicLit) (Annotation, bool) {
	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return Annotation{}, false
	}

	a := Annotation{Source: AnnotationTag, Pos: fset.Position(lit.Pos())}

	v, quoted, ok := lookupTag(raw, p.opts.TagKey)
	if !ok {
		return Annotation{}, false
	}

	// A present key with an unquoted value is kept so classify can reject it
	// instead of silently dropping it.
	a.Text = v
	a.Unquoted = !quoted

	return a, true
}

// lookupTag finds key among the key:"value" pairs of a struct tag. Unlike
// reflect.StructTag.Lookup it steps over malformed pairs of other keys, and
// when key itself is followed by something other than a quoted string it
// returns that raw text with quoted set to false.
func lookupTag(tag, key string) (value string, quoted, ok bool) {
	for {
		tag = strings.TrimLeft(tag, " ")
		if tag == "" {
			return "", false, false
		}

		i := 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}

		name, rest := tag[:i], tag[i:]

		if !strings.HasPrefix(rest, `:"`) {
			if name == key && strings.HasPrefix(rest, ":") {
				raw, _, _ := strings.Cut(rest[1:], " ")
				return raw, false, true
			}

			// Not a pair: resume at the next space.
			end := strings.IndexByte(rest, ' ')
			if end < 0 {
				return "", false, false
			}

			tag = rest[end:]

			continue
		}

		end := closingQuote(rest[1:])
		if end < 0 {
			if name == key {
				return rest[1:], false, true
			}

			return "", false, false
		}

		qvalue := rest[1 : end+2]
		if name == key {
			v, err := strconv.Unquote(qvalue)
			if err != nil {
				return qvalue, false, true
			}

			return v, true, true
		}

		tag = rest[end+2:]
	}
}

// closingQuote returns the index of the quote ending the string literal that
// starts at s[0], or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}

	return -1
}

func (p *Parser) hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}

	want := "//" + p.opts.Directive + directive

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == want {
			return true
		}
	}

	return false
}

func unsupported(pos token.Position, record, field, msg string) error {
	return &diagnostic.Error{
		Diagnostic: diagnostic.New(diagnostic.CodeUnsupportedShape, msg, pos, record, field),
	}
}

// typeRefOf builds the descriptor of a field type expression.
func typeRefOf(fset *token.FileSet, expr ast.Expr) TypeRef {
	switch t := expr.(type) {
	case *ast.ParenExpr:
		return typeRefOf(fset, t.X)
	case *ast.StarExpr:
		elem := typeRefOf(fset, t.X)
		return TypeRef{Kind: TypeKindOptional, Expr: exprString(fset, expr), Elem: &elem}
	case *ast.ArrayType:
		if t.Len == nil {
			elem := typeRefOf(fset, t.Elt)
			return TypeRef{Kind: TypeKindCollection, Expr: exprString(fset, expr), Elem: &elem}
		}
	}

	return Plain(exprString(fset, expr))
}

func exprString(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return fmt.Sprintf("<%T>", expr)
	}

	return buf.String()
}

// anonymousStruct reports whether a field type is an anonymous struct, bare or
// behind the pointer and slice wrappers builders unwrap. Other composite
// types such as chan struct{} or map[K]struct{} are plain types, and an empty
// struct{} element is allowed.
func anonymousStruct(expr ast.Expr) bool {
	if _, ok := ast.Unparen(expr).(*ast.StructType); ok {
		return true
	}

	return wrapsStruct(expr)
}

func wrapsStruct(expr ast.Expr) bool {
	switch t := ast.Unparen(expr).(type) {
	case *ast.StarExpr:
		return wrapsStruct(t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return wrapsStruct(t.Elt)
		}
	case *ast.StructType:
		return t.Fields.NumFields() > 0
	}

	return false
}

// collectQualifiers records the package names used in qualified identifiers.
func collectQualifiers(expr ast.Expr, into map[string]bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok {
			into[id.Name] = true
		}

		return false
	})
}

// importTable maps the local name of every import of f to its spec.
func importTable(f *ast.File) map[string]Import {
	table := make(map[string]Import, len(f.Imports))

	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := Import{Path: path}
		local := common.PkgAlias(path)

		if spec.Name != nil {
			switch spec.Name.Name {
			case "_", ".":
				continue
			default:
				local = spec.Name.Name
				if local != common.PkgAlias(path) {
					imp.Name = local
				}
			}
		}

		table[local] = imp
	}

	return table
}

func sortImports(imports []Import) {
	slices.SortFunc(imports, func(a, b Import) int {
		return cmp.Compare(a.Path, b.Path)
	})
}
