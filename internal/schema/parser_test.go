package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-gen/internal/diagnostic"
)

const commandSrc = `package command

import (
	"time"

	strs "strings"
)

// Command describes a process to spawn.
//
//builder:generate
type Command struct {
	Executable string
	Args       []string ` + "`builder:\"each = \\\"arg\\\"\"`" + `
	Env        *[]string
	CurrentDir string
	Timeout    time.Duration
	Builder    *strs.Builder
}

type Other struct {
	A, B int
}
`

func parse(t *testing.T, src string) *File {
	t.Helper()

	f, err := NewParser(DefaultOptions()).ParseFile("command.go", src)
	require.NoError(t, err)

	return f
}

func TestParser_ParseFile_Command(t *testing.T) {
	f := parse(t, commandSrc)

	assert.Equal(t, "command", f.Package)
	require.Len(t, f.Decls, 2)

	cmd, err := f.Lookup("Command")
	require.NoError(t, err)
	assert.True(t, cmd.Generate)
	assert.Equal(t, "command", cmd.Package)

	var names []string
	for _, field := range cmd.Fields {
		names = append(names, field.Name)
	}

	assert.Equal(t, []string{"Executable", "Args", "Env", "CurrentDir", "Timeout", "Builder"}, names)

	assert.Equal(t, TypeKindPlain, cmd.Fields[0].Type.Kind)
	assert.Equal(t, "string", cmd.Fields[0].Type.Expr)
	assert.Nil(t, cmd.Fields[0].Annotation())

	args := cmd.Field("Args")
	require.NotNil(t, args)
	assert.Equal(t, TypeKindCollection, args.Type.Kind)
	assert.Equal(t, "string", args.Type.Inner().Expr)
	require.NotNil(t, args.Annotation())
	assert.Equal(t, `each = "arg"`, args.Annotation().Text)
	assert.Equal(t, AnnotationTag, args.Annotation().Source)
	assert.Equal(t, 14, args.Annotation().Pos.Line)

	env := cmd.Field("Env")
	require.NotNil(t, env)
	assert.Equal(t, TypeKindOptional, env.Type.Kind)
	assert.Equal(t, "*[]string", env.Type.Expr)
	assert.Equal(t, TypeKindCollection, env.Type.Inner().Kind)

	assert.Equal(t, []Import{
		{Name: "strs", Path: "strings"},
		{Path: "time"},
	}, cmd.Imports)

	other, err := f.Lookup("Other")
	require.NoError(t, err)
	assert.False(t, other.Generate)
	require.Len(t, other.Fields, 2)
	assert.Equal(t, "A", other.Fields[0].Name)
	assert.Equal(t, "B", other.Fields[1].Name)
	assert.Empty(t, other.Imports)

	assert.Len(t, f.Marked(), 1)
}

func TestParser_DirectiveAnnotation(t *testing.T) {
	f := parse(t, `package p

type R struct {
	// Items collects things.
	//builder:each = "item"
	Items []int
	Tags  []string //builder:each="tag"
	Both  []string `+"`builder:\"each = \\\"x\\\"\"`"+` //builder:each="y"
}
`)

	r, err := f.Lookup("R")
	require.NoError(t, err)

	items := r.Field("Items").Annotations
	require.Len(t, items, 1)
	assert.Equal(t, AnnotationDirective, items[0].Source)
	assert.Equal(t, `each = "item"`, items[0].Text)
	assert.Equal(t, 5, items[0].Pos.Line)

	tags := r.Field("Tags").Annotations
	require.Len(t, tags, 1)
	assert.Equal(t, `each="tag"`, tags[0].Text)

	assert.Len(t, r.Field("Both").Annotations, 2)
}

func TestParser_UnquotedTag(t *testing.T) {
	f := parse(t, "package p\n\ntype R struct {\n\tItems []int `json:\"items\" builder:each`\n}\n")

	r, err := f.Lookup("R")
	require.NoError(t, err)

	a := r.Field("Items").Annotation()
	require.NotNil(t, a)
	assert.True(t, a.Unquoted)
	assert.Equal(t, "each", a.Text)
}

func TestParser_TagKeyOnlyAtPairStart(t *testing.T) {
	src := "package p\n\ntype Doc struct {\n" +
		"\tName  string   `help:\"see builder:docs\"`\n" +
		"\tPages []string `bad json:\"pages\" builder:\"each = \\\"page\\\"\"`\n" +
		"\tNotes []string `json:\"a\\\"builder:x\" builder:\"each = \\\"note\\\"\"`\n" +
		"}\n"
	f := parse(t, src)

	r, err := f.Lookup("Doc")
	require.NoError(t, err)

	assert.Empty(t, r.Field("Name").Annotations)

	pages := r.Field("Pages").Annotation()
	require.NotNil(t, pages)
	assert.False(t, pages.Unquoted)
	assert.Equal(t, `each = "page"`, pages.Text)

	notes := r.Field("Notes").Annotation()
	require.NotNil(t, notes)
	assert.False(t, notes.Unquoted)
	assert.Equal(t, `each = "note"`, notes.Text)
}

func TestParser_OtherTagsIgnored(t *testing.T) {
	f := parse(t, "package p\n\ntype R struct {\n\tName string `json:\"name\" xbuilder:\"each\"`\n}\n")

	r, err := f.Lookup("R")
	require.NoError(t, err)
	assert.Empty(t, r.Field("Name").Annotations)
}

func TestParser_EmptyStructInsideOtherTypes(t *testing.T) {
	f := parse(t, "package p\n\ntype Worker struct {\n\tName string\n\tDone chan struct{}\n"+
		"\tSeen map[string]struct{}\n\tTicks []struct{}\n\tStop *struct{}\n}\n")

	w, err := f.Lookup("Worker")
	require.NoError(t, err)
	require.Len(t, w.Fields, 5)

	assert.Equal(t, Plain("chan struct{}"), w.Field("Done").Type)
	assert.Equal(t, Plain("map[string]struct{}"), w.Field("Seen").Type)
	assert.Equal(t, TypeKindCollection, w.Field("Ticks").Type.Kind)
	assert.Equal(t, "struct{}", w.Field("Ticks").Type.Inner().Expr)
	assert.Equal(t, TypeKindOptional, w.Field("Stop").Type.Kind)
}

func TestParser_UnsupportedShapes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		typ     string
		field   string
		message string
	}{
		{
			name:    "not a struct",
			src:     "package p\n\ntype Mode int\n",
			typ:     "Mode",
			message: "int is not a struct type",
		},
		{
			name:    "alias",
			src:     "package p\n\ntype T = struct{ A int }\n",
			typ:     "T",
			message: "type alias is not a named-field record",
		},
		{
			name:    "generic",
			src:     "package p\n\ntype Box[T any] struct{ V T }\n",
			typ:     "Box",
			message: "generic type parameters are not supported",
		},
		{
			name:    "embedded",
			src:     "package p\n\nimport \"sync\"\n\ntype T struct {\n\tsync.Mutex\n\tN int\n}\n",
			typ:     "T",
			message: "embedded field sync.Mutex is not supported",
		},
		{
			name:    "blank",
			src:     "package p\n\ntype T struct {\n\t_ int\n}\n",
			typ:     "T",
			message: "blank fields are not supported",
		},
		{
			name:    "nested struct",
			src:     "package p\n\ntype T struct {\n\tInner []struct{ A int }\n}\n",
			typ:     "T",
			field:   "Inner",
			message: "anonymous struct types are not supported",
		},
		{
			name:    "struct field",
			src:     "package p\n\ntype T struct {\n\tMarker struct{}\n}\n",
			typ:     "T",
			field:   "Marker",
			message: "anonymous struct types are not supported",
		},
		{
			name:    "pointer to struct",
			src:     "package p\n\ntype T struct {\n\tInner *struct{ A int }\n}\n",
			typ:     "T",
			field:   "Inner",
			message: "anonymous struct types are not supported",
		},
		{
			name:    "duplicate",
			src:     "package p\n\ntype T struct {\n\tA int\n\tA string\n}\n",
			typ:     "T",
			field:   "A",
			message: "duplicate field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.src)

			s, err := f.Lookup(tt.typ)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, diagnostic.ErrUnsupportedShape)

			var de *diagnostic.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.typ, de.Record)
			assert.Equal(t, tt.field, de.Field)
			assert.Equal(t, tt.message, de.Message)
			assert.True(t, de.Pos.IsValid())
		})
	}
}

func TestParser_CustomSpelling(t *testing.T) {
	p := NewParser(Options{TagKey: "bld", Directive: "bld:"})

	f, err := p.ParseFile("x.go", "package p\n\n//bld:generate\ntype R struct {\n\tA []int `bld:\"each = \\\"a\\\"\"`\n\tB []int //bld:each=\"b\"\n}\n")
	require.NoError(t, err)

	r, err := f.Lookup("R")
	require.NoError(t, err)
	assert.True(t, r.Generate)
	assert.Equal(t, `each = "a"`, r.Field("A").Annotation().Text)
	assert.Equal(t, `each="b"`, r.Field("B").Annotation().Text)
}

func TestParser_LookupMissing(t *testing.T) {
	f := parse(t, commandSrc)

	_, err := f.Lookup("Nope")
	require.Error(t, err)
	assert.NotErrorIs(t, err, diagnostic.ErrUnsupportedShape)
	assert.False(t, f.Has("Nope"))
}

func TestParser_SyntaxError(t *testing.T) {
	_, err := NewParser(DefaultOptions()).ParseFile("bad.go", "package p\n\ntype T struct {")
	require.Error(t, err)
}

func TestTypeRef_Constructors(t *testing.T) {
	ref := Optional(Collection(Plain("string")))
	assert.Equal(t, "*[]string", ref.String())
	assert.Equal(t, TypeKindOptional, ref.Kind)
	assert.Equal(t, "[]string", ref.Inner().Expr)
	assert.Equal(t, Plain("int"), Plain("int").Inner())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "plain", TypeKindPlain.String())
	assert.Equal(t, "optional", TypeKindOptional.String())
	assert.Equal(t, "collection", TypeKindCollection.String())
	assert.Equal(t, "unknown", TypeKind(9).String())
}
