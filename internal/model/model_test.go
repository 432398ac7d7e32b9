package model

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"builder-gen/internal/classify"
	"builder-gen/internal/diagnostic"
	"builder-gen/internal/schema"
)

func each(name string) []schema.Annotation {
	return []schema.Annotation{{Source: schema.AnnotationTag, Text: `each = "` + name + `"`}}
}

func commandSchema() *schema.Struct {
	return &schema.Struct{
		Name:    "Command",
		Package: "command",
		Pos:     token.Position{Filename: "command.go", Line: 3, Column: 6},
		Fields: []schema.Field{
			{Name: "Executable", Type: schema.Plain("string")},
			{Name: "Args", Type: schema.Collection(schema.Plain("string")), Annotations: each("arg")},
			{Name: "Env", Type: schema.Optional(schema.Collection(schema.Plain("string")))},
			{Name: "CurrentDir", Type: schema.Plain("string")},
		},
	}
}

func plan(t *testing.T, s *schema.Struct, opts Options) *Builder {
	t.Helper()

	res, err := classify.Struct(s, classify.Options{})
	require.NoError(t, err)

	return New(s, res.Strategies, opts)
}

func TestNew_Command(t *testing.T) {
	b := plan(t, commandSchema(), Options{})

	assert.Equal(t, "CommandBuilder", b.Name)
	assert.Equal(t, "Command", b.Record)
	assert.Equal(t, "command", b.Package)
	assert.Equal(t, "NewCommandBuilder", b.Factory)
	assert.Equal(t, []string{"Executable", "CurrentDir"}, b.Required)

	assert.Equal(t, []Storage{
		{Field: "Executable", Name: "executable", Type: "*string", Strategy: classify.KindRequired},
		{Field: "Args", Name: "args", Type: "[]string", Strategy: classify.KindAccumulator},
		{Field: "Env", Name: "env", Type: "*[]string", Strategy: classify.KindNaturallyOptional},
		{Field: "CurrentDir", Name: "currentDir", Type: "*string", Strategy: classify.KindRequired},
	}, b.Storage)

	var names []string
	for _, m := range b.Methods {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"Executable", "Arg", "Args", "Env", "CurrentDir"}, names)

	arg := b.Method("Arg")
	require.NotNil(t, arg)
	assert.Equal(t, MethodAppender, arg.Kind)
	assert.Equal(t, "string", arg.ParamType)
	assert.Equal(t, "arg", arg.Param)
	assert.Equal(t, "args", arg.Storage)

	args := b.Method("Args")
	require.NotNil(t, args)
	assert.Equal(t, MethodSetter, args.Kind)
	assert.Equal(t, "[]string", args.ParamType)

	env := b.Method("Env")
	require.NotNil(t, env)
	assert.Equal(t, "[]string", env.ParamType, "optional setter takes the inner type")

	assert.True(t, b.HasKind(classify.KindAccumulator))
	assert.Len(t, b.MethodsFor("Args"), 2)
	assert.Nil(t, b.Method("Nope"))
}

func TestNew_NameCollisionKeepsAppenderOnly(t *testing.T) {
	s := &schema.Struct{
		Name: "Command",
		Fields: []schema.Field{
			{Name: "Env", Type: schema.Collection(schema.Plain("string")), Annotations: each("env")},
			{Name: "Args", Type: schema.Collection(schema.Plain("string")), Annotations: each("Args")},
		},
	}

	b := plan(t, s, Options{})

	envMethods := b.MethodsFor("Env")
	require.Len(t, envMethods, 1)
	assert.Equal(t, MethodAppender, envMethods[0].Kind)
	assert.Equal(t, "Env", envMethods[0].Name)
	assert.Equal(t, "string", envMethods[0].ParamType)

	argsMethods := b.MethodsFor("Args")
	require.Len(t, argsMethods, 1)
	assert.Equal(t, MethodAppender, argsMethods[0].Kind)

	assert.Empty(t, b.Required)
	assert.Empty(t, Check(s, mustClassify(t, s), Options{}).Errors)
}

func TestNew_SuffixAndVisibility(t *testing.T) {
	s := &schema.Struct{
		Name:   "command",
		Fields: []schema.Field{{Name: "exe", Type: schema.Plain("string")}},
	}

	b := plan(t, s, Options{Suffix: "Maker"})
	assert.Equal(t, "commandMaker", b.Name)
	assert.Equal(t, "newCommandMaker", b.Factory)
	assert.Equal(t, "Exe", b.Methods[0].Name)
	assert.Equal(t, "exe", b.Storage[0].Name)
}

func TestNew_ParamNames(t *testing.T) {
	s := &schema.Struct{
		Name: "R",
		Fields: []schema.Field{
			{Name: "B", Type: schema.Plain("int")},
			{Name: "Len", Type: schema.Plain("int")},
			{Name: "Type", Type: schema.Plain("string")},
			{Name: "Slices", Type: schema.Plain("int")},
			{Name: "Items", Type: schema.Collection(schema.Plain("int")), Annotations: each("append")},
		},
	}

	b := plan(t, s, Options{})

	assert.Equal(t, "v", b.Method("B").Param)
	assert.Equal(t, "v", b.Method("Len").Param)
	assert.Equal(t, "type_", b.Method("Type").Param)
	assert.Equal(t, "type_", b.Method("Type").Storage)
	assert.Equal(t, "v", b.Method("Slices").Param)
	assert.Equal(t, "v", b.Method("Append").Param)
}

func TestNew_EmptyStruct(t *testing.T) {
	b := New(&schema.Struct{Name: "Empty"}, nil, Options{})

	assert.Empty(t, b.Storage)
	assert.Empty(t, b.Methods)
	assert.NotNil(t, b.Required)
}

func TestCheck_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		fields []schema.Field
		field  string
	}{
		{
			name:   "field named Build",
			fields: []schema.Field{{Name: "Build", Type: schema.Plain("int")}},
			field:  "Build",
		},
		{
			name: "appender shadows another setter",
			fields: []schema.Field{
				{Name: "Items", Type: schema.Collection(schema.Plain("int")), Annotations: each("count")},
				{Name: "Count", Type: schema.Plain("int")},
			},
			field: "Count",
		},
		{
			name: "storage differs only by case",
			fields: []schema.Field{
				{Name: "Name", Type: schema.Plain("string")},
				{Name: "name", Type: schema.Plain("string")},
			},
			field: "name",
		},
		{
			name:   "caseless first rune",
			fields: []schema.Field{{Name: "_x", Type: schema.Plain("int")}},
			field:  "_x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &schema.Struct{Name: "R", Fields: tt.fields}

			diags := Check(s, mustClassify(t, s), Options{})
			require.NotEmpty(t, diags.Errors)
			assert.Equal(t, diagnostic.CodeNameConflict, diags.Errors[0].Code)
			assert.Equal(t, tt.field, diags.Errors[0].Field)
			assert.ErrorIs(t, diags.Err(), diagnostic.ErrNameConflict)
		})
	}
}

func TestCheck_Command(t *testing.T) {
	s := commandSchema()
	assert.False(t, Check(s, mustClassify(t, s), Options{}).HasErrors())
}

func TestBuilder_YAML(t *testing.T) {
	b := plan(t, commandSchema(), Options{})

	out, err := yaml.Marshal(b)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "name: CommandBuilder")
	assert.Contains(t, text, "strategy: Accumulator")
	assert.Contains(t, text, "kind: Appender")
}

func TestMethodKind_String(t *testing.T) {
	assert.Equal(t, "Setter", MethodSetter.String())
	assert.Equal(t, "Appender", MethodAppender.String())
	assert.Equal(t, "MethodKind(5)", MethodKind(5).String())
}

func mustClassify(t *testing.T, s *schema.Struct) []classify.Strategy {
	t.Helper()

	res, err := classify.Struct(s, classify.Options{})
	require.NoError(t, err)

	return res.Strategies
}
