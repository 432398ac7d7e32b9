package gen

import "text/template"

// templateData holds all data needed for the builder template.
type templateData struct {
	Header      string
	PackageName string
	// ImportGroups are blank-line separated import runs, each sorted by path.
	ImportGroups [][]importSpec
	Builder      string
	Record       string
	Factory      string
	Receiver     string
	// Runtime is the local name of the runtime package, empty when unused.
	Runtime string
	// Slices is the local name of the standard slices package, empty when unused.
	Slices   string
	Fields   []fieldData
	Methods  []methodData
	Comments bool
}

type importSpec struct {
	Alias string
	Path  string
}

// fieldData is one storage slot and how Build reads it.
type fieldData struct {
	Name    string
	Type    string
	Field   string
	Value   string
	Require bool
}

type methodData struct {
	Name      string
	Param     string
	ParamType string
	Body      string
	Doc       string
}

var builderTemplate = template.Must(template.New("builder").Parse(`{{.Header}}

package {{.PackageName}}
{{if .ImportGroups}}
import (
{{range $i, $group := .ImportGroups}}{{if $i}}
{{end}}{{range $group}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}})
{{end}}
{{if .Comments}}// {{.Builder}} assembles {{.Record}} values one field at a time.
{{end}}type {{.Builder}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}}
{{$b := .}}
{{if .Comments}}// {{.Factory}} returns an empty {{.Builder}}.
{{end}}func {{.Factory}}() *{{.Builder}} {
	return &{{.Builder}}{}
}
{{range .Methods}}
{{if $b.Comments}}// {{.Doc}}
{{end}}func ({{$b.Receiver}} *{{$b.Builder}}) {{.Name}}({{.Param}} {{.ParamType}}) *{{$b.Builder}} {
	{{.Body}}
	return {{$b.Receiver}}
}
{{end}}
{{if .Comments}}// Build returns the assembled {{.Record}}, or an error naming the first
// required field that was never set. It does not modify the builder.
{{end}}func ({{.Receiver}} *{{.Builder}}) Build() ({{.Record}}, error) {
{{range .Fields}}{{if .Require}}	if {{$b.Receiver}}.{{.Name}} == nil {
		return {{$b.Record}}{}, &{{$b.Runtime}}.MissingFieldError{Record: "{{$b.Record}}", Field: "{{.Field}}"}
	}

{{end}}{{end}}{{if .Fields}}	return {{.Record}}{
{{range .Fields}}		{{.Field}}: {{.Value}},
{{end}}	}, nil
{{else}}	return {{.Record}}{}, nil
{{end}}}
`))
