package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"builder-gen/internal/common"
)

// Diagnostic codes.
const (
	CodeUnsupportedShape       = "UNSUPPORTED_SHAPE"
	CodeMalformedAnnotation    = "MALFORMED_ANNOTATION"
	CodeAnnotationTypeMismatch = "ANNOTATION_TYPE_MISMATCH"
	CodeNameConflict           = "NAME_CONFLICT"
	CodeAnnotationIgnored      = "ANNOTATION_IGNORED"
)

// Kind sentinels. An *Error matches the sentinel of its code via errors.Is.
var (
	ErrUnsupportedShape       = errors.New("unsupported shape")
	ErrMalformedAnnotation    = errors.New("malformed annotation")
	ErrAnnotationTypeMismatch = errors.New("annotation type mismatch")
	ErrNameConflict           = errors.New("name conflict")
)

var kinds = map[string]error{
	CodeUnsupportedShape:       ErrUnsupportedShape,
	CodeMalformedAnnotation:    ErrMalformedAnnotation,
	CodeAnnotationTypeMismatch: ErrAnnotationTypeMismatch,
	CodeNameConflict:           ErrNameConflict,
}

// Diagnostics holds all diagnostic information collected for a schema.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos anchors the diagnostic in source (field or annotation position).
	Pos token.Position
	// Record is the struct type the diagnostic relates to (if any).
	Record string
	// Field is the struct field the diagnostic relates to (if any).
	Field string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// New creates an error diagnostic.
func New(code, message string, pos token.Position, record, field string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Record:   record,
		Field:    field,
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, pos token.Position, record, field string) {
	d.Add(New(code, message, pos, record, field))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, pos token.Position, record, field string) {
	diag := New(code, message, pos, record, field)
	diag.Severity = DiagnosticWarning
	d.Add(diag)
}

// HasErrors returns true if there are any error diagnostics.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err returns the error diagnostics as a Go error, or nil if there are none.
// A single error is returned as *Error; several are joined with errors.Join.
func (d Diagnostics) Err() error {
	switch len(d.Errors) {
	case 0:
		return nil
	case 1:
		return &Error{Diagnostic: d.Errors[0]}
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, &Error{Diagnostic: e})
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string:
// "file:line:col: Record.Field: [CODE] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String())
	}

	switch {
	case d.Record != "" && d.Field != "":
		prefix = append(prefix, d.Record+"."+d.Field)
	case d.Record != "":
		prefix = append(prefix, d.Record)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ": ") + ": " + msg
	}

	return msg
}

// Error is an error-severity diagnostic surfaced as a Go error.
type Error struct {
	Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// Is reports whether target is the kind sentinel for this diagnostic's code.
func (e *Error) Is(target error) bool {
	kind, ok := kinds[e.Code]
	return ok && kind == target
}
