package classify

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
)

// EachKey is the only annotation key understood by the builder.
const EachKey = "each"

// Annotation error messages.
const (
	msgExpectedEach   = "expected `each = \"...\"`"
	msgMultiple       = "multiple builder annotations on one field"
	msgNotIdentifier  = "each name %q is not a valid Go identifier"
	msgRequiresSlice  = "each annotation requires a collection-typed field"
	msgIgnoredOnPtr   = "each annotation ignored: pointer fields are optional and have no appender"
	msgUnquotedTagVal = "builder tag value must be a quoted string: " + msgExpectedEach
)

var errExpectedEach = errors.New(msgExpectedEach)

type scanned struct {
	tok token.Token
	lit string
}

// ParseEach parses an annotation payload of the form each = "<name>" and
// returns name. Interpreted and raw string literals are accepted. The name
// must be a Go identifier other than "_".
func ParseEach(text string) (string, error) {
	toks, err := scan(text)
	if err != nil {
		return "", err
	}

	if len(toks) != 3 ||
		toks[0].tok != token.IDENT || toks[0].lit != EachKey ||
		toks[1].tok != token.ASSIGN ||
		toks[2].tok != token.STRING {
		return "", errExpectedEach
	}

	name, err := strconv.Unquote(toks[2].lit)
	if err != nil {
		return "", errExpectedEach
	}

	if !token.IsIdentifier(name) || name == "_" {
		return "", fmt.Errorf(msgNotIdentifier, name)
	}

	return name, nil
}

// scan tokenises text, dropping the semicolons the scanner inserts at line ends.
func scan(text string) ([]scanned, error) {
	src := []byte(text)
	fset := token.NewFileSet()
	file := fset.AddFile("annotation", fset.Base(), len(src))

	var scanErr error

	var s scanner.Scanner
	s.Init(file, src, func(_ token.Position, _ string) {
		if scanErr == nil {
			scanErr = errExpectedEach
		}
	}, 0)

	var toks []scanned

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		toks = append(toks, scanned{tok: tok, lit: lit})
	}

	if scanErr != nil {
		return nil, scanErr
	}

	return toks, nil
}
