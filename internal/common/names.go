package common

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExportName upper-cases the first rune of name ("args" -> "Args").
// Names whose first rune has no upper-case form are returned unchanged.
func ExportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// UnexportName lower-cases the first rune of name ("CurrentDir" -> "currentDir").
// A leading run of upper-case letters is lowered as a unit ("ID" -> "id",
// "URLPath" -> "urlPath"). Go keywords get a trailing underscore.
func UnexportName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	// Keep the last capital of an acronym when a lower-case rune follows it.
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}

	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}

	out := string(runes)
	if token.IsKeyword(out) {
		out += "_"
	}

	return out
}

// SnakeCase converts a Go identifier to snake_case ("HTTPRequest" -> "http_request").
func SnakeCase(name string) string {
	runes := []rune(name)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])

			if prevLower || nextLower {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
