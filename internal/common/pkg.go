package common

import (
	"path"
	"regexp"
	"strings"
)

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

var (
	majorVersionElem   = regexp.MustCompile(`^v[0-9]+$`)
	majorVersionSuffix = regexp.MustCompile(`\.v[0-9]+$`)
)

// PkgAlias returns the conventional package name for an import path: the last
// path element without a major version ("example.com/mod/v2" -> "mod",
// "gopkg.in/yaml.v3" -> "yaml") or a go- prefix ("github.com/x/go-spew" -> "spew").
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if dir := path.Dir(pkgPath); majorVersionElem.MatchString(base) && dir != "." {
		base = path.Base(dir)
	}

	base = majorVersionSuffix.ReplaceAllString(base, "")
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")

	return strings.ReplaceAll(base, "-", "_")
}
