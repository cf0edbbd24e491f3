package analyzer

import (
	"strings"
	"unicode"
)

// keep reports whether a type declared in the analyzed module joins the
// domain. Types that fail the filter are still registered, as context for
// the supertype closures, but outside the domain.
func (o AnalyzeOptions) keep(pkgPath, name string) bool {
	if !o.IncludeUnexported && isUnexported(name) {
		return false
	}
	if o.Filter != "" && !strings.HasPrefix(pkgPath, o.Filter) {
		return false
	}
	return true
}

func isStdlib(pkgPath string) bool {
	// Stdlib packages have no dot in the first path element
	firstSlash := strings.IndexByte(pkgPath, '/')
	firstPart := pkgPath
	if firstSlash >= 0 {
		firstPart = pkgPath[:firstSlash]
	}
	return !strings.Contains(firstPart, ".")
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	return unicode.IsLower(rune(name[0])) || name[0] == '_'
}
