package resolver

import "golang.org/x/text/cases"

// cases.Caser is stateful and the package docs say it must not be shared
// between goroutines, so every call builds its own rather than closing
// over a package-level instance. Fold() itself is cheap: it just wraps a
// stateless mapping table.

// normalizeName applies case-folding to a name used as a cache key, if
// caseInsensitive is set. Identifiers (the cached values) are never
// folded, only the names used to look them up.
func normalizeName(name string, caseInsensitive bool) string {
	if !caseInsensitive {
		return name
	}
	return cases.Fold().String(name)
}

// Fold exposes the same Unicode case-folding rule for callers outside
// this package that need to match names against resolver semantics
// (importmap's frontmatter-key matching, in particular).
func Fold(name string) string {
	return cases.Fold().String(name)
}
