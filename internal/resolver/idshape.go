package resolver

import "regexp"

// idShape matches the canonical 8-4-4-4-12 hex identifier shape (§4.4):
// exactly 36 characters, five dash-separated hexadecimal groups. This is
// deliberately narrower than github.com/google/uuid's Parse, which also
// accepts unhyphenated and braced forms — accepting those here would
// violate the spec's requirement that the widening rule "must never
// admit a plain human name" by being needlessly permissive about what
// counts as an id.
var idShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// opaquePrefixShape optionally widens id detection to the service's
// bafy-prefixed content-addressed ids (observed in original_source/ for
// file and object references). Disabled by default; a resolver enables
// it explicitly via Options.OpaquePrefixes, per spec.md §4.4's
// requirement that any widening be documented and opt-in.
var opaquePrefixShape = regexp.MustCompile(`^bafy[0-9a-zA-Z]{20,}$`)

// LooksLikeID reports whether s already has the shape of a resolved
// identifier, per the rules enabled on this resolver.
func (r *Resolver) LooksLikeID(s string) bool {
	if idShape.MatchString(s) {
		return true
	}
	if r.opaquePrefixes && opaquePrefixShape.MatchString(s) {
		return true
	}
	return false
}
