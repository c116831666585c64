// Package keypath implements parsing of dotted translation keys.
//
// A translation key addresses one string in the locale catalog:
//
//	auth.errors.invalid-email   domain "auth", category "errors", key "invalid-email"
//	errors.not-found            flat core errors domain, key "not-found"
//
// The "errors" domain is reserved and flat: it has no category segment of
// its own, every key under it belongs to the "errors" category.
package keypath

import (
	"fmt"
	"strings"
)

// CoreDomain is the reserved flat domain for application-wide errors.
const CoreDomain = "errors"

// Key is a parsed translation key.
type Key struct {
	// Domain is the top-level namespace (feature name or "errors").
	Domain string
	// Category is the second-level grouping ("errors", "success", "labels", ...).
	// For the flat core domain it is always "errors".
	Category string
	// Name is the remaining dot-joined kebab-case part identifying the leaf.
	Name string
	// Path holds every segment, used to navigate nested locale trees.
	Path []string
	// Full is the original dotted key.
	Full string
}

// FormatError reports a key string that does not match the expected shape.
type FormatError struct {
	Key  string
	Want string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid key %q: expected %s", e.Key, e.Want)
}

// Parse splits a dotted key into its components.
//
// Keys in the flat "errors" domain need at least two segments
// (errors.<key>); all other keys need at least three
// (<domain>.<category>.<key>). Empty segments are rejected.
func Parse(s string) (*Key, error) {
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, &FormatError{Key: s, Want: "non-empty dot-separated segments"}
		}
	}

	if segs[0] == CoreDomain {
		if len(segs) < 2 {
			return nil, &FormatError{Key: s, Want: "errors.<key>"}
		}
		return &Key{
			Domain:   CoreDomain,
			Category: "errors",
			Name:     strings.Join(segs[1:], "."),
			Path:     segs,
			Full:     s,
		}, nil
	}

	if len(segs) < 3 {
		return nil, &FormatError{Key: s, Want: "<domain>.<category>.<key>"}
	}
	return &Key{
		Domain:   segs[0],
		Category: segs[1],
		Name:     strings.Join(segs[2:], "."),
		Path:     segs,
		Full:     s,
	}, nil
}

// categoryNames maps known categories to their constant-name part.
// Unknown categories fall back to plain upper-casing.
var categoryNames = map[string]string{
	"errors":   "ERRORS",
	"success":  "SUCCESS",
	"labels":   "LABELS",
	"warnings": "WARNINGS",
	"info":     "INFO",
}

// ConstantName derives the name of the generated constant block that
// mirrors one domain+category, e.g. ("auth", "errors") -> "AUTH_ERRORS".
// The flat core domain always maps to "CORE_ERRORS".
func ConstantName(domain, category string) string {
	if domain == CoreDomain {
		return "CORE_ERRORS"
	}
	mapped, ok := categoryNames[category]
	if !ok {
		mapped = strings.ToUpper(category)
	}
	return strings.ToUpper(domain) + "_" + mapped
}

// RelativeKey strips a leading "<domain>." prefix from a full key so that
// constant blocks store domain-relative values. Keys without the prefix are
// returned unchanged.
func RelativeKey(full, domain string) string {
	return strings.TrimPrefix(full, domain+".")
}

// KebabToCamel converts a kebab-case identifier to camelCase. Letters after
// a dash are upper-cased; digits after a dash are kept as-is:
//
//	verify-2fa-code-sent -> verify2faCodeSent
func KebabToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			upper = false
			if r >= 'a' && r <= 'z' {
				b.WriteRune(r - 'a' + 'A')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PropertyName derives the camelCase constant property name for a key's
// leaf part. Dots behave like dashes so nested keys stay valid identifiers:
//
//	new-error         -> newError
//	session.too-short -> sessionTooShort
func PropertyName(name string) string {
	return KebabToCamel(strings.ReplaceAll(name, ".", "-"))
}
