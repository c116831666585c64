// Package sortkeys implements the canonical key ordering shared by locale
// trees and generated constant blocks.
//
// The default order is locale-aware lexicographic comparison. Keys that
// live under a "labels" group (UI label strings) are ordered first by a
// fixed suffix-priority table reflecting their semantic role on screen
// (titles before labels before buttons, ...), then alphabetically.
package sortkeys

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SuffixOrder is the fixed priority table for label keys. Earlier entries
// sort first. The trailing empty string is the explicit fallback bucket:
// in substring mode it matches every key.
var SuffixOrder = []string{
	"title",
	"subtitle",
	"description",
	"tab",
	"label",
	"placeholder",
	"button",
	"link",
	"name",
	"text",
	"message",
	"error",
	"success",
	"info",
	"warning",
	"",
}

// The engine runs single-threaded per invocation, so one shared collator
// is fine even though collate.Collator is not safe for concurrent use.
var collator = collate.New(language.English)

// Compare is the default comparator: locale-aware lexicographic order.
func Compare(a, b string) int {
	return collator.CompareString(a, b)
}

// Suffix extracts the trailing run of word characters after the last
// '-' or '_' in a key. Keys without a separator yield the whole key.
func Suffix(key string) string {
	idx := strings.LastIndexAny(key, "-_")
	if idx < 0 {
		return key
	}
	return key[idx+1:]
}

// Rank returns the priority of a kebab/snake-case label key by exact match
// of its extracted suffix against the table. Unrecognized suffixes rank
// after every table entry.
func Rank(key string) int {
	suffix := Suffix(key)
	for i, s := range SuffixOrder {
		if s != "" && suffix == s {
			return i
		}
	}
	return len(SuffixOrder)
}

// RankLoose returns the priority of a camelCase constant property by
// case-insensitive substring matching in table order. The empty-string
// entry matches everything, so every key gets a rank.
func RankLoose(key string) int {
	lower := strings.ToLower(key)
	for i, s := range SuffixOrder {
		if strings.Contains(lower, s) {
			return i
		}
	}
	return len(SuffixOrder)
}

// CompareLabels orders label keys by rank, then alphabetically.
func CompareLabels(a, b string) int {
	if ra, rb := Rank(a), Rank(b); ra != rb {
		return ra - rb
	}
	return Compare(a, b)
}

// CompareLabelsLoose is CompareLabels with substring ranking, used when
// regenerating constant blocks whose keys are camelCase.
func CompareLabelsLoose(a, b string) int {
	if ra, rb := RankLoose(a), RankLoose(b); ra != rb {
		return ra - rb
	}
	return Compare(a, b)
}

// ForPath selects the comparator for the children of a locale-tree node.
// Nodes directly under a "labels" group use the label order.
func ForPath(path []string) func(a, b string) int {
	if len(path) > 0 && path[len(path)-1] == "labels" {
		return CompareLabels
	}
	return Compare
}
