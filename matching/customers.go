// Package matching flags customer names that likely refer to the same
// business under different formatting, so history entries can be de-duplicated
// at data-entry time.
package matching

import (
	"regexp"
	"strings"
)

// Duplicate is one flagged pair. NameA/NameB are the original inputs.
type Duplicate struct {
	NameA  string `json:"name_a"`
	NameB  string `json:"name_b"`
	Reason string `json:"reason"`
}

const (
	ReasonSameName    = "Same name (different formatting)"
	ReasonSimilarName = "Similar names"
)

var (
	punctRe = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Common UK business suffixes folded to a canonical form.
var suffixForms = map[string]string{
	"limited":      "ltd",
	"ltd":          "ltd",
	"plc":          "plc",
	"llp":          "llp",
	"inc":          "inc",
	"incorporated": "inc",
	"co":           "co",
	"company":      "co",
}

// Normalize folds a customer name to its comparison form: lowercase, trimmed,
// punctuation stripped, whitespace collapsed, "&" read as "and", and business
// suffixes canonicalized (Limited and Ltd compare equal).
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", " and ")
	s = punctRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	words := strings.Split(s, " ")
	for i, w := range words {
		if canonical, ok := suffixForms[w]; ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}

// FindDuplicates compares every distinct pair of names and reports the ones
// whose normalized forms are equal, or where one is a substring of the other
// and both are longer than 3 characters. Each unordered pair is reported once.
// Quadratic over distinct names, which is fine at the list sizes involved.
func FindDuplicates(names []string) []Duplicate {
	type entry struct {
		raw  string
		norm string
	}
	var entries []entry
	seen := map[string]bool{}
	for _, n := range names {
		if strings.TrimSpace(n) == "" || seen[n] {
			continue
		}
		seen[n] = true
		entries = append(entries, entry{raw: n, norm: Normalize(n)})
	}

	var out []Duplicate
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			switch {
			case a.norm != "" && a.norm == b.norm:
				out = append(out, Duplicate{NameA: a.raw, NameB: b.raw, Reason: ReasonSameName})
			case len(a.norm) > 3 && len(b.norm) > 3 &&
				(strings.Contains(a.norm, b.norm) || strings.Contains(b.norm, a.norm)):
				out = append(out, Duplicate{NameA: a.raw, NameB: b.raw, Reason: ReasonSimilarName})
			}
		}
	}
	return out
}
