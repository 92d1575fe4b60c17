// Package filter provides the free-text filter the subsystem browser attaches
// to its model. A query is split into whitespace-separated terms; every term
// must match one of an item's filter strings. Terms may be negated with a
// leading "-" and scoped to a single field with a "field:" prefix.
package filter

import (
	"strings"

	"github.com/papapumpkin/sysbrowse/internal/browser"
)

// Field names accepted as term prefixes.
const (
	FieldName   = "name"
	FieldClass  = "class"
	FieldModule = "module"
	FieldPath   = "path"
)

type term struct {
	field  string // empty matches any field
	value  string // lower-cased
	negate bool
}

// Text is a parsed text query. A nil or empty Text passes everything.
type Text struct {
	raw   string
	terms []term
}

// Parse compiles query into a Text filter. Matching is case-insensitive.
func Parse(query string) *Text {
	t := &Text{raw: query}
	for _, word := range strings.Fields(query) {
		tm := term{}
		if strings.HasPrefix(word, "-") && len(word) > 1 {
			tm.negate = true
			word = word[1:]
		}
		if field, value, ok := strings.Cut(word, ":"); ok && isField(field) && value != "" {
			tm.field = strings.ToLower(field)
			word = value
		}
		tm.value = strings.ToLower(word)
		t.terms = append(t.terms, tm)
	}
	return t
}

// String returns the query the filter was parsed from.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return t.raw
}

// Empty reports whether the filter has no terms.
func (t *Text) Empty() bool { return t == nil || len(t.terms) == 0 }

// PassesFilter reports whether item matches every term. Categories always
// pass; the filter applies to subsystems only.
func (t *Text) PassesFilter(item browser.TreeItem) bool {
	if t.Empty() {
		return true
	}
	sub, ok := item.(*browser.SubsystemItem)
	if !ok {
		return true
	}
	fields := fieldsOf(sub)
	for _, tm := range t.terms {
		if tm.matches(fields) == tm.negate {
			return false
		}
	}
	return true
}

func (tm term) matches(fields map[string]string) bool {
	if tm.field != "" {
		return strings.Contains(fields[tm.field], tm.value)
	}
	for _, v := range fields {
		if strings.Contains(v, tm.value) {
			return true
		}
	}
	return false
}

func fieldsOf(sub *browser.SubsystemItem) map[string]string {
	strs := sub.FilterStrings()
	keys := []string{FieldName, FieldClass, FieldModule, FieldPath}
	out := make(map[string]string, len(keys))
	for i, k := range keys {
		if i < len(strs) {
			out[k] = strings.ToLower(strs[i])
		}
	}
	return out
}

func isField(s string) bool {
	switch strings.ToLower(s) {
	case FieldName, FieldClass, FieldModule, FieldPath:
		return true
	}
	return false
}
