// Package naming converts schema and operation names between identifier styles.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Words splits s into words. Any run of characters other than ASCII letters and
// digits separates words, and so does a case change: "XMLHttpRequest" is
// XML, Http, Request.
func Words(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range nonAlnum.Split(RemoveAccents(s), -1) {
		if part != "" {
			out = append(out, splitCase(part)...)
		}
	}
	return out
}

func splitCase(s string) []string {
	var parts []string
	var current strings.Builder

	rs := []rune(s)
	for i, r := range rs {
		boundary := false
		if i > 0 && isUpper(r) {
			// "aB" starts a word at B, "ABc" starts one at B
			boundary = !isUpper(rs[i-1]) || (i < len(rs)-1 && !isUpper(rs[i+1]) && !isDigit(rs[i+1]))
		}
		if boundary && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Pascal converts s to PascalCase
func Pascal(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Camel converts s to camelCase
func Camel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(cases.Lower(language.Und).String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Snake converts s to snake_case
func Snake(s string) string {
	return joinLower(s, "_")
}

// Kebab converts s to kebab-case
func Kebab(s string) string {
	return joinLower(s, "-")
}

// Constant converts s to SCREAMING_SNAKE_CASE
func Constant(s string) string {
	return cases.Upper(language.Und).String(Snake(s))
}

func joinLower(s, sep string) string {
	words := Words(s)
	lower := cases.Lower(language.Und)
	for i := range words {
		words[i] = lower.String(words[i])
	}
	return strings.Join(words, sep)
}
