// Package textutil holds text normalization helpers.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWord       = regexp.MustCompile(`[^a-z0-9_-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// StripAccents decomposes s and drops the combining marks, so "São Paulo"
// becomes "Sao Paulo".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify turns a title into a URL slug: accent-stripped, lower-cased,
// whitespace runs joined by single hyphens and any other non-word rune dropped.
func Slugify(s string) string {
	slug := strings.ToLower(StripAccents(s))
	slug = strings.TrimSpace(slug)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonWord.ReplaceAllString(slug, "")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
