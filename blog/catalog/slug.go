package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWordRuns = regexp.MustCompile(`[^a-z0-9]+`)

// foldDiacritics strips combining marks so "Café" slugs as "cafe".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns an article title into the URL-safe escaped title: lowercased,
// diacritics folded, non-word runs collapsed to single underscores, trimmed.
func Slugify(title string) string {
	folded, _, err := transform.String(foldDiacritics, title)
	if err != nil {
		folded = title
	}
	slug := strings.ToLower(folded)
	slug = nonWordRuns.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}
