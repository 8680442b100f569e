// Package metadata pattern-matches a raw Markdown document for the article
// title and thumbnail reference.
package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// titleRegex matches a level-1 heading: a single # at line start followed by
// text containing no further #. When a document has several level-1 headings
// the last one wins.
var titleRegex = regexp.MustCompile(`(?m)^#([^#\n]+)$`)

// Meta holds the extracted fields. Empty string means absent; the catalog
// builder substitutes configured defaults.
type Meta struct {
	Title     string
	Thumbnail string
}

// Extractor extracts metadata for one configured thumbnail tag name.
type Extractor struct {
	thumbRegex *regexp.Regexp
}

// New compiles the extraction patterns for the given thumbnail tag. The tag
// is matched case-insensitively inside an image reference, e.g.
// ![thumbnail](cover.png).
func New(thumbnailTag string) *Extractor {
	return &Extractor{
		thumbRegex: regexp.MustCompile(`(?i)!\[` + regexp.QuoteMeta(thumbnailTag) + `\]\(([^)\n]*)\)`),
	}
}

// Extract scans text for the title and thumbnail patterns.
func (e *Extractor) Extract(text string) Meta {
	var m Meta
	if titles := titleRegex.FindAllStringSubmatch(text, -1); len(titles) > 0 {
		m.Title = strings.TrimSpace(titles[len(titles)-1][1])
	}
	if thumb := e.thumbRegex.FindStringSubmatch(text); thumb != nil {
		m.Thumbnail = strings.TrimSpace(thumb[1])
	}
	return m
}

// ExtractFile reads path and extracts its metadata. A read failure is
// returned as-is: the catalog build treats it as fatal, never as partial
// metadata.
func (e *Extractor) ExtractFile(fsys afero.Fs, path string) (Meta, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Meta{}, fmt.Errorf("read article source: %w", err)
	}
	return e.Extract(string(data)), nil
}
