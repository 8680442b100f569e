package pipeline

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// fencedCodeRegex matches a fenced block carrying a language tag. Fences
// without a tag are left for the Markdown stage.
var fencedCodeRegex = regexp.MustCompile("(?s)```([\\w-]+)[ \t]*\r?\n(.*?)\r?\n```")

// highlightStage replaces tagged code fences with highlighted markup. An
// unknown language falls back to the plain-text lexer; a highlighting
// failure falls back to an escaped, unhighlighted block. Neither aborts the
// document.
type highlightStage struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newHighlightStage() *highlightStage {
	style := styles.Get("nord")
	if style == nil {
		style = styles.Fallback
	}
	return &highlightStage{
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     style,
	}
}

func (s *highlightStage) Name() string { return "highlight" }

func (s *highlightStage) Transform(doc string) (string, error) {
	for {
		m := fencedCodeRegex.FindStringSubmatchIndex(doc)
		if m == nil {
			return doc, nil
		}
		lang := strings.TrimSpace(doc[m[2]:m[3]])
		code := strings.TrimSpace(doc[m[4]:m[5]])
		doc = doc[:m[0]] + s.highlight(lang, code) + doc[m[1]:]
	}
}

func (s *highlightStage) highlight(lang, code string) (block string) {
	defer func() {
		if rec := recover(); rec != nil {
			block = fallbackBlock(lang, code)
		}
	}()

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fallbackBlock(lang, code)
	}

	var buf bytes.Buffer
	if err := s.formatter.Format(&buf, s.style, iterator); err != nil {
		return fallbackBlock(lang, code)
	}
	return `<div class="code-wrapper" data-lang="` + lang + `">` + buf.String() + `</div>`
}

func fallbackBlock(lang, code string) string {
	return `<pre><code class="` + lang + ` language-` + lang + `">` + html.EscapeString(code) + `</code></pre>`
}
