package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gohugoio/hugo-goldmark-extensions/passthrough"
	admonitions "github.com/stefanfritsch/goldmark-admonitions"
	"github.com/tdewolff/minify/v2"
	minifyhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"gitblog/blog/config"
)

// markdownStage is the final stage: it converts the now-HTML-embedded
// Markdown to the article's final HTML. Unsafe HTML rendering is always on
// because the earlier stages inject markup.
type markdownStage struct {
	md       goldmark.Markdown
	minifier *minify.M
}

func newMarkdownStage(cfg config.MarkdownConfig, mathEnabled bool) *markdownStage {
	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
	}
	if cfg.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if cfg.FrontMatter {
		exts = append(exts, meta.Meta)
	}
	if cfg.Admonitions {
		exts = append(exts, &admonitions.Extender{})
	}
	if !mathEnabled {
		// With the math stage off, delimiters survive conversion intact for
		// client-side typesetting.
		exts = append(exts, passthrough.New(passthrough.Config{
			InlineDelimiters: []passthrough.Delimiters{{Open: "$", Close: "$"}},
			BlockDelimiters:  []passthrough.Delimiters{{Open: "$$", Close: "$$"}},
		}))
	}

	s := &markdownStage{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	if cfg.Minify {
		s.minifier = minify.New()
		s.minifier.AddFunc("text/html", minifyhtml.Minify)
	}
	return s
}

func (s *markdownStage) Name() string { return "markdown" }

func (s *markdownStage) Transform(doc string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(doc), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	out := strings.TrimSpace(buf.String())

	if s.minifier != nil {
		if minified, err := s.minifier.String("text/html", out); err == nil {
			out = minified
		}
	}
	return out, nil
}
