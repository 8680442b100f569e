package pipeline

import (
	"html"
	"regexp"
	"strings"

	"gitblog/blog/segment"
)

var (
	// Display math: $$...$$, may span lines, non-greedy to the first closer.
	displayMathRegex = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)
	// Inline math: $...$, single line only so currency text does not pair up
	// across sentences.
	inlineMathRegex = regexp.MustCompile(`\$([^$\n]*)\$`)
)

// mathStage replaces math constructs in prose spans with typeset markup.
// Replacement text differs in length from the match, so the stage rescans
// the whole document from the start after every substitution instead of
// continuing from a drifting index. The loop is bounded by "no more
// matches": every pass removes one pair of delimiters.
type mathStage struct {
	typesetter MathTypesetter
	speakText  bool
}

func (s *mathStage) Name() string { return "math" }

func (s *mathStage) Transform(doc string) (string, error) {
	for {
		next, replaced := s.replaceFirst(doc)
		if !replaced {
			return next, nil
		}
		doc = next
	}
}

// replaceFirst finds the first math construct in prose-span order (display
// checked before inline within each span) and substitutes it in place.
func (s *mathStage) replaceFirst(doc string) (string, bool) {
	spans := segment.Split(doc)
	for i, span := range spans {
		if span.Literal {
			continue
		}
		m := displayMathRegex.FindStringSubmatchIndex(span.Text)
		display := true
		if m == nil {
			m = inlineMathRegex.FindStringSubmatchIndex(span.Text)
			display = false
		}
		if m == nil {
			continue
		}
		latex := strings.TrimSpace(span.Text[m[2]:m[3]])
		spans[i].Text = span.Text[:m[0]] + s.typeset(latex, display) + span.Text[m[1]:]
		return segment.Join(spans), true
	}
	return doc, false
}

func (s *mathStage) typeset(latex string, display bool) string {
	markup, err := s.typesetter.RenderMath(latex, display)
	if err != nil {
		// Dollar signs are stripped so the annotation can never re-match.
		reason := strings.ReplaceAll(latex, "$", "")
		return `<span class="math-error">` + html.EscapeString(reason) + `</span>`
	}

	speak := ""
	if s.speakText {
		speak = ` aria-label="` + html.EscapeString(strings.ReplaceAll(latex, "$", "")) + `"`
	}
	if display {
		return `<div class="math-display"` + speak + `>` + markup + `</div>`
	}
	return `<span class="math-inline"` + speak + `>` + markup + `</span>`
}
