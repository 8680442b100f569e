// Package segment splits a document into prose and literal spans so that
// text transformations never touch the inside of code fences or scripts.
package segment

import "strings"

const (
	fence       = "```"
	scriptOpen  = "<script>"
	scriptClose = "</script>"
)

// Span is one contiguous slice of the original document. Literal spans are
// fenced code blocks and <script> blocks, delimiters included.
type Span struct {
	Text    string
	Literal bool
}

// Split partitions doc into an ordered, exhaustive span sequence:
// concatenating the Text of all spans in order reconstructs doc exactly.
// A trailing unterminated fence turns the rest of the document into one
// literal span; an unterminated <script> stays prose.
func Split(doc string) []Span {
	var spans []Span
	i := 0
	for {
		open := strings.Index(doc[i:], fence)
		if open < 0 {
			break
		}
		open += i
		appendScriptSpans(&spans, doc[i:open])

		rest := open + len(fence)
		close := strings.Index(doc[rest:], fence)
		if close < 0 {
			// Unterminated fence ends the document.
			spans = append(spans, Span{Text: doc[open:], Literal: true})
			return spans
		}
		end := rest + close + len(fence)
		spans = append(spans, Span{Text: doc[open:end], Literal: true})
		i = end
	}
	appendScriptSpans(&spans, doc[i:])
	return spans
}

// appendScriptSpans splits a prose chunk further around <script> blocks.
func appendScriptSpans(spans *[]Span, text string) {
	i := 0
	for {
		open := strings.Index(text[i:], scriptOpen)
		if open < 0 {
			break
		}
		open += i
		end := strings.Index(text[open+len(scriptOpen):], scriptClose)
		if end < 0 {
			// No closing tag: leave the rest as prose.
			break
		}
		end += open + len(scriptOpen) + len(scriptClose)
		if open > i {
			*spans = append(*spans, Span{Text: text[i:open]})
		}
		*spans = append(*spans, Span{Text: text[open:end], Literal: true})
		i = end
	}
	if i < len(text) {
		*spans = append(*spans, Span{Text: text[i:]})
	}
}

// Join reassembles a span sequence into a single document.
func Join(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// MapProse applies fn to every prose span and returns the reassembled
// document; literal spans pass through untouched.
func MapProse(doc string, fn func(string) string) string {
	spans := Split(doc)
	for i := range spans {
		if !spans[i].Literal {
			spans[i].Text = fn(spans[i].Text)
		}
	}
	return Join(spans)
}
