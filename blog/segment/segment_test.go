package segment

import (
	"strings"
	"testing"
)

func TestSplitReconstructsDocument(t *testing.T) {
	docs := []string{
		"",
		"plain prose only",
		"before ```go\ncode\n``` after",
		"a ```x``` b ```y``` c",
		"unterminated ```go\ncode runs to the end",
		"pre <script>alert(1)</script> post",
		"open <script> never closed",
		"```\nfence\n``` and <script>s()</script> mixed",
	}

	for _, doc := range docs {
		spans := Split(doc)
		if got := Join(spans); got != doc {
			t.Errorf("Join(Split(%q)) = %q, want original", doc, got)
		}
	}
}

func TestSplitFences(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantLiteral []string
	}{
		{
			name:        "single fence",
			doc:         "before ```go\ncode\n``` after",
			wantLiteral: []string{"```go\ncode\n```"},
		},
		{
			name:        "two fences",
			doc:         "a ```one``` b ```two``` c",
			wantLiteral: []string{"```one```", "```two```"},
		},
		{
			name:        "unterminated fence swallows the rest",
			doc:         "prose ```go\nno closer",
			wantLiteral: []string{"```go\nno closer"},
		},
		{
			name:        "script block",
			doc:         "x <script>var a = 1;</script> y",
			wantLiteral: []string{"<script>var a = 1;</script>"},
		},
		{
			name:        "unterminated script stays prose",
			doc:         "x <script> no closer",
			wantLiteral: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var literal []string
			for _, s := range Split(tt.doc) {
				if s.Literal {
					literal = append(literal, s.Text)
				}
			}
			if len(literal) != len(tt.wantLiteral) {
				t.Fatalf("literal spans = %q, want %q", literal, tt.wantLiteral)
			}
			for i := range literal {
				if literal[i] != tt.wantLiteral[i] {
					t.Errorf("literal span %d = %q, want %q", i, literal[i], tt.wantLiteral[i])
				}
			}
		})
	}
}

func TestMapProseSkipsLiterals(t *testing.T) {
	doc := "keep $x$ ```go\nkeep $y$ too\n``` and $z$"
	got := MapProse(doc, func(prose string) string {
		return strings.ReplaceAll(prose, "$", "!")
	})

	if strings.Contains(got, "$x$") || strings.Contains(got, "$z") {
		t.Errorf("prose spans were not transformed: %q", got)
	}
	if !strings.Contains(got, "keep $y$ too") {
		t.Errorf("fenced content was modified: %q", got)
	}
}
