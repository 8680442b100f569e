package catalog

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple words", title: "Hello World", want: "hello_world"},
		{name: "punctuation collapses", title: "What?! No way...", want: "what_no_way"},
		{name: "diacritics fold", title: "Café déjà vu", want: "cafe_deja_vu"},
		{name: "digits survive", title: "Top 10 Tips", want: "top_10_tips"},
		{name: "leading and trailing junk", title: "  --Hello--  ", want: "hello"},
		{name: "empty title", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
