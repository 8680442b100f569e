package metadata

import (
	"testing"

	"github.com/spf13/afero"
)

func TestExtract(t *testing.T) {
	e := New("thumbnail")

	tests := []struct {
		name          string
		text          string
		wantTitle     string
		wantThumbnail string
	}{
		{
			name:      "simple title",
			text:      "# Hello\n\nbody",
			wantTitle: "Hello",
		},
		{
			name:      "title is trimmed",
			text:      "#   Spaced Out   \n",
			wantTitle: "Spaced Out",
		},
		{
			name:      "last level-1 heading wins",
			text:      "# First\n\ntext\n\n# Second\n",
			wantTitle: "Second",
		},
		{
			name:      "level-2 heading is not a title",
			text:      "## Not a title\n\nbody",
			wantTitle: "",
		},
		{
			name:          "thumbnail reference",
			text:          "# T\n\n![thumbnail](cover.png)\n",
			wantTitle:     "T",
			wantThumbnail: "cover.png",
		},
		{
			name:          "thumbnail tag is case-insensitive",
			text:          "![Thumbnail](COVER.png)\n",
			wantThumbnail: "COVER.png",
		},
		{
			name:          "first thumbnail wins",
			text:          "![thumbnail](a.png)\n![thumbnail](b.png)\n",
			wantThumbnail: "a.png",
		},
		{
			name: "ordinary image is not a thumbnail",
			text: "![diagram](flow.png)\n",
		},
		{
			name: "empty document",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := e.Extract(tt.text)
			if m.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", m.Title, tt.wantTitle)
			}
			if m.Thumbnail != tt.wantThumbnail {
				t.Errorf("Thumbnail = %q, want %q", m.Thumbnail, tt.wantThumbnail)
			}
		})
	}
}

func TestExtractFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "post/index.md", []byte("# From Disk\n"), 0644); err != nil {
		t.Fatal(err)
	}

	e := New("thumbnail")

	m, err := e.ExtractFile(fsys, "post/index.md")
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if m.Title != "From Disk" {
		t.Errorf("Title = %q, want %q", m.Title, "From Disk")
	}

	if _, err := e.ExtractFile(fsys, "post/missing.md"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
