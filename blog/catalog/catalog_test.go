package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"

	"gitblog/blog/models"
)

func testOptions() Options {
	return Options{
		DataDir:          "data",
		IndexName:        "index.md",
		DraftName:        "draft.md",
		DefaultTitle:     "Untitled",
		DefaultThumbnail: "/default_thumbnail.png",
		ThumbnailTag:     "thumbnail",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := afero.WriteFile(fsys, name, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuild(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"data/2023/01/02/index.md": "# New Year Post\n\n![thumbnail](cover.png)\n",
		"data/2023/05/10/draft.md": "work in progress, no heading",
		"data/2023/bad/path.md":    "# Ignored\n",
		"data/2023/05/notes.txt":   "not an article",
		"data/readme.md":           "# Also ignored\n",
	})

	b := NewBuilder(fsys, testOptions(), testLogger())
	cat, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cat) != 2 {
		t.Fatalf("catalog has %d entries, want 2: %v", len(cat), cat)
	}

	a := cat["2023/01/02"]
	if a == nil {
		t.Fatal("missing article 2023/01/02")
	}
	if a.Title != "New Year Post" {
		t.Errorf("Title = %q, want %q", a.Title, "New Year Post")
	}
	if a.IsDraft {
		t.Error("index.md article marked as draft")
	}
	if a.Thumbnail != "/2023/01/02/cover.png" {
		t.Errorf("Thumbnail = %q, want %q", a.Thumbnail, "/2023/01/02/cover.png")
	}
	if a.URL != "/2023/01/02/new_year_post" {
		t.Errorf("URL = %q, want %q", a.URL, "/2023/01/02/new_year_post")
	}
	want := time.Date(2023, time.January, 2, 12, 0, 0, 0, time.UTC)
	if !a.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", a.Date, want)
	}

	d := cat["2023/05/10"]
	if d == nil {
		t.Fatal("missing article 2023/05/10")
	}
	if !d.IsDraft {
		t.Error("draft.md article not marked as draft")
	}
	if d.Title != "Untitled" {
		t.Errorf("default Title = %q, want %q", d.Title, "Untitled")
	}
	if d.Thumbnail != "/default_thumbnail.png" {
		t.Errorf("default Thumbnail = %q, want %q", d.Thumbnail, "/default_thumbnail.png")
	}
}

func TestBuildEmptyTree(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("data", 0755); err != nil {
		t.Fatal(err)
	}

	b := NewBuilder(fsys, testOptions(), testLogger())
	cat, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cat) != 0 {
		t.Errorf("catalog has %d entries, want 0", len(cat))
	}
}

func TestBuildMissingRootFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys, testOptions(), testLogger())
	if _, err := b.Build(context.Background()); err == nil {
		t.Error("expected an error for a missing content root")
	}
}

func TestResolveDraftPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{
			name:  "published scanned first",
			files: []string{"data/2023/01/02/index.md", "data/2023/01/02/draft.md"},
		},
		{
			name:  "draft scanned first",
			files: []string{"data/2023/01/02/draft.md", "data/2023/01/02/index.md"},
		},
	}

	b := NewBuilder(afero.NewMemMapFs(), testOptions(), testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winners := b.resolve(tt.files)
			w, ok := winners["2023/01/02"]
			if !ok {
				t.Fatal("no winner resolved")
			}
			if w.isDraft || w.path != "data/2023/01/02/index.md" {
				t.Errorf("winner = %+v, want published index.md", w)
			}
		})
	}
}

func TestResolveRejectsMalformedDatePaths(t *testing.T) {
	b := NewBuilder(afero.NewMemMapFs(), testOptions(), testLogger())

	files := []string{
		"data/23/01/02/index.md",
		"data/2023/1/02/index.md",
		"data/2023/01/index.md",
		"data/2023/01/02/03/index.md",
		"data/2023/01/02/other.md",
		"elsewhere/2023/01/02/index.md",
	}
	if winners := b.resolve(files); len(winners) != 0 {
		t.Errorf("resolved %d winners from malformed paths, want 0: %v", len(winners), winners)
	}
}

func TestPublishedOrdering(t *testing.T) {
	cat := Catalog{}
	for _, dp := range []string{"2021/06/01", "2023/01/02", "2022/12/31"} {
		cat[dp] = &models.Article{DatePath: dp}
	}
	cat["2023/05/10"] = &models.Article{DatePath: "2023/05/10", IsDraft: true}

	pub := cat.Published()
	if len(pub) != 3 {
		t.Fatalf("published = %d articles, want 3", len(pub))
	}
	want := []string{"2023/01/02", "2022/12/31", "2021/06/01"}
	for i, dp := range want {
		if pub[i].DatePath != dp {
			t.Errorf("published[%d] = %q, want %q", i, pub[i].DatePath, dp)
		}
	}
}
