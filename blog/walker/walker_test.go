package walker

import (
	"context"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func TestWalk(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := []string{
		"data/2023/01/02/index.md",
		"data/2023/01/02/cover.png",
		"data/2023/05/10/draft.md",
		"data/notes.txt",
	}
	for _, f := range files {
		if err := afero.WriteFile(fsys, f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Walk(context.Background(), fsys, "data")
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	sort.Strings(got)
	want := append([]string(nil), files...)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkMissingRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if _, err := Walk(context.Background(), fsys, "nope"); err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestWalkCancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "data/a/b.txt", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Walk(ctx, fsys, "data"); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
