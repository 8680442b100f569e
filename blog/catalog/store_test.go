package catalog

import (
	"context"
	"testing"

	"github.com/spf13/afero"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore()
	if n := len(s.Current()); n != 0 {
		t.Errorf("fresh store has %d articles, want 0", n)
	}
	if _, ok := s.Lookup("2023/01/02"); ok {
		t.Error("Lookup on an empty store reported a hit")
	}
}

func TestStoreReload(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"data/2023/01/02/index.md": "# Post\n",
	})
	b := NewBuilder(fsys, testOptions(), testLogger())

	s := NewStore()
	fired := 0
	s.OnReplace(func() { fired++ })

	if err := s.Reload(context.Background(), b); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if fired != 1 {
		t.Errorf("replace hook fired %d times, want 1", fired)
	}
	if _, ok := s.Lookup("2023/01/02"); !ok {
		t.Error("article missing after reload")
	}
}

func TestStoreFailedReloadKeepsCatalog(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"data/2023/01/02/index.md": "# Post\n",
	})
	s := NewStore()
	if err := s.Reload(context.Background(), NewBuilder(fsys, testOptions(), testLogger())); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	fired := 0
	s.OnReplace(func() { fired++ })

	// A builder pointed at a missing root fails its build.
	broken := testOptions()
	broken.DataDir = "nope"
	err := s.Reload(context.Background(), NewBuilder(fsys, broken, testLogger()))
	if err == nil {
		t.Fatal("expected reload to fail")
	}
	if fired != 0 {
		t.Errorf("replace hook fired %d times on a failed reload, want 0", fired)
	}
	if _, ok := s.Lookup("2023/01/02"); !ok {
		t.Error("previous catalog was lost on a failed reload")
	}
}
