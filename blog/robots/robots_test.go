package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
)

const sampleList = `[
  {"pattern": "Googlebot"},
  {"pattern": "bingbot\\/[0-9]"},
  {"pattern": "crawl"}
]`

func TestLoadAndMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleList))
	}))
	defer srv.Close()

	fsys := afero.NewMemMapFs()
	d := New(fsys, srv.URL, "robots.json")

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Count() != 3 {
		t.Errorf("Count = %d, want 3", d.Count())
	}

	tests := []struct {
		name      string
		userAgent string
		want      bool
	}{
		{name: "googlebot", userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1)", want: true},
		{name: "bingbot with version", userAgent: "bingbot/2.0", want: true},
		{name: "generic crawler", userAgent: "my-crawler 1.0", want: true},
		{name: "desktop browser", userAgent: "Mozilla/5.0 (X11; Linux x86_64) Firefox/119.0", want: false},
		{name: "empty agent", userAgent: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsRobot(tt.userAgent); got != tt.want {
				t.Errorf("IsRobot(%q) = %v, want %v", tt.userAgent, got, tt.want)
			}
		})
	}

	// The fetched list was persisted for the next start.
	if ok, _ := afero.Exists(fsys, "robots.json"); !ok {
		t.Error("downloaded list was not written to disk")
	}
}

func TestLoadFallsBackToLocalFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "robots.json", []byte(sampleList), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := New(fsys, srv.URL, "robots.json")
	// The download fails but the stale local copy still loads.
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !d.IsRobot("Googlebot") {
		t.Error("patterns from the local file were not applied")
	}
}

func TestNoListMeansNoRobots(t *testing.T) {
	d := New(afero.NewMemMapFs(), "http://unused", "robots.json")
	if d.IsRobot("Googlebot") {
		t.Error("detector without a list flagged a robot")
	}
}

func TestEmptyListIsAnError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "robots.json", []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	d := New(fsys, "http://unused", "robots.json")
	if err := d.readFile(); err == nil {
		t.Error("expected an error for an empty pattern list")
	}
}
