// Package server is the HTTP layer: the home listing, the dated article
// routes, the RSS endpoint, the deploy webhook and static article assets.
package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/spf13/afero"

	"gitblog/blog/catalog"
	"gitblog/blog/config"
	"gitblog/blog/feed"
	"gitblog/blog/hits"
	"gitblog/blog/renderer"
	"gitblog/blog/robots"
)

// articlePathRegex matches the public article namespace: a date path plus an
// optional trailing segment (slug or asset name).
var articlePathRegex = regexp.MustCompile(`^/(\d{4}/\d{2}/\d{2})(/.*)?$`)

type Server struct {
	cfg      *config.Config
	fsys     afero.Fs
	store    *catalog.Store
	builder  *catalog.Builder
	renderer *renderer.Renderer
	feed     *feed.Feed
	hits     *hits.Counter    // nil when the module is disabled
	robots   *robots.Detector // nil when the module is disabled
	logger   *slog.Logger
}

func New(cfg *config.Config, fsys afero.Fs, store *catalog.Store, builder *catalog.Builder,
	rend *renderer.Renderer, f *feed.Feed, counter *hits.Counter, detector *robots.Detector,
	logger *slog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		fsys:     fsys,
		store:    store,
		builder:  builder,
		renderer: rend,
		feed:     f,
		hits:     counter,
		robots:   detector,
		logger:   logger,
	}
}

// Handler builds the route table. Everything except the webhook goes through
// the gzip wrapper.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", gzipHandler(s.root))
	mux.HandleFunc("/rss", gzipHandler(s.rss))
	mux.HandleFunc("/webhook", s.webhook)
	return mux
}

// root dispatches between the home page and the dated article namespace.
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == "/" {
		s.home(w, r)
		return
	}
	if m := articlePathRegex.FindStringSubmatch(r.URL.Path); m != nil {
		s.article(w, r, m[1], m[2])
		return
	}
	http.NotFound(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Modules.Watch {
		stop := s.startWatcher(ctx)
		defer stop()
	}

	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		fmt.Println("\n🛑 Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	fmt.Printf("🌐 Serving on http://%s\n", s.cfg.Addr)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	fmt.Println("✅ Server stopped.")
	return nil
}

// reload rebuilds the catalog; the live one stays up on failure.
func (s *Server) reload(ctx context.Context) error {
	if err := s.store.Reload(ctx, s.builder); err != nil {
		s.logger.Error("catalog reload failed, keeping previous catalog", "error", err)
		return err
	}
	return nil
}
