package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"io"
	"net"
	"net/http"
	"os/exec"
	"path"
	"strings"

	"gitblog/blog/models"
)

type homeData struct {
	Title    string
	Articles []*models.Article
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		Title:    s.cfg.RSS.Title,
		Articles: s.store.Current().Published(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, data); err != nil {
		s.logger.Error("render home page", "error", err)
	}
}

type articleData struct {
	Article  *models.Article
	Content  template.HTML
	ShowHits bool
	Hits     models.HitCount
}

// article serves everything under a date path: the rendered page, or a
// static asset living next to the article source.
func (s *Server) article(w http.ResponseWriter, r *http.Request, datePath, rest string) {
	art, ok := s.store.Lookup(datePath)
	if !ok {
		http.NotFound(w, r)
		return
	}

	rest = strings.TrimPrefix(rest, "/")
	if rest != "" && rest != art.EscapedTitle {
		if s.serveAsset(w, r, art.RealPath, rest) {
			return
		}
	}

	source := s.cfg.Article.Index
	if art.IsDraft {
		source = s.cfg.Article.Draft
	}
	content, err := s.renderer.RenderFile(path.Join(art.RealPath, source))
	if err != nil {
		s.logger.Error("render article", "date_path", datePath, "error", err)
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.countHit(r, datePath)

	data := articleData{
		Article: art,
		Content: template.HTML(content),
	}
	if s.hits != nil {
		if count, err := s.hits.Read(datePath); err == nil {
			data.ShowHits = true
			data.Hits = count
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := articleTemplate.Execute(w, data); err != nil {
		s.logger.Error("render article page", "date_path", datePath, "error", err)
	}
}

// serveAsset serves a file from the article's directory. Dotfiles and the
// article source files themselves are never served; a filtered or missing
// path reports false so the caller can fall back to the rendered page.
func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, realPath, rest string) bool {
	rest = path.Clean(rest)
	for _, segment := range strings.Split(rest, "/") {
		if segment == ".." || strings.HasPrefix(segment, ".") {
			return false
		}
	}
	base := path.Base(rest)
	if base == s.cfg.Article.Index || base == s.cfg.Article.Draft {
		return false
	}

	full := path.Join(realPath, rest)
	info, err := s.fsys.Stat(full)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := s.fsys.Open(full)
	if err != nil {
		return false
	}
	defer f.Close()

	http.ServeContent(w, r, base, info.ModTime(), f)
	return true
}

func (s *Server) rss(w http.ResponseWriter, r *http.Request) {
	data, etag, err := s.feed.XML()
	if err != nil {
		s.logger.Error("build rss feed", "error", err)
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(data)
}

// webhook handles the deploy hook: verify the HMAC signature, run the
// configured pull command, then rebuild the catalog.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.cfg.Webhook.Secret == "" {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "400 - Bad Request", http.StatusBadRequest)
		return
	}
	if !verifySignature(s.cfg.Webhook.Secret, body, r.Header.Get("X-Hub-Signature-256")) {
		s.logger.Warn("webhook signature mismatch", "remote", r.RemoteAddr)
		http.Error(w, "403 - Forbidden", http.StatusForbidden)
		return
	}

	if cmd := s.cfg.Webhook.PullCommand; cmd != "" {
		out, err := exec.CommandContext(r.Context(), "sh", "-c", cmd).CombinedOutput()
		if err != nil {
			s.logger.Error("webhook pull command failed", "error", err, "output", string(out))
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	if err := s.reload(r.Context()); err != nil {
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// verifySignature checks a GitHub-style hex HMAC-SHA256 signature header.
func verifySignature(secret string, body []byte, header string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(header), []byte(expected))
}

// countHit records one page view unless the visitor looks like a crawler.
func (s *Server) countHit(r *http.Request, page string) {
	if s.hits == nil {
		return
	}
	if s.robots != nil && s.robots.IsRobot(r.UserAgent()) {
		return
	}
	if err := s.hits.Count(page, clientAddr(r)); err != nil {
		s.logger.Warn("hit count failed", "page", page, "error", err)
	}
}

// clientAddr prefers the first forwarded address so counts survive a reverse
// proxy in front of the server.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
