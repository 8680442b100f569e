// Package feed assembles the RSS 2.0 document for the published catalog.
// The serialized feed is cached and invalidated on every catalog reload.
package feed

import (
	"encoding/xml"
	"fmt"
	"sync"
	"time"

	"gitblog/blog/catalog"
	"gitblog/blog/models"
	"gitblog/blog/renderer/native"
)

type Options struct {
	Title       string
	Description string
	Length      int
	BaseURL     string
}

type Feed struct {
	opts  Options
	store *catalog.Store

	mu     sync.Mutex
	cached []byte
	etag   string
}

// New wires the feed to the catalog store; every successful reload drops
// the cached document.
func New(opts Options, store *catalog.Store) *Feed {
	f := &Feed{opts: opts, store: store}
	store.OnReplace(f.invalidate)
	return f
}

func (f *Feed) invalidate() {
	f.mu.Lock()
	f.cached = nil
	f.etag = ""
	f.mu.Unlock()
}

// XML returns the serialized feed and its entity tag, rebuilding only when
// the cache was invalidated.
func (f *Feed) XML() ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cached != nil {
		return f.cached, f.etag, nil
	}

	data, err := f.build()
	if err != nil {
		return nil, "", err
	}
	f.cached = data
	f.etag = `"` + native.HashContent("rss", string(data)) + `"`
	return f.cached, f.etag, nil
}

func (f *Feed) build() ([]byte, error) {
	articles := f.store.Current().Published()
	if len(articles) > f.opts.Length {
		articles = articles[:f.opts.Length]
	}

	var items []models.Item
	for _, a := range articles {
		link := f.opts.BaseURL + a.URL
		items = append(items, models.Item{
			Title:   a.Title,
			Link:    link,
			PubDate: a.Date.Format(time.RFC1123),
			Guid:    link,
		})
	}

	rss := models.Rss{
		Version: "2.0",
		Channel: models.Channel{
			Title:         f.opts.Title,
			Link:          f.opts.BaseURL,
			Description:   f.opts.Description,
			LastBuildDate: time.Now().UTC().Format(time.RFC1123),
			TTL:           60,
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}
