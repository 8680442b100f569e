package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"gitblog/blog/models"
)

// Store holds the live catalog behind a single atomically swapped reference.
// Readers always see either the fully-old or fully-new catalog; a failed
// rebuild leaves the previous one in place.
type Store struct {
	current atomic.Pointer[Catalog]

	mu        sync.Mutex
	onReplace []func()
}

func NewStore() *Store {
	s := &Store{}
	empty := make(Catalog)
	s.current.Store(&empty)
	return s
}

// Current returns the live catalog snapshot.
func (s *Store) Current() Catalog {
	return *s.current.Load()
}

// Lookup returns the article for a date-path key.
func (s *Store) Lookup(datePath string) (*models.Article, bool) {
	art, ok := s.Current()[datePath]
	return art, ok
}

// OnReplace registers a hook fired after every successful catalog swap
// (feed cache invalidation lives here).
func (s *Store) OnReplace(fn func()) {
	s.mu.Lock()
	s.onReplace = append(s.onReplace, fn)
	s.mu.Unlock()
}

// Reload builds a new catalog and swaps it in. On build failure the live
// catalog is untouched and the error is returned to the trigger.
func (s *Store) Reload(ctx context.Context, b *Builder) error {
	cat, err := b.Build(ctx)
	if err != nil {
		return err
	}
	s.current.Store(&cat)

	s.mu.Lock()
	hooks := append([]func(){}, s.onReplace...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}
