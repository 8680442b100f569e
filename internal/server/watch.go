package server

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// startWatcher watches the content directory and reloads the catalog after
// changes settle. Returns a stop function.
func (s *Server) startWatcher(ctx context.Context) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Failed to create file watcher: %v", err)
		return func() {}
	}

	// fsnotify is not recursive; register every existing directory.
	err = filepath.WalkDir(s.cfg.DataDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if werr := watcher.Add(p); werr != nil {
				log.Printf("Failed to watch directory %s: %v", p, werr)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to walk %s: %v", s.cfg.DataDir, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		// Debounce logic
		var debounceTimer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Ignore chmod events
				if event.Op&fsnotify.Chmod != 0 {
					continue
				}
				// New directories need their own watch entry.
				if event.Op&fsnotify.Create != 0 {
					if info, serr := os.Stat(event.Name); serr == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}

				// Debounce rapid events (e.g. during a git pull)
				if debounceTimer != nil {
					debounceTimer.Reset(300 * time.Millisecond)
				} else {
					debounceTimer = time.AfterFunc(300*time.Millisecond, func() {
						_ = s.reload(ctx)
					})
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		wg.Wait()
	}
}
