// Package native provides the in-process rendering capabilities the content
// pipeline calls out to: D2 diagrams and LaTeX math typesetting.
package native

import (
	"encoding/hex"
	"log"
	"runtime"
	"sync"

	"github.com/zeebo/blake3"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// instance is a single isolated renderer worker. Rulers are not safe for
// concurrent use, so each worker owns one.
type instance struct {
	ruler *textmeasure.Ruler
}

// Renderer manages a pool of rendering instances for concurrency across
// documents.
type Renderer struct {
	pool       chan *instance
	numWorkers int
	initOnce   sync.Once
}

// New creates a Renderer - workers are lazy-initialized on first use.
func New() *Renderer {
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Renderer{
		pool:       make(chan *instance, numWorkers),
		numWorkers: numWorkers,
	}
}

func (r *Renderer) ensureInitialized() {
	r.initOnce.Do(func() {
		for i := 0; i < r.numWorkers; i++ {
			go func(id int) {
				ruler, err := textmeasure.NewRuler()
				if err != nil {
					log.Printf("⚠️ failed to initialize text ruler for worker %d: %v", id, err)
				}
				r.pool <- &instance{ruler: ruler}
			}(i)
		}
		// Workers stream into the pool as they come online; consumers block
		// until at least one is available.
	})
}

// HashContent generates a BLAKE3 hash for cache keys and ETags.
func HashContent(contentType, content string) string {
	h := blake3.New()
	_, _ = h.WriteString(contentType + ":" + content)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
