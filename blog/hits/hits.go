// Package hits is the bbolt-backed page hit and unique-visitor counter.
// Uniqueness is approximated in memory: repeat hits from the same address
// within the configured window count as one visitor.
package hits

import (
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"gitblog/blog/models"
)

const bucketHits = "hits"

type Counter struct {
	db      *bolt.DB
	timeout time.Duration

	mu       sync.Mutex
	visitors map[string]time.Time

	// now is swappable in tests.
	now func() time.Time
}

// Open opens or creates the counter database.
func Open(path string, timeout time.Duration) (*Counter, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open hit counter db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHits))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init hit counter schema: %w", err)
	}
	return &Counter{
		db:       db,
		timeout:  timeout,
		visitors: make(map[string]time.Time),
		now:      time.Now,
	}, nil
}

func (c *Counter) Close() error {
	return c.db.Close()
}

// Count records one hit on page from remoteAddr.
func (c *Counter) Count(page, remoteAddr string) error {
	key := page + ":" + remoteAddr
	now := c.now()

	c.mu.Lock()
	last, seen := c.visitors[key]
	newVisitor := !seen || now.Sub(last) > c.timeout
	c.visitors[key] = now
	c.mu.Unlock()

	return c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketHits))

		var count models.HitCount
		if raw := bucket.Get([]byte(page)); raw != nil {
			if err := msgpack.Unmarshal(raw, &count); err != nil {
				return fmt.Errorf("decode hit record: %w", err)
			}
		}
		count.Hits++
		if newVisitor {
			count.Visitors++
		}

		encoded, err := msgpack.Marshal(&count)
		if err != nil {
			return fmt.Errorf("encode hit record: %w", err)
		}
		return bucket.Put([]byte(page), encoded)
	})
}

// Read returns the counters for page; an uncounted page reads as zeros.
func (c *Counter) Read(page string) (models.HitCount, error) {
	var count models.HitCount
	err := c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketHits)).Get([]byte(page))
		if raw == nil {
			return nil
		}
		return msgpack.Unmarshal(raw, &count)
	})
	return count, err
}
