// Package cache layers a process-external, badger-backed memoization of
// whole extraction results in front of cube.Extractor.Extract. It never
// changes extraction ordering or semantics; it just lets an unchanged
// hypergraph skip re-enumeration across separate CLI invocations. It is
// always off unless a caller opens one.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/latticeforge/kbest/cube"
)

// Cache wraps a badger database keyed by extraction request.
type Cache struct {
	db *badger.DB

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// Open opens (creating if necessary) a badger database rooted at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{db: db, locks: make(map[string]*sync.Mutex)}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// lockFor returns the per-key mutex that serializes concurrent Get/Put
// calls for the same key. The lock is held for one call at a time, so a
// miss followed by a Put is not atomic: two requests that both miss both
// extract and both Put.
func (c *Cache) lockFor(key string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	m, ok := c.locks[key]
	if !ok {
		m = &sync.Mutex{}
		c.locks[key] = m
	}
	return m
}

// Get returns the cached hypothesis lines for key, if present.
func (c *Cache) Get(key string) (lines []string, ok bool) {
	lock := c.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &lines)
		})
	})
	return lines, err == nil
}

// Put stores lines under key.
func (c *Cache) Put(key string, lines []string) error {
	lock := c.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Key derives a memoization key from the extraction request's identifying
// fields: the hypergraph's content hash, the goal node id, the requested
// count, the sentence id, and the option set (every field affects the
// output, so every field is part of the key).
func Key(contentHash, goalID string, n, sentID int, opts cube.Options) string {
	return fmt.Sprintf("%s|%s|%d|%d|%t|%t|%t|%t|%t|%t",
		contentHash, goalID, n, sentID,
		opts.UniqueNbest, opts.ExtractTree, opts.IncludeAlignment,
		opts.AddCombinedScore, opts.Monolingual, opts.SanityCheck,
	)
}
