package engine

import (
	"sync"

	"github.com/justinabrahms/thunderdome/internal/chess"
)

// Entry is a cached search result for one position fingerprint: the depth
// it was computed at, its exact score (position-relative, see search.go for
// mate normalization) and the best move found at that node.
type Entry struct {
	Depth int
	Score int
	Move  chess.Move
}

const cacheShards = 64

// Cache is a transposition cache shared by all search workers of a game.
// Reads and writes are internally synchronized; a Get observes either no
// entry or a complete one, never a partial write, because each shard
// replaces whole entries under its lock. A conflicting Put keeps the
// deeper entry, so cached depth for a fingerprint never decreases.
//
// There is no eviction: growth over a single game is bounded by the game's
// search tree, and the tournament runner hands each game a fresh cache.
type Cache struct {
	shards [cacheShards]cacheShard
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[uint64]Entry
}

// NewCache returns an empty cache ready for concurrent use.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[uint64]Entry)
	}
	return c
}

func (c *Cache) shard(fingerprint uint64) *cacheShard {
	return &c.shards[fingerprint%cacheShards]
}

// Get returns the entry stored for fingerprint, if any.
func (c *Cache) Get(fingerprint uint64) (Entry, bool) {
	s := c.shard(fingerprint)
	s.mu.RLock()
	e, ok := s.entries[fingerprint]
	s.mu.RUnlock()
	return e, ok
}

// Put stores e for fingerprint. An existing deeper entry wins the conflict;
// dropping the shallower write costs only a caching opportunity.
func (c *Cache) Put(fingerprint uint64, e Entry) {
	s := c.shard(fingerprint)
	s.mu.Lock()
	if old, ok := s.entries[fingerprint]; !ok || e.Depth >= old.Depth {
		s.entries[fingerprint] = e
	}
	s.mu.Unlock()
}

// Len returns the number of cached positions.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
