package engine

import (
	"sync"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get(42); ok {
		t.Fatal("empty cache returned an entry")
	}
	e := Entry{Depth: 3, Score: 120, Move: mustMove(t, "e2e4")}
	c.Put(42, e)
	got, ok := c.Get(42)
	if !ok || got != e {
		t.Fatalf("Get = %+v, %v; want %+v", got, ok, e)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheKeepsDeeperEntry(t *testing.T) {
	c := NewCache()
	deep := Entry{Depth: 5, Score: 80, Move: mustMove(t, "g1f3")}
	c.Put(7, deep)

	// A shallower result must not displace a deeper one.
	c.Put(7, Entry{Depth: 2, Score: -40, Move: mustMove(t, "e2e3")})
	if got, _ := c.Get(7); got != deep {
		t.Errorf("shallow write displaced deeper entry: %+v", got)
	}

	// An equally deep result replaces the old one.
	fresh := Entry{Depth: 5, Score: 95, Move: mustMove(t, "d2d4")}
	c.Put(7, fresh)
	if got, _ := c.Get(7); got != fresh {
		t.Errorf("equal-depth write was dropped: %+v", got)
	}
}

// TestCacheConcurrentAccess hammers one fingerprint from many goroutines
// and checks that every observed entry is internally consistent. The score
// is derived from the depth, so a torn read would show as a mismatched pair.
func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()
	const (
		workers     = 16
		iterations  = 2000
		fingerprint = uint64(0xDEADBEEF)
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				depth := (seed+i)%8 + 1
				c.Put(fingerprint, Entry{Depth: depth, Score: depth * 1000})
				if e, ok := c.Get(fingerprint); ok && e.Score != e.Depth*1000 {
					t.Errorf("torn entry: %+v", e)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	e, ok := c.Get(fingerprint)
	if !ok || e.Depth != 8 {
		t.Errorf("final entry = %+v, %v; want the deepest write to survive", e, ok)
	}
}

func TestCacheShardsDistinctFingerprints(t *testing.T) {
	c := NewCache()
	const n = 500
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(base uint64) {
			defer wg.Done()
			for i := uint64(0); i < n; i++ {
				k := base*n + i
				c.Put(k, Entry{Depth: 1, Score: int(k)})
			}
		}(uint64(w))
	}
	wg.Wait()
	if got := c.Len(); got != 8*n {
		t.Errorf("Len = %d, want %d", got, 8*n)
	}
	for k := uint64(0); k < 8*n; k++ {
		if e, ok := c.Get(k); !ok || e.Score != int(k) {
			t.Fatalf("entry %d = %+v, %v", k, e, ok)
		}
	}
}
