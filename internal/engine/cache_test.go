package engine

import (
	"reflect"
	"testing"
	"time"
)

func testCache(t *testing.T) *reconcileCache {
	t.Helper()
	c := newReconcileCache(reconcileCacheConfig{
		Threshold:     0.85,
		VectorDim:     16,
		TTL:           5 * time.Minute,
		SweepInterval: time.Minute,
		MaxEntries:    1000,
	})
	t.Cleanup(c.close)
	return c
}

func TestCache_FirstSighting(t *testing.T) {
	c := testCache(t)

	content, merged := c.observe("HEADERAAAA|col:3", "page1")
	if merged {
		t.Error("first sighting classified as merge")
	}
	if content != "page1" {
		t.Errorf("content = %q, want %q", content, "page1")
	}
	if c.size() != 1 {
		t.Errorf("size = %d, want 1", c.size())
	}
}

func TestCache_CrossPageMerge(t *testing.T) {
	c := testCache(t)

	c.observe("HEADERAAAA|col:3", "page1")
	content, merged := c.observe("HEADERAAAB|col:3", "page2")

	if !merged {
		t.Fatal("similar fingerprint not classified as merge")
	}
	if content != "page1page2" {
		t.Errorf("merged content = %q, want %q", content, "page1page2")
	}
	// The new fingerprint must not linger as a separate entry.
	if c.size() != 1 {
		t.Errorf("size = %d, want 1", c.size())
	}
}

func TestCache_IdempotentRedelivery(t *testing.T) {
	c := testCache(t)

	c.observe("HEADERAAAA|col:3", "page1")
	c.observe("HEADERAAAB|col:3", "page2")
	content, merged := c.observe("HEADERAAAB|col:3", "page2")

	if !merged {
		t.Fatal("re-delivery not classified as merge")
	}
	if content != "page1page2" {
		t.Errorf("content after re-delivery = %q, want %q (no double append)", content, "page1page2")
	}
}

func TestCache_DissimilarStaysSeparate(t *testing.T) {
	c := testCache(t)

	c.observe("HEADERAAAA|col:3", "header table")
	content, merged := c.observe("zzzzzzzzzz|col:2", "other table")

	if merged {
		t.Error("dissimilar fingerprint classified as merge")
	}
	if content != "other table" {
		t.Errorf("content = %q, want %q", content, "other table")
	}
	if c.size() != 2 {
		t.Errorf("size = %d, want 2", c.size())
	}
}

func TestCache_Drain(t *testing.T) {
	c := testCache(t)

	c.observe("HEADERAAAA|col:3", "header table")
	c.observe("zzzzzzzzzz|col:2", "other table")

	got := c.drain()
	want := []string{"header table", "other table"} // key order
	if !reflect.DeepEqual(got, want) {
		t.Errorf("drain() = %v, want %v", got, want)
	}
	if c.size() != 0 {
		t.Errorf("size after drain = %d, want 0", c.size())
	}
}

func TestCache_SweepExpiresByTTL(t *testing.T) {
	c := testCache(t)

	c.observe("HEADERAAAA|col:3", "page1")
	c.sweep(time.Now().Add(10 * time.Minute))

	if c.size() != 0 {
		t.Errorf("size after TTL sweep = %d, want 0", c.size())
	}
}

func TestCache_SweepEvictsOldestOverCapacity(t *testing.T) {
	c := newReconcileCache(reconcileCacheConfig{
		Threshold:     0.85,
		VectorDim:     16,
		TTL:           time.Hour,
		SweepInterval: time.Minute,
		MaxEntries:    2,
	})
	defer c.close()

	now := time.Now()
	c.mu.Lock()
	c.entries["oldest"] = &cacheEntry{content: "1", lastAccess: now.Add(-3 * time.Minute)}
	c.entries["middle"] = &cacheEntry{content: "2", lastAccess: now.Add(-2 * time.Minute)}
	c.entries["newest"] = &cacheEntry{content: "3", lastAccess: now.Add(-1 * time.Minute)}
	c.mu.Unlock()

	c.sweep(now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) != 2 {
		t.Fatalf("entries after sweep = %d, want 2", len(c.entries))
	}
	if _, ok := c.entries["oldest"]; ok {
		t.Error("oldest entry survived capacity eviction")
	}
	if _, ok := c.entries["newest"]; !ok {
		t.Error("newest entry evicted")
	}
}
